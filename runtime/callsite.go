// Copyright 2016 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pyrt

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// observed records an operand type seen at resolution. row is the row the
// type had published at that moment, or nil for immutable types whose rows
// never change.
type observed struct {
	typ *Type
	row *slotTable
}

func observe(t *Type) observed {
	if t.IsMutable() {
		return observed{typ: t, row: t.row.Load()}
	}
	return observed{typ: t}
}

// matches is the guard: the same type, and for mutable types the same
// published row.
func (o *observed) matches(t *Type) bool {
	return o.typ == t && (o.row == nil || t.row.Load() == o.row)
}

type unaryEntry struct {
	v  observed
	fn UnaryOpFunc
}

type binaryEntry struct {
	v, w observed
	fn   BinaryOpFunc
}

// hitFlushInterval is how many cache hits a site counts locally before it
// adds them to the shared hits counter.
const hitFlushInterval = 256

// siteState is the part common to all call sites.
type siteState struct {
	// ID identifies the site in log messages.
	ID          uuid.UUID
	op          Op
	resolutions atomic.Int64
	// hits counts cache hits not yet added to metrics.hits. The shared
	// counter is touched once per hitFlushInterval hits and on every
	// resolution.
	hits    atomic.Int64
	metrics siteMetrics
}

func newSiteState(op Op) siteState {
	return siteState{ID: uuid.New(), op: op, metrics: newSiteMetrics(op)}
}

// Op returns the operator the site applies.
func (s *siteState) Op() Op {
	return s.op
}

// Resolutions returns how many times the site has run the resolver.
func (s *siteState) Resolutions() int64 {
	return s.resolutions.Load()
}

func (s *siteState) hit() {
	if s.hits.Add(1) >= hitFlushInterval {
		s.flushHits()
	}
}

// flushHits adds the locally counted hits to the shared counter. Swap hands
// each hit to exactly one flush.
func (s *siteState) flushHits() {
	if n := s.hits.Swap(0); n > 0 {
		s.metrics.hits.Add(float64(n))
	}
}

// resolved records a run of the resolver.
func (s *siteState) resolved() {
	s.resolutions.Add(1)
	s.metrics.misses.Inc()
	s.flushHits()
}

// UnaryCallSite applies one unary operator at one place in a program,
// caching the dispatch decision for the last operand type seen. It is safe
// for concurrent use.
type UnaryCallSite struct {
	siteState
	entry atomic.Pointer[unaryEntry]
}

// NewUnaryCallSite returns an unresolved call site for the unary operator
// op.
func NewUnaryCallSite(op Op) (*UnaryCallSite, error) {
	if !op.IsUnary() {
		return nil, fmt.Errorf("cannot create a unary call site for %s", op)
	}
	return &UnaryCallSite{siteState: newSiteState(op)}, nil
}

// Invoke applies the site's operator to v.
func (s *UnaryCallSite) Invoke(v *Object) (*Object, error) {
	if e := s.entry.Load(); e != nil && e.v.matches(v.typ) {
		s.hit()
		return e.fn(v)
	}
	e, err := s.specialize(v.typ)
	if err != nil {
		return nil, err
	}
	return e.fn(v)
}

// specialize resolves the operator for t and installs the result. A failed
// resolution leaves the current entry in place.
func (s *UnaryCallSite) specialize(t *Type) (*unaryEntry, error) {
	s.resolved()
	// The row is observed before resolving, so a concurrent write can only
	// make the entry stale, never wrongly current.
	obs := observe(t)
	plan, err := ResolveUnary(s.op, t)
	if err != nil {
		s.metrics.failures.Inc()
		return nil, err
	}
	if plan.Fn == nil {
		logFatal(fmt.Sprintf("call site %s: plan %s has no function", s.ID, plan))
	}
	e := &unaryEntry{v: obs, fn: plan.Fn}
	s.entry.Store(e)
	log.Debug("call site %s: %s specialised for '%s' to %s", s.ID, s.op, t.Name(), plan)
	return e, nil
}

// Reset drops the cached decision.
func (s *UnaryCallSite) Reset() {
	s.flushHits()
	s.entry.Store(nil)
}

// BinaryCallSite applies one binary operator at one place in a program,
// caching the dispatch decision for the last pair of operand types seen.
// It is safe for concurrent use.
type BinaryCallSite struct {
	siteState
	resolve func(op Op, vt, wt *Type) (*BinaryPlan, error)
	entry   atomic.Pointer[binaryEntry]
}

// NewBinaryCallSite returns an unresolved call site for the binary operator
// op.
func NewBinaryCallSite(op Op) (*BinaryCallSite, error) {
	if !op.IsBinary() {
		return nil, fmt.Errorf("cannot create a binary call site for %s", op)
	}
	return &BinaryCallSite{siteState: newSiteState(op), resolve: ResolveBinary}, nil
}

// NewInplaceCallSite returns an unresolved call site for the augmented
// assignment operator op, e.g. OpIAdd.
func NewInplaceCallSite(op Op) (*BinaryCallSite, error) {
	if !op.IsInplace() {
		return nil, fmt.Errorf("cannot create an in-place call site for %s", op)
	}
	return &BinaryCallSite{siteState: newSiteState(op), resolve: ResolveInplace}, nil
}

// Invoke applies the site's operator to v and w.
func (s *BinaryCallSite) Invoke(v, w *Object) (*Object, error) {
	if e := s.entry.Load(); e != nil && e.v.matches(v.typ) && e.w.matches(w.typ) {
		s.hit()
		return e.fn(v, w)
	}
	e, err := s.specialize(v.typ, w.typ)
	if err != nil {
		return nil, err
	}
	return e.fn(v, w)
}

// specialize resolves the operator for vt and wt and installs the result.
// A failed resolution leaves the current entry in place.
func (s *BinaryCallSite) specialize(vt, wt *Type) (*binaryEntry, error) {
	s.resolved()
	obsV, obsW := observe(vt), observe(wt)
	plan, err := s.resolve(s.op, vt, wt)
	if err != nil {
		s.metrics.failures.Inc()
		return nil, err
	}
	if plan.Fn == nil {
		logFatal(fmt.Sprintf("call site %s: plan %s has no function", s.ID, plan))
	}
	e := &binaryEntry{v: obsV, w: obsW, fn: plan.Fn}
	s.entry.Store(e)
	log.Debug("call site %s: %s specialised for ('%s', '%s') to %s", s.ID, s.op, vt.Name(), wt.Name(), plan)
	return e, nil
}

// Reset drops the cached decision.
func (s *BinaryCallSite) Reset() {
	s.flushHits()
	s.entry.Store(nil)
}
