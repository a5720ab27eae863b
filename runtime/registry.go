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
	"sync"
)

// Registry owns the operator slots of a family of types. Each type holds
// its own published row, so reads go straight to the type and never lock;
// the registry serialises writers and republishes the rows a write
// affects.
type Registry struct {
	mu   sync.Mutex
	name string
}

// builtinRegistry owns the built-in types. Those are frozen once init has
// run, so it never accepts writes.
var builtinRegistry = &Registry{name: "builtins"}

// NewRegistry returns an empty registry for user-defined classes. The name
// only appears in log messages.
func NewRegistry(name string) *Registry {
	return &Registry{name: name}
}

// Name returns the name r was created with.
func (r *Registry) Name() string {
	return r.name
}

// Define installs fn as t's own implementation of op, replacing any slot t
// defined or derived from a method. fn must be a UnaryOpFunc for unary
// operators and a BinaryOpFunc otherwise. The rows of t and of every
// subclass that inherits the slot are republished, which fails the guard of
// any call site that cached them.
func (r *Registry) Define(t *Type, op Op, fn interface{}) error {
	slot, err := makeSlot(t, op, fn)
	if err != nil {
		return err
	}
	return r.update(t, op.String(), func() {
		t.defined[op] = slot
	})
}

// Undefine removes t's own implementation of op, whether it came from
// Define or from a class method. t may then inherit an implementation
// through its mro again.
func (r *Registry) Undefine(t *Type, op Op) error {
	if !op.valid() {
		return fmt.Errorf("invalid operator %s", op)
	}
	return r.update(t, op.String(), func() {
		t.defined[op] = nil
		delete(t.methods, op.String())
		if name := op.ReflectedName(); name != "" {
			delete(t.methods, name)
		}
	})
}

// update runs change on t under the write lock, then rebuilds the own slots
// and republishes the rows of t and its descendants. attr names what
// changed, for messages.
func (r *Registry) update(t *Type, attr string, change func()) error {
	if !t.IsMutable() {
		return raise(TypeError, "cannot set '%s' attribute of immutable type '%s'", attr, t.Name())
	}
	if t.reg != r {
		return fmt.Errorf("type '%s' belongs to registry %q, not %q", t.Name(), t.reg.name, r.name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	change()
	n := r.republish(t)
	registryWrites.Inc()
	log.Debug("%s: %s.%s changed, republished %d row(s)", r.name, t.Name(), attr, n)
	return nil
}

// republish rebuilds the own slots of t and every mutable descendant, then
// publishes their rows. Own slots are rebuilt first because a class's slots
// are built from methods found along its mro. The caller holds r.mu.
func (r *Registry) republish(t *Type) int {
	affected := descendants(t)
	for _, d := range affected {
		d.rebuildOwn()
	}
	for _, d := range affected {
		d.publish()
	}
	return len(affected)
}

// descendants returns t followed by all of its mutable subclasses, each
// once, parents before children.
func descendants(t *Type) []*Type {
	seen := map[*Type]bool{t: true}
	result := []*Type{t}
	for i := 0; i < len(result); i++ {
		for _, sub := range result[i].subclasses {
			if !seen[sub] {
				seen[sub] = true
				result = append(result, sub)
			}
		}
	}
	return result
}

// Lookup returns the slot t currently has for op, or nil when t has none.
// It never blocks and never fails.
func (r *Registry) Lookup(t *Type, op Op) Slot {
	if !op.valid() {
		return nil
	}
	return t.slots().slots[op]
}

// LookupUnary returns t's slot for the unary operator op, or nil.
func (r *Registry) LookupUnary(t *Type, op Op) *UnarySlot {
	if !op.IsUnary() {
		return nil
	}
	return t.slots().unary(op)
}

// LookupBinary returns t's slot for the binary or in-place operator op, or
// nil.
func (r *Registry) LookupBinary(t *Type, op Op) *BinarySlot {
	if !op.IsBinary() && !op.IsInplace() {
		return nil
	}
	return t.slots().binary(op)
}

// IsDefined reports whether t has any implementation of op.
func (r *Registry) IsDefined(t *Type, op Op) bool {
	return r.Lookup(t, op) != nil
}
