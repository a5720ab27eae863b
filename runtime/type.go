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
	"reflect"
	"strings"
	"sync/atomic"
)

type typeFlag int

const (
	// Set when the type can be used as a base class. This is the default.
	// Corresponds to the Py_TPFLAGS_BASETYPE flag in CPython.
	typeFlagBasetype typeFlag = 1 << iota
	// Set for types whose slots may be rewritten after creation, i.e.
	// classes created by NewClass. Built-in types are frozen once init has
	// run.
	typeFlagMutable
	typeFlagDefault = typeFlagBasetype
)

// Type represents Python 'type' objects.
type Type struct {
	Object
	name  string
	basis reflect.Type
	bases []*Type
	mro   []*Type
	flags typeFlag
	// reg is the registry that serialises writes to this type's slots.
	reg *Registry
	// own holds the slots t provides itself rather than inherits. For
	// mutable types it is guarded by reg.mu.
	own [numOps]Slot
	// defined holds slots installed with Registry.Define. They take
	// precedence over slots derived from methods. Guarded by reg.mu.
	defined [numOps]Slot
	// methods holds the dunder methods of a class. Guarded by reg.mu.
	methods map[string]interface{}
	// subclasses lists the direct mutable subclasses of a mutable type.
	// Their rows are republished whenever t's slots change. Guarded by
	// reg.mu.
	subclasses []*Type
	// row is the published slot table. Readers load it without locking.
	row atomic.Pointer[slotTable]
}

var basisTypes = map[reflect.Type]*Type{
	objectBasis: ObjectType,
	typeBasis:   TypeType,
}

func newType(meta *Type, name string, basis reflect.Type, bases []*Type) *Type {
	return &Type{
		Object: Object{typ: meta},
		name:   name,
		basis:  basis,
		bases:  bases,
		flags:  typeFlagDefault,
		reg:    builtinRegistry,
	}
}

func newBasisType(name string, basis reflect.Type, base *Type) *Type {
	if _, ok := basisTypes[basis]; ok {
		logFatal(fmt.Sprintf("type for basis already exists: %s", basis))
	}
	if basis.Kind() != reflect.Struct {
		logFatal(fmt.Sprintf("basis must be a struct not: %s", basis.Kind()))
	}
	if basis.NumField() == 0 {
		logFatal("1st field of basis must be base type's basis")
	}
	if basis.Field(0).Type != base.basis {
		logFatal(fmt.Sprintf("1st field of basis must be base type's basis not: %s", basis.Field(0).Type))
	}
	t := newType(TypeType, name, basis, []*Type{base})
	basisTypes[basis] = t
	return t
}

func newSimpleType(name string, base *Type) *Type {
	return newType(TypeType, name, base.basis, []*Type{base})
}

// prepareType calculates typ's mro, inherits its flags from its base classes
// and publishes its first row.
func prepareType(typ *Type) string {
	typ.mro = mroCalc(typ)
	if typ.mro == nil {
		return fmt.Sprintf("cannot create a consistent method resolution order (MRO) for bases %s", typeNames(typ.bases))
	}
	for _, base := range typ.mro[1:] {
		if base.flags&typeFlagBasetype == 0 {
			typ.flags &^= typeFlagBasetype
		}
	}
	typ.publish()
	return ""
}

// computeRow builds a row in which every operator maps to the first slot
// found along typ's mro.
func (typ *Type) computeRow() *slotTable {
	row := &slotTable{}
	for op := Op(0); op < numOps; op++ {
		for _, t := range typ.mro {
			if s := t.own[op]; s != nil {
				row.slots[op] = s
				break
			}
		}
	}
	return row
}

// publish replaces typ's row. For mutable types the caller holds reg.mu.
func (typ *Type) publish() {
	typ.row.Store(typ.computeRow())
}

// slots returns the current published row of t.
func (t *Type) slots() *slotTable {
	row := t.row.Load()
	if row == nil {
		logFatal(fmt.Sprintf("type '%s' used before it was prepared", t.name))
	}
	return row
}

// Precondition: At least one of seqs is non-empty.
func mroMerge(seqs [][]*Type) []*Type {
	var res []*Type
	numSeqs := len(seqs)
	hasNonEmptySeqs := true
	for hasNonEmptySeqs {
		var cand *Type
		for i := 0; i < numSeqs && cand == nil; i++ {
			// The next candidate will be absent from or at the head
			// of all lists. If we try a candidate and we find it's
			// somewhere past the head of one of the lists, reject.
			seq := seqs[i]
			if len(seq) == 0 {
				continue
			}
			cand = seq[0]
		RejectCandidate:
			for _, seq := range seqs {
				numElems := len(seq)
				for j := 1; j < numElems; j++ {
					if seq[j] == cand {
						cand = nil
						break RejectCandidate
					}
				}
			}
		}
		if cand == nil {
			// We could not find a candidate meaning that the
			// hierarchy is inconsistent.
			return nil
		}
		res = append(res, cand)
		hasNonEmptySeqs = false
		for i, seq := range seqs {
			if len(seq) > 0 {
				if seq[0] == cand {
					seqs[i] = seq[1:]
				}
				if len(seqs[i]) > 0 {
					hasNonEmptySeqs = true
				}
			}
		}
	}
	return res
}

func mroCalc(t *Type) []*Type {
	seqs := [][]*Type{{t}}
	for _, b := range t.bases {
		seqs = append(seqs, b.mro)
	}
	seqs = append(seqs, t.bases)
	return mroMerge(seqs)
}

func toTypeUnsafe(o *Object) *Type {
	return (*Type)(o.toPointer())
}

// ToObject upcasts t to an Object.
func (t *Type) ToObject() *Object {
	return &t.Object
}

// Name returns t's name field.
func (t *Type) Name() string {
	return t.name
}

// Base returns t's first base, or nil for object.
func (t *Type) Base() *Type {
	if len(t.bases) == 0 {
		return nil
	}
	return t.bases[0]
}

// Bases returns a copy of t's direct bases.
func (t *Type) Bases() []*Type {
	return append([]*Type(nil), t.bases...)
}

// MRO returns a copy of t's method resolution order, starting with t.
func (t *Type) MRO() []*Type {
	return append([]*Type(nil), t.mro...)
}

// IsMutable reports whether t's operator slots may change after creation.
func (t *Type) IsMutable() bool {
	return t.flags&typeFlagMutable != 0
}

// Registry returns the registry that owns t's slots.
func (t *Type) Registry() *Registry {
	return t.reg
}

func (t *Type) String() string {
	return fmt.Sprintf("<type '%s'>", t.name)
}

func (t *Type) isSubclass(super *Type) bool {
	for _, b := range t.mro {
		if b == super {
			return true
		}
	}
	return false
}

// IsSubtype reports whether a is b or b appears in a's method resolution
// order.
func IsSubtype(a, b *Type) bool {
	return a == b || a.isSubclass(b)
}

var typeBasis = reflect.TypeOf(Type{})

// TypeType is the object representing the Python 'type' type.
//
// Don't use newType() since that depends on the initialization of
// TypeType.
var TypeType = &Type{
	name:  "type",
	basis: typeBasis,
	bases: []*Type{ObjectType},
	flags: typeFlagDefault,
}

func basisParent(basis reflect.Type) reflect.Type {
	if basis == objectBasis {
		return nil
	}
	return basis.Field(0).Type
}

// basisSelect returns b1 if b2 inherits from it, b2 if b1 inherits from b2,
// otherwise nil. b1 can be nil in which case b2 is always returned.
func basisSelect(b1, b2 reflect.Type) reflect.Type {
	if b1 == nil {
		return b2
	}
	// Search up b1's inheritance chain to see if b2 is present.
	basis := b1
	for basis != nil && basis != b2 {
		basis = basisParent(basis)
	}
	if basis != nil {
		return b1
	}
	// Search up b2's inheritance chain to see if b1 is present.
	basis = b2
	for basis != nil && basis != b1 {
		basis = basisParent(basis)
	}
	if basis != nil {
		return b2
	}
	return nil
}

func typeNames(types []*Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.name
	}
	return strings.Join(names, ", ")
}
