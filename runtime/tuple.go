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
	"reflect"
	"strings"
)

// Tuple represents Python 'tuple' objects.
//
// Tuples are thread safe by virtue of being immutable.
type Tuple struct {
	Object
	elems []*Object
}

// NewTuple returns a tuple containing the given elements.
func NewTuple(elems ...*Object) *Tuple {
	return &Tuple{Object: Object{typ: TupleType}, elems: elems}
}

// NewTuple2 returns a tuple containing the two given elements.
func NewTuple2(elem0, elem1 *Object) *Tuple {
	return NewTuple(elem0, elem1)
}

func toTupleUnsafe(o *Object) *Tuple {
	return (*Tuple)(o.toPointer())
}

// GetItem returns the i'th element of t. Bounds are unchecked and therefore
// this method will panic unless 0 <= i < t.Len().
func (t *Tuple) GetItem(i int) *Object {
	return t.elems[i]
}

// Len returns the number of elements in t.
func (t *Tuple) Len() int {
	return len(t.elems)
}

// ToObject upcasts t to an Object.
func (t *Tuple) ToObject() *Object {
	return &t.Object
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.elems))
	for i, o := range t.elems {
		parts[i] = o.String()
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// TupleType is the object representing the Python 'tuple' type.
var TupleType = newBasisType("tuple", reflect.TypeOf(Tuple{}), ObjectType)

func tupleAdd(v, w *Object) (*Object, error) {
	if !v.isInstance(TupleType) || !w.isInstance(TupleType) {
		return NotImplemented, nil
	}
	elems, err := seqAdd(toTupleUnsafe(v).elems, toTupleUnsafe(w).elems)
	if err != nil {
		return nil, err
	}
	return NewTuple(elems...).ToObject(), nil
}

func tupleMul(v, w *Object) (*Object, error) {
	seq, mult, ok := seqRepeatOperands(TupleType, v, w)
	if !ok {
		return NotImplemented, nil
	}
	elems := toTupleUnsafe(seq).elems
	n, err := seqRepeatCount(len(elems), mult)
	if err != nil {
		return nil, err
	}
	result, err := seqMul(elems, n)
	if err != nil {
		return nil, err
	}
	return NewTuple(result...).ToObject(), nil
}

func initTupleType() {
	defBinary(TupleType, OpAdd, tupleAdd)
	defBinary(TupleType, OpMul, tupleMul)
}
