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
	"unsafe"
)

var (
	objectBasis = reflect.TypeOf(Object{})
	// ObjectType is the object representing the Python 'object' type.
	//
	// We don't use newBasisType() here since that introduces an
	// initialization cycle between TypeType and ObjectType.
	ObjectType = &Type{
		name:  "object",
		basis: objectBasis,
		flags: typeFlagBasetype,
	}
)

// Object represents Python 'object' objects. Every other value embeds an
// Object as its first field so a *Object can be converted back to the
// embedding struct.
type Object struct {
	typ *Type
}

// NewObject returns a zero valued instance of t laid out according to t's
// basis. The operator core never looks inside instances; this exists for
// classes that hold no state of their own.
func NewObject(t *Type) *Object {
	return newObject(t)
}

func newObject(t *Type) *Object {
	o := (*Object)(unsafe.Pointer(reflect.New(t.basis).Pointer()))
	o.typ = t
	return o
}

// String returns a string representation of o, e.g. for debugging.
func (o *Object) String() string {
	if o == nil {
		return "nil"
	}
	switch {
	case o == NotImplemented:
		return "NotImplemented"
	case o.isInstance(TypeType):
		return toTypeUnsafe(o).String()
	case o.isInstance(StrType):
		return strRepr(toStrUnsafe(o).Value())
	case o.isInstance(BoolType):
		if toIntUnsafe(o).IsTrue() {
			return "True"
		}
		return "False"
	case o.isInstance(IntType):
		return toIntUnsafe(o).value.String()
	case o.isInstance(FloatType):
		return floatRepr(toFloatUnsafe(o).Value())
	case o.isInstance(TupleType):
		return toTupleUnsafe(o).String()
	}
	return fmt.Sprintf("<%s object at %p>", o.typ.Name(), o)
}

// Type returns the Python type of o.
func (o *Object) Type() *Type {
	return o.typ
}

func (o *Object) toPointer() unsafe.Pointer {
	return unsafe.Pointer(o)
}

func (o *Object) isInstance(t *Type) bool {
	return o.typ.isSubclass(t)
}

// IsInstance reports whether o's type is t or a subtype of t.
func (o *Object) IsInstance(t *Type) bool {
	return o.isInstance(t)
}
