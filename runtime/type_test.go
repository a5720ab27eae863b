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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinMRO(t *testing.T) {
	cases := []struct {
		typ  *Type
		want []*Type
	}{
		{ObjectType, []*Type{ObjectType}},
		{TypeType, []*Type{TypeType, ObjectType}},
		{IntType, []*Type{IntType, ObjectType}},
		{BoolType, []*Type{BoolType, IntType, ObjectType}},
		{NotImplementedType, []*Type{NotImplementedType, ObjectType}},
	}
	for _, cas := range cases {
		assert.Equal(t, cas.want, cas.typ.MRO(), "%s", cas.typ)
	}
}

func TestClassMRO(t *testing.T) {
	reg := NewRegistry(t.Name())
	a := newTestClass(t, reg, "A", nil, nil)
	b := newTestClass(t, reg, "B", []*Type{a}, nil)
	c := newTestClass(t, reg, "C", []*Type{a}, nil)
	d := newTestClass(t, reg, "D", []*Type{b, c}, nil)
	assert.Equal(t, []*Type{d, b, c, a, ObjectType}, d.MRO())
	assert.Equal(t, []*Type{b, c}, d.Bases())
	assert.Equal(t, b, d.Base())

	_, err := NewClass(reg, "E", []*Type{a, b}, nil)
	assert.EqualError(t, err, "TypeError: cannot create a consistent method resolution order (MRO) for bases A, B")
}

func TestIsSubtype(t *testing.T) {
	reg := NewRegistry(t.Name())
	myInt := newTestClass(t, reg, "MyInt", []*Type{IntType}, nil)
	cases := []struct {
		a, b *Type
		want bool
	}{
		{IntType, IntType, true},
		{BoolType, IntType, true},
		{IntType, BoolType, false},
		{BoolType, ObjectType, true},
		{FloatType, IntType, false},
		{myInt, IntType, true},
		{myInt, ObjectType, true},
		{myInt, BoolType, false},
		{TypeType, ObjectType, true},
	}
	for _, cas := range cases {
		assert.Equal(t, cas.want, IsSubtype(cas.a, cas.b), "IsSubtype(%s, %s)", cas.a.Name(), cas.b.Name())
	}
}

func TestBasisSelect(t *testing.T) {
	intBasis := reflect.TypeOf(Int{})
	floatBasis := reflect.TypeOf(Float{})
	cases := []struct {
		b1, b2 reflect.Type
		want   reflect.Type
	}{
		{nil, objectBasis, objectBasis},
		{objectBasis, objectBasis, objectBasis},
		{objectBasis, intBasis, intBasis},
		{intBasis, objectBasis, intBasis},
		{intBasis, floatBasis, nil},
	}
	for _, cas := range cases {
		assert.Equal(t, cas.want, basisSelect(cas.b1, cas.b2))
	}
}

func TestTypeAccessors(t *testing.T) {
	assert.Equal(t, "int", IntType.Name())
	assert.Equal(t, "<type 'int'>", IntType.String())
	assert.Equal(t, "<type 'int'>", IntType.ToObject().String())
	assert.Equal(t, TypeType, IntType.ToObject().Type())
	assert.Equal(t, ObjectType, IntType.Base())
	assert.Nil(t, ObjectType.Base())
	assert.False(t, IntType.IsMutable())
	assert.Equal(t, builtinRegistry, IntType.Registry())

	reg := NewRegistry(t.Name())
	cls := newTestClass(t, reg, "C", nil, nil)
	assert.True(t, cls.IsMutable())
	assert.Same(t, reg, cls.Registry())
	assert.Equal(t, TypeType, cls.ToObject().Type())
}

func TestMROAndBasesAreCopies(t *testing.T) {
	mro := BoolType.MRO()
	mro[0] = FloatType
	assert.Equal(t, BoolType, BoolType.MRO()[0])
	bases := BoolType.Bases()
	bases[0] = FloatType
	assert.Equal(t, IntType, BoolType.Base())
}

func TestSlotsBeforePrepareIsFatal(t *testing.T) {
	catchFatal(t)
	typ := newType(TypeType, "Unprepared", objectBasis, []*Type{ObjectType})
	assert.PanicsWithValue(t, "type 'Unprepared' used before it was prepared", func() {
		typ.slots()
	})
}

func TestComputeRowTakesFirstSlotOnMRO(t *testing.T) {
	row := BoolType.slots()
	require.NotNil(t, row.binary(OpAnd))
	assert.Equal(t, BoolType, row.binary(OpAnd).Owner())
	assert.Equal(t, IntType, row.binary(OpAdd).Owner())
	assert.Nil(t, ObjectType.slots().binary(OpAdd))
}
