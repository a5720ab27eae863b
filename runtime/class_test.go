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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClassErrors(t *testing.T) {
	reg := NewRegistry(t.Name())
	other := NewRegistry("other")
	foreign := newTestClass(t, other, "Foreign", nil, nil)
	binary := BinaryOpFunc(func(v, w *Object) (*Object, error) { return v, nil })
	cases := []struct {
		reg     *Registry
		bases   []*Type
		methods SlotMap
		wantErr string
	}{
		{nil, nil, nil, "class C: a user registry is required"},
		{builtinRegistry, nil, nil, "class C: a user registry is required"},
		{reg, []*Type{IntType, FloatType}, nil, "TypeError: multiple bases have instance lay-out conflict"},
		{reg, []*Type{NotImplementedType}, nil, "TypeError: type 'NotImplementedType' is not an acceptable base type"},
		{reg, []*Type{foreign}, nil, `class C: base 'Foreign' belongs to registry "other", not "TestNewClassErrors"`},
		{reg, nil, SlotMap{"__ad__": binary}, `class C: "__ad__" is not an operator method, did you mean "__add__"?`},
		{reg, nil, SlotMap{"__frobnicate__": binary}, `class C: "__frobnicate__" is not an operator method`},
		{reg, nil, SlotMap{"__neg__": binary}, "class C: __neg__ requires a non-nil UnaryOpFunc, got pyrt.BinaryOpFunc"},
		{reg, nil, SlotMap{"__radd__": BinaryOpFunc(nil)}, "class C: __radd__ requires a non-nil BinaryOpFunc, got pyrt.BinaryOpFunc"},
	}
	for _, cas := range cases {
		_, err := NewClass(cas.reg, "C", cas.bases, cas.methods)
		assert.EqualError(t, err, cas.wantErr)
	}
}

func TestNewClassDefaults(t *testing.T) {
	reg := NewRegistry(t.Name())
	cls := newTestClass(t, reg, "C", nil, nil)
	assert.Equal(t, []*Type{ObjectType}, cls.Bases())
	o := NewObject(cls)
	assert.Equal(t, cls, o.Type())
	assert.True(t, o.IsInstance(ObjectType))
	assert.Contains(t, o.String(), "<C object at ")
	for _, op := range Ops() {
		assert.False(t, reg.IsDefined(cls, op), "%s", op)
	}
}

func TestClassForwardAndReflected(t *testing.T) {
	reg := NewRegistry(t.Name())
	calls := &callLog{}
	v := newTestClass(t, reg, "V", nil, SlotMap{
		"__add__":  calls.binary("__add__", newStr("add")),
		"__radd__": calls.binary("__radd__", newStr("radd")),
		// The receiver comes first in a reflected method.
		"__rsub__": func(self, other *Object) (*Object, error) {
			return NewTuple2(self, other).ToObject(), nil
		},
	})
	x := NewObject(v)
	cases := []struct {
		fun       func(v, w *Object) (*Object, error)
		v, w      *Object
		want      *Object
		wantCalls []string
		wantErr   string
	}{
		{Add, x, newInt(1), newStr("add"), []string{"__add__"}, ""},
		{Add, newInt(1), x, newStr("radd"), []string{"__radd__"}, ""},
		{Add, x, x, newStr("add"), []string{"__add__"}, ""},
		{Sub, newInt(1), x, NewTuple2(x, newInt(1)).ToObject(), nil, ""},
		{Sub, x, newInt(1), nil, nil, "TypeError: unsupported operand type(s) for -: 'V' and 'int'"},
		{Sub, x, x, nil, nil, "TypeError: unsupported operand type(s) for -: 'V' and 'V'"},
	}
	for _, cas := range cases {
		calls.reset()
		got, err := cas.fun(cas.v, cas.w)
		checkResult(t, got, err, cas.want, cas.wantErr)
		assert.Equal(t, cas.wantCalls, calls.get())
	}
}

func TestClassInheritsMethods(t *testing.T) {
	reg := NewRegistry(t.Name())
	base := newTestClass(t, reg, "Base", nil, SlotMap{
		"__add__": func(v, w *Object) (*Object, error) { return newStr("Base.add"), nil },
	})
	sub := newTestClass(t, reg, "Sub", []*Type{base}, SlotMap{
		"__radd__": func(v, w *Object) (*Object, error) { return newStr("Sub.radd"), nil },
	})
	s := NewObject(sub)
	got, err := Add(s, newInt(1))
	checkResult(t, got, err, newStr("Base.add"), "")
	got, err = Add(newInt(1), s)
	checkResult(t, got, err, newStr("Sub.radd"), "")

	require.NoError(t, reg.SetMethod(base, "__add__", func(v, w *Object) (*Object, error) { return newStr("Base.add2"), nil }))
	got, err = Add(s, newInt(1))
	checkResult(t, got, err, newStr("Base.add2"), "")
	require.NoError(t, reg.SetMethod(base, "__add__", nil))
	_, err = Add(s, newInt(1))
	assert.EqualError(t, err, "TypeError: unsupported operand type(s) for +: 'Sub' and 'int'")
}

func TestClassReflectedPriority(t *testing.T) {
	reg := NewRegistry(t.Name())
	calls := &callLog{}
	a := newTestClass(t, reg, "A", nil, SlotMap{
		"__add__":  calls.binary("A.__add__", newStr("A.__add__")),
		"__radd__": calls.binary("A.__radd__", newStr("A.__radd__")),
		"__sub__":  calls.binary("A.__sub__", NotImplemented),
		"__rsub__": calls.binary("A.__rsub__", newStr("A.__rsub__")),
	})
	// B overrides only the forward add, so it inherits A.__radd__.
	b := newTestClass(t, reg, "B", []*Type{a}, SlotMap{
		"__add__": calls.binary("B.__add__", newStr("B.__add__")),
	})
	// C overrides both reflected methods.
	c := newTestClass(t, reg, "C", []*Type{a}, SlotMap{
		"__radd__": calls.binary("C.__radd__", newStr("C.__radd__")),
		"__rsub__": calls.binary("C.__rsub__", NotImplemented),
	})
	x, y, z := NewObject(a), NewObject(b), NewObject(c)
	cases := []struct {
		fun       func(v, w *Object) (*Object, error)
		v, w      *Object
		want      *Object
		wantCalls []string
		wantErr   string
	}{
		{Add, x, y, newStr("A.__add__"), []string{"A.__add__"}, ""},
		{Add, y, x, newStr("B.__add__"), []string{"B.__add__"}, ""},
		{Add, x, z, newStr("C.__radd__"), []string{"C.__radd__"}, ""},
		{Sub, x, y, newStr("A.__rsub__"), []string{"A.__sub__", "A.__rsub__"}, ""},
		// C.__rsub__ had its turn first, so A's slot does not call A.__rsub__.
		{Sub, x, z, nil, []string{"C.__rsub__", "A.__sub__"}, "TypeError: unsupported operand type(s) for -: 'A' and 'C'"},
	}
	for _, cas := range cases {
		calls.reset()
		got, err := cas.fun(cas.v, cas.w)
		checkResult(t, got, err, cas.want, cas.wantErr)
		assert.Equal(t, cas.wantCalls, calls.get())
	}
}

func TestClassFallsBackToBuiltinSlot(t *testing.T) {
	reg := NewRegistry(t.Name())
	myInt := newTestClass(t, reg, "MyInt", []*Type{IntType}, SlotMap{
		"__radd__": func(v, w *Object) (*Object, error) { return newStr("radd"), nil },
		"__neg__":  func(v *Object) (*Object, error) { return newStr("neg"), nil },
	})
	got, err := Add(newIntOf(t, myInt, 2), newInt(1))
	checkResult(t, got, err, newInt(3), "")
	got, err = Add(newInt(1), newIntOf(t, myInt, 2))
	checkResult(t, got, err, newStr("radd"), "")
	got, err = Neg(newIntOf(t, myInt, 2))
	checkResult(t, got, err, newStr("neg"), "")
	got, err = Invert(newIntOf(t, myInt, 2))
	checkResult(t, got, err, newInt(-3), "")
}

func TestSetMethodErrors(t *testing.T) {
	reg := NewRegistry(t.Name())
	cls := newTestClass(t, reg, "C", nil, nil)
	fn := func(v, w *Object) (*Object, error) { return v, nil }
	assert.EqualError(t, reg.SetMethod(cls, "__sbu__", fn), `"__sbu__" is not an operator method, did you mean "__sub__"?`)
	assert.EqualError(t, reg.SetMethod(cls, "__neg__", fn), "__neg__ requires a non-nil UnaryOpFunc, got func(*pyrt.Object, *pyrt.Object) (*pyrt.Object, error)")
	assert.EqualError(t, reg.SetMethod(IntType, "__add__", fn), "TypeError: cannot set '__add__' attribute of immutable type 'int'")
	assert.Nil(t, cls.Method("__add__"))
	require.NoError(t, reg.SetMethod(cls, "__add__", fn))
	assert.IsType(t, BinaryOpFunc(nil), cls.Method("__add__"))
	assert.Nil(t, IntType.Method("__add__"))
}

type testVector struct {
	calls *callLog
}

func (v testVector) Add(x, y *Object) (*Object, error) {
	v.calls.record("Add")
	return newStr("Add"), nil
}

func (v testVector) RMul(x, y *Object) (*Object, error) {
	v.calls.record("RMul")
	return newStr("RMul"), nil
}

func (v testVector) IOr(x, y *Object) (*Object, error) {
	v.calls.record("IOr")
	return newStr("IOr"), nil
}

func (v testVector) Neg(x *Object) (*Object, error) {
	v.calls.record("Neg")
	return newStr("Neg"), nil
}

// Helper is not an operator method.
func (v testVector) Helper() string {
	return "helper"
}

type badVector struct{}

func (badVector) Add(x *Object) (*Object, error) {
	return x, nil
}

func (badVector) Neg(x, y *Object) (*Object, error) {
	return x, nil
}

func TestMethodsOf(t *testing.T) {
	calls := &callLog{}
	methods, err := MethodsOf(testVector{calls})
	require.NoError(t, err)
	assert.Len(t, methods, 4)
	for _, name := range []string{"__add__", "__rmul__", "__ior__"} {
		assert.IsType(t, BinaryOpFunc(nil), methods[name], name)
	}
	assert.IsType(t, UnaryOpFunc(nil), methods["__neg__"])

	cls := newTestClass(t, NewRegistry(t.Name()), "Vector", nil, methods)
	x := NewObject(cls)
	_, err = Add(x, newInt(1))
	require.NoError(t, err)
	_, err = Mul(newInt(2), x)
	require.NoError(t, err)
	_, err = IOr(x, x)
	require.NoError(t, err)
	_, err = Neg(x)
	require.NoError(t, err)
	assert.Equal(t, []string{"Add", "RMul", "IOr", "Neg"}, calls.get())

	_, err = MethodsOf(badVector{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pyrt.badVector.Add has signature func(*pyrt.Object) (*pyrt.Object, error), want pyrt.BinaryOpFunc")
	assert.Contains(t, err.Error(), "pyrt.badVector.Neg has signature func(*pyrt.Object, *pyrt.Object) (*pyrt.Object, error), want pyrt.UnaryOpFunc")

	_, err = MethodsOf(nil)
	assert.EqualError(t, err, "cannot discover methods of nil")
}
