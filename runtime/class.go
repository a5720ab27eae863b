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
	"sort"
	"strings"
)

// SlotMap maps special method names such as "__add__" or "__rsub__" to
// their implementations, a UnaryOpFunc for unary operators and a
// BinaryOpFunc otherwise.
type SlotMap map[string]interface{}

// A class method receives the instance as its first argument, so the
// reflected method "__radd__" of w is called as __radd__(w, v).

// NewClass creates a mutable class with the given name and bases whose
// operator slots are built from methods. It is similar to the Python
// statement "class name(*bases)" with the methods in the class body. The
// class belongs to reg, which serialises later changes to its slots.
func NewClass(reg *Registry, name string, bases []*Type, methods SlotMap) (*Type, error) {
	if reg == nil || reg == builtinRegistry {
		return nil, fmt.Errorf("class %s: a user registry is required", name)
	}
	if len(bases) == 0 {
		bases = []*Type{ObjectType}
	}
	var basis = bases[0].basis
	for _, base := range bases {
		if base.flags&typeFlagBasetype == 0 {
			return nil, raise(TypeError, "type '%s' is not an acceptable base type", base.Name())
		}
		if base.IsMutable() && base.reg != reg {
			return nil, fmt.Errorf("class %s: base '%s' belongs to registry %q, not %q", name, base.Name(), base.reg.name, reg.name)
		}
		basis = basisSelect(basis, base.basis)
		if basis == nil {
			return nil, raise(TypeError, "multiple bases have instance lay-out conflict")
		}
	}
	normalized, err := normalizeMethods(methods)
	if err != nil {
		return nil, fmt.Errorf("class %s: %w", name, err)
	}
	t := newType(TypeType, name, basis, append([]*Type(nil), bases...))
	t.flags |= typeFlagMutable
	t.reg = reg
	t.methods = normalized

	reg.mu.Lock()
	defer reg.mu.Unlock()
	t.mro = mroCalc(t)
	if t.mro == nil {
		return nil, raise(TypeError, "cannot create a consistent method resolution order (MRO) for bases %s", typeNames(bases))
	}
	t.rebuildOwn()
	if err := prepareType(t); err != "" {
		return nil, raise(TypeError, "%s", err)
	}
	for _, base := range bases {
		if base.IsMutable() {
			base.subclasses = append(base.subclasses, t)
		}
	}
	log.Debug("%s: created class %s(%s)", reg.name, name, typeNames(bases))
	return t, nil
}

// SetMethod sets or, when fn is nil, deletes the special method name of
// the class t and rebuilds the slot it contributes to.
func (r *Registry) SetMethod(t *Type, name string, fn interface{}) error {
	m, ok := methodNames[name]
	if !ok {
		return unknownMethodError(name)
	}
	var normalized interface{}
	if fn != nil {
		var err error
		if normalized, err = normalizeMethod(name, m, fn); err != nil {
			return err
		}
	}
	return r.update(t, name, func() {
		if t.methods == nil {
			t.methods = map[string]interface{}{}
		}
		if normalized == nil {
			delete(t.methods, name)
		} else {
			t.methods[name] = normalized
		}
	})
}

// Method returns the special method name defined by t itself, or nil.
func (t *Type) Method(name string) interface{} {
	if t.IsMutable() {
		t.reg.mu.Lock()
		defer t.reg.mu.Unlock()
	}
	return t.methods[name]
}

// rebuildOwn recomputes the slots a class provides itself: those installed
// with Registry.Define, then those built from its methods. Built-in types
// keep the slots their initializer set. The caller holds reg.mu.
func (t *Type) rebuildOwn() {
	if !t.IsMutable() {
		return
	}
	for op := Op(0); op < numOps; op++ {
		if s := t.defined[op]; s != nil {
			t.own[op] = s
			continue
		}
		t.own[op] = t.classSlot(op)
	}
}

// classSlot builds the slot for op from t's methods, or returns nil when t
// defines no method for op and so inherits the slot of a base.
func (t *Type) classSlot(op Op) Slot {
	switch {
	case op.IsUnary():
		if fn, ok := t.methods[op.String()].(UnaryOpFunc); ok {
			return &UnarySlot{Fn: fn, t: t}
		}
		return nil
	case op.IsInplace():
		if fn, ok := t.methods[op.String()].(BinaryOpFunc); ok {
			return &BinarySlot{Fn: fn, t: t}
		}
		return nil
	}
	_, hasOp := t.methods[op.String()]
	_, hasROp := t.methods[op.ReflectedName()]
	if !hasOp && !hasROp {
		return nil
	}
	f, _ := t.lookupMethod(op.String())
	fn, _ := f.(BinaryOpFunc)
	r, rowner := t.lookupMethod(op.ReflectedName())
	rfn, _ := r.(BinaryOpFunc)
	if rfn == nil {
		rowner = nil
	}
	var inherited *BinarySlot
	if fn == nil {
		// A built-in base may still implement the forward operation.
		inherited = t.inheritedSlot(op)
	}
	slot := &BinarySlot{t: t, rowner: rowner}
	slot.Fn = classBinaryOp(slot, op, fn, rfn, inherited)
	return slot
}

// lookupMethod finds name in the methods of the classes on t's mro and
// returns it with the class that defines it.
func (t *Type) lookupMethod(name string) (interface{}, *Type) {
	for _, c := range t.mro {
		if fn, ok := c.methods[name]; ok {
			return fn, c
		}
	}
	return nil, nil
}

// inheritedSlot returns the slot t would inherit for op from the types
// after it on its mro.
func (t *Type) inheritedSlot(op Op) *BinarySlot {
	for _, c := range t.mro[1:] {
		if s, ok := c.own[op].(*BinarySlot); ok {
			return s
		}
	}
	return nil
}

// reflectedOverrides reports whether the reflected method a class slot s
// calls differs from the one vt would find. This holds when the class
// defining it is not vt or one of vt's bases.
func (s *BinarySlot) reflectedOverrides(vt *Type) bool {
	return s.rowner != nil && !vt.isSubclass(s.rowner)
}

// properSubtype reports whether a is a subtype of b other than b itself.
func properSubtype(a, b *Type) bool {
	return a != b && IsSubtype(a, b)
}

// classBinaryOp combines a forward and a reflected method into one slot
// function, in the manner of CPython's SLOT1BINFULL. Operands arrive in
// source order: the forward method runs when v is an instance of the
// class, the reflected method when w is, with w as its receiver.
//
// When type(w) is a proper subtype of type(v) the resolver calls the slot
// of w first. It runs the reflected method then only if type(w) overrides
// it, and the slot of v does not repeat a reflected method that already
// had that turn.
func classBinaryOp(slot *BinarySlot, op Op, fn, rfn BinaryOpFunc, inherited *BinarySlot) BinaryOpFunc {
	t := slot.t
	return func(v, w *Object) (*Object, error) {
		vt, wt := v.typ, w.typ
		reflected := rfn != nil && vt != wt && w.isInstance(t)
		if v.isInstance(t) {
			if reflected && properSubtype(wt, vt) {
				if ws := wt.slots().binary(op); ws != nil && ws != slot && ws.reflectedOverrides(vt) {
					reflected = false
				}
			}
			var r *Object
			var err error
			switch {
			case fn != nil:
				r, err = fn(v, w)
			case inherited != nil:
				r, err = inherited.Fn(v, w)
			default:
				r = NotImplemented
			}
			if err != nil || r != NotImplemented {
				return r, err
			}
		} else if reflected && properSubtype(wt, vt) && !slot.reflectedOverrides(vt) {
			// type(w) inherits the reflected method from type(v), so the
			// forward method of v goes first.
			return NotImplemented, nil
		}
		if reflected {
			return rfn(w, v)
		}
		return NotImplemented, nil
	}
}

func unknownMethodError(name string) error {
	if suggestion := suggestOpName(name); suggestion != "" {
		return fmt.Errorf("%q is not an operator method, did you mean %q?", name, suggestion)
	}
	return fmt.Errorf("%q is not an operator method", name)
}

func normalizeMethods(methods SlotMap) (map[string]interface{}, error) {
	result := make(map[string]interface{}, len(methods))
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m, ok := methodNames[name]
		if !ok {
			return nil, unknownMethodError(name)
		}
		fn, err := normalizeMethod(name, m, methods[name])
		if err != nil {
			return nil, err
		}
		result[name] = fn
	}
	return result, nil
}

// normalizeMethod converts fn to the named function type the method name
// requires.
func normalizeMethod(name string, m methodName, fn interface{}) (interface{}, error) {
	if m.op.IsUnary() {
		switch f := fn.(type) {
		case UnaryOpFunc:
			if f != nil {
				return f, nil
			}
		case func(*Object) (*Object, error):
			if f != nil {
				return UnaryOpFunc(f), nil
			}
		}
		return nil, fmt.Errorf("%s requires a non-nil UnaryOpFunc, got %T", name, fn)
	}
	switch f := fn.(type) {
	case BinaryOpFunc:
		if f != nil {
			return f, nil
		}
	case func(*Object, *Object) (*Object, error):
		if f != nil {
			return BinaryOpFunc(f), nil
		}
	}
	return nil, fmt.Errorf("%s requires a non-nil BinaryOpFunc, got %T", name, fn)
}

var (
	unaryMethodType  = reflect.TypeOf(UnaryOpFunc(nil))
	binaryMethodType = reflect.TypeOf(BinaryOpFunc(nil))
)

// goMethodNames maps Go method names like "Add", "RAdd" and "IAdd" to the
// special method names they implement.
var goMethodNames = calcGoMethodNames()

func calcGoMethodNames() map[string]string {
	names := map[string]string{}
	for op := Op(0); op < numOps; op++ {
		goName := opInfos[op].name
		names[goName] = op.String()
		if op.IsBinary() {
			names["R"+goName] = op.ReflectedName()
		}
	}
	return names
}

// MethodsOf discovers operator methods on impl by name: a method Add
// becomes "__add__", RAdd becomes "__radd__", IAdd becomes "__iadd__" and
// Neg becomes "__neg__". Methods with other names are ignored; an operator
// method with the wrong signature is an error.
func MethodsOf(impl interface{}) (SlotMap, error) {
	v := reflect.ValueOf(impl)
	if !v.IsValid() {
		return nil, fmt.Errorf("cannot discover methods of nil")
	}
	t := v.Type()
	methods := SlotMap{}
	var problems []string
	for i := 0; i < t.NumMethod(); i++ {
		method := t.Method(i)
		name, ok := goMethodNames[method.Name]
		if !ok {
			continue
		}
		want := binaryMethodType
		if methodNames[name].op.IsUnary() {
			want = unaryMethodType
		}
		fn := v.Method(i)
		if !fn.Type().ConvertibleTo(want) {
			problems = append(problems, fmt.Sprintf("%s.%s has signature %s, want %s", t, method.Name, fn.Type(), want))
			continue
		}
		methods[name] = fn.Convert(want).Interface()
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return methods, nil
}
