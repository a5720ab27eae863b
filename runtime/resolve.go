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
)

// UnaryPlan is a resolved unary dispatch decision.
type UnaryPlan struct {
	Op Op
	// Type is the type that defined the slot Fn calls.
	Type *Type
	Fn   UnaryOpFunc
}

func (p *UnaryPlan) String() string {
	return fmt.Sprintf("%s.%s", p.Type.Name(), p.Op)
}

// BinaryPlan is a resolved binary dispatch decision: which implementations
// run, in which order. Whether an implementation declines is decided each
// time Fn runs, never at resolution.
type BinaryPlan struct {
	Op Op
	// First and Second are the types whose slots are tried, in order.
	// Second is nil when only one slot takes part.
	First, Second *Type
	Fn            BinaryOpFunc
	// fallback is the binary plan an in-place plan falls back to.
	fallback *BinaryPlan
}

func (p *BinaryPlan) String() string {
	s := fmt.Sprintf("%s.%s", p.First.Name(), p.Op)
	if p.fallback != nil {
		return fmt.Sprintf("%s then (%s)", s, p.fallback)
	}
	if p.Second != nil {
		s += fmt.Sprintf(" then %s.%s", p.Second.Name(), p.Op)
	}
	return s
}

// ResolveUnary finds the implementation of op for operands of type t. It
// fails with an *OperandTypeError when t has none.
func ResolveUnary(op Op, t *Type) (*UnaryPlan, error) {
	if !op.IsUnary() {
		return nil, fmt.Errorf("%s is not a unary operator", op)
	}
	slot := t.slots().unary(op)
	if slot == nil {
		return nil, unaryTypeError(op, t)
	}
	fn := slot.Fn
	return &UnaryPlan{Op: op, Type: slot.t, Fn: func(v *Object) (*Object, error) {
		r, err := fn(v)
		if err == nil && r == NotImplemented {
			return nil, unaryTypeError(op, v.typ)
		}
		return r, err
	}}, nil
}

// ResolveBinary decides how op is dispatched for a left operand of type vt
// and a right operand of type wt. It is similar to CPython's binary_op1
// function from abstract.c, except that the decision is returned as a plan
// that can be cached and called many times.
//
// Both slots are always called with the operands in source order.
func ResolveBinary(op Op, vt, wt *Type) (*BinaryPlan, error) {
	if !op.IsBinary() {
		return nil, fmt.Errorf("%s is not a binary operator", op)
	}
	return resolveBinary(op, op, vt, wt)
}

// resolveBinary resolves op, reporting failures against errOp, which
// differs from op when an in-place operator falls back to op.
func resolveBinary(op, errOp Op, vt, wt *Type) (*BinaryPlan, error) {
	slotV := vt.slots().binary(op)
	slotW := wt.slots().binary(op)
	if vt == wt || slotV == slotW {
		// A type never needs a second opinion on its own operation.
		if slotV == nil {
			return nil, binaryTypeError(errOp, vt, wt)
		}
		return singlePlan(op, errOp, slotV), nil
	}
	first, second := slotV, slotW
	if IsSubtype(wt, vt) {
		// w is an instance of a proper subclass of type(v), so its
		// implementation is more specific.
		first, second = slotW, slotV
	}
	switch {
	case first == nil && second == nil:
		return nil, binaryTypeError(errOp, vt, wt)
	case first == nil:
		return singlePlan(op, errOp, second), nil
	case second == nil:
		return singlePlan(op, errOp, first), nil
	}
	fn1, fn2 := first.Fn, second.Fn
	return &BinaryPlan{Op: op, First: first.t, Second: second.t, Fn: func(v, w *Object) (*Object, error) {
		r, err := fn1(v, w)
		if err != nil || r != NotImplemented {
			return r, err
		}
		r, err = fn2(v, w)
		if err != nil || r != NotImplemented {
			return r, err
		}
		return nil, binaryTypeError(errOp, v.typ, w.typ)
	}}, nil
}

func singlePlan(op, errOp Op, slot *BinarySlot) *BinaryPlan {
	fn := slot.Fn
	return &BinaryPlan{Op: op, First: slot.t, Fn: func(v, w *Object) (*Object, error) {
		r, err := fn(v, w)
		if err == nil && r == NotImplemented {
			return nil, binaryTypeError(errOp, v.typ, w.typ)
		}
		return r, err
	}}
}

// ResolveInplace decides how the augmented assignment op is dispatched. If
// vt implements op it is tried first, and the binary protocol for the
// corresponding binary operator is the fallback when it declines.
// Otherwise the plan is the binary plan. Failures name the augmented
// operator.
func ResolveInplace(op Op, vt, wt *Type) (*BinaryPlan, error) {
	if !op.IsInplace() {
		return nil, fmt.Errorf("%s is not an in-place operator", op)
	}
	fallback, err := resolveBinary(op.Binary(), op, vt, wt)
	slot := vt.slots().binary(op)
	if slot == nil {
		return fallback, err
	}
	if err != nil {
		return singlePlan(op, op, slot), nil
	}
	fn, next := slot.Fn, fallback.Fn
	return &BinaryPlan{Op: op, First: slot.t, fallback: fallback, Fn: func(v, w *Object) (*Object, error) {
		r, err := fn(v, w)
		if err != nil || r != NotImplemented {
			return r, err
		}
		return next(v, w)
	}}, nil
}
