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

// UnaryOpFunc implements a unary operator. It may return NotImplemented to
// decline, although the unary protocol has nobody else to ask.
type UnaryOpFunc func(v *Object) (*Object, error)

// BinaryOpFunc implements a binary operator. The operands are always passed
// in source order, whichever side's type provided the function, so an
// implementation must check both operands and return NotImplemented for
// combinations it does not handle.
type BinaryOpFunc func(v, w *Object) (*Object, error)

// Slot is the content of one registry entry: a *UnarySlot or a *BinarySlot.
// A nil Slot is an empty entry.
type Slot interface {
	// owner is the type whose definition produced the slot.
	owner() *Type
}

// UnarySlot holds a unary operator implementation. The wrapper struct makes
// slots comparable by pointer, which functions are not.
type UnarySlot struct {
	Fn UnaryOpFunc
	t  *Type
}

func (s *UnarySlot) owner() *Type {
	return s.t
}

// Owner returns the type that defined the slot.
func (s *UnarySlot) Owner() *Type {
	return s.t
}

// BinarySlot holds a binary operator implementation. Two types share a
// BinarySlot pointer exactly when one inherited the implementation from
// the other, which lets the resolver skip the second opinion.
type BinarySlot struct {
	Fn BinaryOpFunc
	t  *Type
	// rowner is the class whose reflected method a class slot calls, or
	// nil when it calls none.
	rowner *Type
}

func (s *BinarySlot) owner() *Type {
	return s.t
}

// Owner returns the type that defined the slot.
func (s *BinarySlot) Owner() *Type {
	return s.t
}

// slotTable is a published registry row. A row is never modified after it
// has been published; writers build a fresh row and swap it in.
type slotTable struct {
	slots [numOps]Slot
}

func (r *slotTable) unary(op Op) *UnarySlot {
	switch s := r.slots[op].(type) {
	case nil:
		return nil
	case *UnarySlot:
		return s
	default:
		logFatal(fmt.Sprintf("slot %s of '%s' holds %T", op, s.owner().Name(), s))
		return nil
	}
}

func (r *slotTable) binary(op Op) *BinarySlot {
	switch s := r.slots[op].(type) {
	case nil:
		return nil
	case *BinarySlot:
		return s
	default:
		logFatal(fmt.Sprintf("slot %s of '%s' holds %T", op, s.owner().Name(), s))
		return nil
	}
}

// makeSlot wraps fn in the slot struct appropriate for op. fn may be a
// UnaryOpFunc, a BinaryOpFunc or the equivalent unnamed func types.
func makeSlot(t *Type, op Op, fn interface{}) (Slot, error) {
	if !op.valid() {
		return nil, fmt.Errorf("invalid operator %s", op)
	}
	if op.IsUnary() {
		switch f := fn.(type) {
		case UnaryOpFunc:
			if f != nil {
				return &UnarySlot{Fn: f, t: t}, nil
			}
		case func(*Object) (*Object, error):
			if f != nil {
				return &UnarySlot{Fn: f, t: t}, nil
			}
		default:
			return nil, fmt.Errorf("%s requires a UnaryOpFunc, got %T", op, fn)
		}
		return nil, fmt.Errorf("%s: nil implementation", op)
	}
	switch f := fn.(type) {
	case BinaryOpFunc:
		if f != nil {
			return &BinarySlot{Fn: f, t: t}, nil
		}
	case func(*Object, *Object) (*Object, error):
		if f != nil {
			return &BinarySlot{Fn: f, t: t}, nil
		}
	default:
		return nil, fmt.Errorf("%s requires a BinaryOpFunc, got %T", op, fn)
	}
	return nil, fmt.Errorf("%s: nil implementation", op)
}
