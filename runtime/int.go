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
	"math"
	"math/big"
	"reflect"
)

// Although Python ints are immutable, the value field of Int is mutable
// for the convenience of using big.Int as the value. Results must be
// computed into a fresh Int before it is made available to the rest of
// the program.

// Int represents Python 'int' objects.
type Int struct {
	Object
	value big.Int
}

// NewInt returns a new Int holding the given value.
func NewInt(x int64) *Int {
	result := &Int{Object: Object{typ: IntType}}
	result.value.SetInt64(x)
	return result
}

// NewIntFromBig returns a new Int holding a copy of x.
func NewIntFromBig(x *big.Int) *Int {
	result := &Int{Object: Object{typ: IntType}}
	result.value.Set(x)
	return result
}

// NewIntOf returns an instance of the int subclass t holding a copy of x.
func NewIntOf(t *Type, x *big.Int) (*Int, error) {
	if !IsSubtype(t, IntType) {
		return nil, raise(TypeError, "int.__new__(%s): %s is not a subtype of int", t.Name(), t.Name())
	}
	if IsSubtype(t, BoolType) {
		return nil, raise(TypeError, "cannot create '%s' instances", t.Name())
	}
	result := toIntUnsafe(newObject(t))
	result.value.Set(x)
	return result, nil
}

func toIntUnsafe(o *Object) *Int {
	return (*Int)(o.toPointer())
}

// ToObject upcasts i to an Object.
func (i *Int) ToObject() *Object {
	return &i.Object
}

// Value returns a copy of the integer value held by i.
func (i *Int) Value() *big.Int {
	return new(big.Int).Set(&i.value)
}

// IsTrue returns false if i is zero, true otherwise.
func (i *Int) IsTrue() bool {
	return i.value.Sign() != 0
}

// IntType is the object representing the Python 'int' type.
var IntType = newBasisType("int", reflect.TypeOf(Int{}), ObjectType)

func intAbs(z, x *big.Int) {
	z.Abs(x)
}

func intAdd(z, x, y *big.Int) {
	z.Add(x, y)
}

func intAnd(z, x, y *big.Int) {
	z.And(x, y)
}

func intFloorDiv(z, x, y *big.Int) {
	m := big.Int{}
	numDivMod(x, y, z, &m)
}

func intDivMod(z, m, x, y *big.Int) {
	numDivMod(x, y, z, m)
}

func intInvert(z, x *big.Int) {
	z.Not(x)
}

func intLShift(z, x *big.Int, n uint) {
	z.Lsh(x, n)
}

func intMod(m, x, y *big.Int) {
	z := big.Int{}
	numDivMod(x, y, &z, m)
}

func intMul(z, x, y *big.Int) {
	z.Mul(x, y)
}

func intNeg(z, x *big.Int) {
	z.Neg(x)
}

func intOr(z, x, y *big.Int) {
	z.Or(x, y)
}

func intPos(z, x *big.Int) {
	z.Set(x)
}

func intRShift(z, x *big.Int, n uint) {
	z.Rsh(x, n)
}

func intSub(z, x, y *big.Int) {
	z.Sub(x, y)
}

func intXor(z, x, y *big.Int) {
	z.Xor(x, y)
}

func intTrueDiv(v, w *Object) (*Object, error) {
	x, y, ok := intOperands(v, w)
	if !ok {
		return NotImplemented, nil
	}
	if y.Sign() == 0 {
		return nil, raise(ZeroDivisionError, "division by zero")
	}
	q, _ := new(big.Rat).SetFrac(x, y).Float64()
	if math.IsInf(q, 0) {
		return nil, raise(OverflowError, "integer division result too large for a float")
	}
	return NewFloat(q).ToObject(), nil
}

func intPow(v, w *Object) (*Object, error) {
	x, y, ok := intOperands(v, w)
	if !ok {
		return NotImplemented, nil
	}
	if y.Sign() < 0 {
		// The result will be a float, so we call the floating point
		// function.
		if x.Sign() == 0 {
			return nil, raise(ZeroDivisionError, "0.0 cannot be raised to a negative power")
		}
		fx, err := intToFloat(x)
		if err != nil {
			return nil, err
		}
		fy, err := intToFloat(y)
		if err != nil {
			return nil, err
		}
		return NewFloat(math.Pow(fx, fy)).ToObject(), nil
	}
	return NewIntFromBig(new(big.Int).Exp(x, y, nil)).ToObject(), nil
}

func initIntType() {
	defUnary(IntType, OpAbs, intUnaryOpSlot(intAbs))
	defUnary(IntType, OpInvert, intUnaryOpSlot(intInvert))
	defUnary(IntType, OpNeg, intUnaryOpSlot(intNeg))
	defUnary(IntType, OpPos, intUnaryOpSlot(intPos))
	defBinary(IntType, OpAdd, intBinaryOpSlot(intAdd))
	defBinary(IntType, OpAnd, intBinaryOpSlot(intAnd))
	defBinary(IntType, OpDivMod, intDivAndModOpSlot(intDivMod))
	defBinary(IntType, OpFloorDiv, intDivModOpSlot(intFloorDiv))
	defBinary(IntType, OpLShift, intShiftOpSlot(intLShift, true))
	defBinary(IntType, OpMod, intDivModOpSlot(intMod))
	defBinary(IntType, OpMul, intBinaryOpSlot(intMul))
	defBinary(IntType, OpOr, intBinaryOpSlot(intOr))
	// These operations can return a float, they are not built from the
	// big.Int helpers.
	defBinary(IntType, OpPow, intPow)
	defBinary(IntType, OpTrueDiv, intTrueDiv)
	defBinary(IntType, OpRShift, intShiftOpSlot(intRShift, false))
	defBinary(IntType, OpSub, intBinaryOpSlot(intSub))
	defBinary(IntType, OpXor, intBinaryOpSlot(intXor))
}

// intOperands returns the values of v and w, or false unless both are
// ints. Operands arrive in source order whichever of them supplied the
// slot, so both sides are checked.
func intOperands(v, w *Object) (x, y *big.Int, ok bool) {
	if !v.isInstance(IntType) || !w.isInstance(IntType) {
		return nil, nil, false
	}
	return &toIntUnsafe(v).value, &toIntUnsafe(w).value, true
}

func intCallUnary(fun func(z, x *big.Int), v *Int) *Object {
	i := Int{Object: Object{typ: IntType}}
	fun(&i.value, &v.value)
	return i.ToObject()
}

func intCallBinary(fun func(z, x, y *big.Int), x, y *big.Int) *Object {
	i := Int{Object: Object{typ: IntType}}
	fun(&i.value, x, y)
	return i.ToObject()
}

func intCallBinaryTuple(fun func(z, m, x, y *big.Int), x, y *big.Int) *Object {
	q := Int{Object: Object{typ: IntType}}
	m := Int{Object: Object{typ: IntType}}
	fun(&q.value, &m.value, x, y)
	return NewTuple2(q.ToObject(), m.ToObject()).ToObject()
}

// maxShift bounds shift counts. Larger left shifts of a non-zero value
// could not be represented.
const maxShift = math.MaxInt32

func intCallShift(fun func(z, x *big.Int, n uint), x, y *big.Int, left bool) (*Object, error) {
	if y.Sign() < 0 {
		return nil, raise(ValueError, "negative shift count")
	}
	if !y.IsInt64() || y.Int64() > maxShift {
		if !left {
			// Everything has been shifted out.
			if x.Sign() < 0 {
				return NewInt(-1).ToObject(), nil
			}
			return NewInt(0).ToObject(), nil
		}
		if x.Sign() != 0 {
			return nil, raise(OverflowError, "too many digits in integer")
		}
		return NewInt(0).ToObject(), nil
	}
	i := Int{Object: Object{typ: IntType}}
	fun(&i.value, x, uint(y.Int64()))
	return i.ToObject(), nil
}

func intUnaryOpSlot(fun func(z, x *big.Int)) UnaryOpFunc {
	return func(v *Object) (*Object, error) {
		return intCallUnary(fun, toIntUnsafe(v)), nil
	}
}

func intBinaryOpSlot(fun func(z, x, y *big.Int)) BinaryOpFunc {
	return func(v, w *Object) (*Object, error) {
		x, y, ok := intOperands(v, w)
		if !ok {
			return NotImplemented, nil
		}
		return intCallBinary(fun, x, y), nil
	}
}

func intDivModOpSlot(fun func(z, x, y *big.Int)) BinaryOpFunc {
	return func(v, w *Object) (*Object, error) {
		x, y, ok := intOperands(v, w)
		if !ok {
			return NotImplemented, nil
		}
		if y.Sign() == 0 {
			return nil, raise(ZeroDivisionError, "integer division or modulo by zero")
		}
		return intCallBinary(fun, x, y), nil
	}
}

func intDivAndModOpSlot(fun func(z, m, x, y *big.Int)) BinaryOpFunc {
	return func(v, w *Object) (*Object, error) {
		x, y, ok := intOperands(v, w)
		if !ok {
			return NotImplemented, nil
		}
		if y.Sign() == 0 {
			return nil, raise(ZeroDivisionError, "integer division or modulo by zero")
		}
		return intCallBinaryTuple(fun, x, y), nil
	}
}

func intShiftOpSlot(fun func(z, x *big.Int, n uint), left bool) BinaryOpFunc {
	return func(v, w *Object) (*Object, error) {
		x, y, ok := intOperands(v, w)
		if !ok {
			return NotImplemented, nil
		}
		return intCallShift(fun, x, y, left)
	}
}

// intToFloat converts x to the nearest float64.
func intToFloat(x *big.Int) (float64, error) {
	f, _ := new(big.Float).SetInt(x).Float64()
	if math.IsInf(f, 0) {
		return 0, raise(OverflowError, "int too large to convert to float")
	}
	return f, nil
}
