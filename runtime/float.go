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
	"reflect"
	"strconv"
	"strings"
)

// FloatType is the object representing the Python 'float' type.
var FloatType = newBasisType("float", reflect.TypeOf(Float{}), ObjectType)

// Float represents Python 'float' objects.
type Float struct {
	Object
	value float64
}

// NewFloat returns a new Float holding the given floating point value.
func NewFloat(value float64) *Float {
	return &Float{Object: Object{typ: FloatType}, value: value}
}

func toFloatUnsafe(o *Object) *Float {
	return (*Float)(o.toPointer())
}

// ToObject upcasts f to an Object.
func (f *Float) ToObject() *Object {
	return &f.Object
}

// Value returns the underlying floating point value held by f.
func (f *Float) Value() float64 {
	return f.value
}

func floatAbs(o *Object) (*Object, error) {
	return NewFloat(math.Abs(toFloatUnsafe(o).Value())).ToObject(), nil
}

func floatAdd(v, w *Object) (*Object, error) {
	return floatArithmeticOp(v, w, func(v, w float64) float64 { return v + w })
}

func floatDivMod(v, w *Object) (*Object, error) {
	return floatDivAndModOp(v, w, floatDivModFunc)
}

func floatFloorDiv(v, w *Object) (*Object, error) {
	return floatDivModOp(v, w, "float floor division by zero", func(v, w float64) (float64, bool) {
		q, _, ok := floatDivModFunc(v, w)
		return q, ok
	})
}

func floatMod(v, w *Object) (*Object, error) {
	return floatDivModOp(v, w, "float modulo", floatModFunc)
}

func floatMul(v, w *Object) (*Object, error) {
	return floatArithmeticOp(v, w, func(v, w float64) float64 { return v * w })
}

func floatNeg(o *Object) (*Object, error) {
	return NewFloat(-toFloatUnsafe(o).Value()).ToObject(), nil
}

func floatPos(o *Object) (*Object, error) {
	if o.typ == FloatType {
		return o, nil
	}
	return NewFloat(toFloatUnsafe(o).Value()).ToObject(), nil
}

func floatPow(v, w *Object) (*Object, error) {
	x, y, ok, err := floatOperands(v, w)
	if !ok || err != nil {
		return floatDeclineOrRaise(err)
	}
	if x == 0 && y < 0 {
		return nil, raise(ZeroDivisionError, "0.0 cannot be raised to a negative power")
	}
	if x < 0 && y != math.Trunc(y) {
		// The result would be complex.
		return nil, raise(ValueError, "math domain error")
	}
	return NewFloat(math.Pow(x, y)).ToObject(), nil
}

func floatSub(v, w *Object) (*Object, error) {
	return floatArithmeticOp(v, w, func(v, w float64) float64 { return v - w })
}

func floatTrueDiv(v, w *Object) (*Object, error) {
	return floatDivModOp(v, w, "float division by zero", func(v, w float64) (float64, bool) {
		if w == 0.0 {
			return 0, false
		}
		return v / w, true
	})
}

func initFloatType() {
	defUnary(FloatType, OpAbs, floatAbs)
	defUnary(FloatType, OpNeg, floatNeg)
	defUnary(FloatType, OpPos, floatPos)
	defBinary(FloatType, OpAdd, floatAdd)
	defBinary(FloatType, OpDivMod, floatDivMod)
	defBinary(FloatType, OpFloorDiv, floatFloorDiv)
	defBinary(FloatType, OpMod, floatMod)
	defBinary(FloatType, OpMul, floatMul)
	defBinary(FloatType, OpPow, floatPow)
	defBinary(FloatType, OpSub, floatSub)
	defBinary(FloatType, OpTrueDiv, floatTrueDiv)
}

// floatOperands widens v and w to float64. ok is false when either operand
// is not a number, in which case the slot declines; err reports an int too
// large to convert.
func floatOperands(v, w *Object) (x, y float64, ok bool, err error) {
	var okV, okW bool
	if x, okV, err = floatCoerce(v); err != nil || !okV {
		return 0, 0, false, err
	}
	if y, okW, err = floatCoerce(w); err != nil || !okW {
		return 0, 0, false, err
	}
	return x, y, true, nil
}

func floatDeclineOrRaise(err error) (*Object, error) {
	if err != nil {
		return nil, err
	}
	return NotImplemented, nil
}

func floatArithmeticOp(v, w *Object, fun func(v, w float64) float64) (*Object, error) {
	x, y, ok, err := floatOperands(v, w)
	if !ok || err != nil {
		return floatDeclineOrRaise(err)
	}
	return NewFloat(fun(x, y)).ToObject(), nil
}

func floatDivModOp(v, w *Object, zeroMsg string, fun func(v, w float64) (float64, bool)) (*Object, error) {
	x, y, ok, err := floatOperands(v, w)
	if !ok || err != nil {
		return floatDeclineOrRaise(err)
	}
	z, ok := fun(x, y)
	if !ok {
		return nil, &Exception{Type: ZeroDivisionError, Message: zeroMsg}
	}
	return NewFloat(z).ToObject(), nil
}

func floatDivAndModOp(v, w *Object, fun func(v, w float64) (float64, float64, bool)) (*Object, error) {
	x, y, ok, err := floatOperands(v, w)
	if !ok || err != nil {
		return floatDeclineOrRaise(err)
	}
	q, m, ok := fun(x, y)
	if !ok {
		return nil, raise(ZeroDivisionError, "float divmod()")
	}
	return NewTuple2(NewFloat(q).ToObject(), NewFloat(m).ToObject()).ToObject(), nil
}

// floatCoerce converts a float, int or bool to a float64. ok is false for
// other operands; an int outside the range of float64 is an OverflowError.
func floatCoerce(o *Object) (float64, bool, error) {
	switch {
	case o.isInstance(FloatType):
		return toFloatUnsafe(o).Value(), true, nil
	case o.isInstance(IntType):
		f, err := intToFloat(&toIntUnsafe(o).value)
		if err != nil {
			return 0, false, err
		}
		return f, true, nil
	default:
		return 0, false, nil
	}
}

// floatDivModFunc returns Python's v // w and v % w. The quotient is
// derived from the modulus rather than from v / w, so that 1 // -inf is -1
// and inf // 1 is nan.
func floatDivModFunc(v, w float64) (float64, float64, bool) {
	if w == 0.0 {
		return 0, 0, false
	}
	mod := math.Mod(v, w)
	div := (v - mod) / w
	if mod != 0 {
		if (w < 0) != (mod < 0) {
			mod += w
			div -= 1.0
		}
	} else {
		mod = math.Copysign(0, w)
	}
	if div == 0 {
		return math.Copysign(0, v/w), mod, true
	}
	q := math.Floor(div)
	if div-q > 0.5 {
		q += 1.0
	}
	return q, mod, true
}

func floatModFunc(v, w float64) (float64, bool) {
	if w == 0.0 {
		return 0, false
	}
	x := math.Mod(v, w)
	if x != 0 && math.Signbit(x) != math.Signbit(w) {
		// In Python the result of the modulo operator is
		// always the same sign as the divisor, whereas in Go,
		// the result is always the same sign as the dividend.
		// Therefore we need to do an adjustment when the sign
		// of the modulo result differs from that of the
		// divisor.
		x += w
	}
	return x, true
}

// floatRepr formats x the way Python's repr does: the shortest string that
// round trips, always with a decimal point or an exponent.
func floatRepr(x float64) string {
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	if abs := math.Abs(x); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(x, 'e', -1, 64)
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
