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
	"gopkg.in/op/go-logging.v1"
)

var (
	log      = logging.MustGetLogger("pyrt")
	logFatal = func(msg string) { log.Fatal(msg) }
)

// UnaryOp applies the unary operator op to v, resolving the dispatch on
// every call. Use a UnaryCallSite to cache the resolution.
func UnaryOp(op Op, v *Object) (*Object, error) {
	plan, err := ResolveUnary(op, v.typ)
	if err != nil {
		return nil, err
	}
	return plan.Fn(v)
}

// BinaryOp applies the binary operator op to v and w, resolving the
// dispatch on every call. Use a BinaryCallSite to cache the resolution.
func BinaryOp(op Op, v, w *Object) (*Object, error) {
	plan, err := ResolveBinary(op, v.typ, w.typ)
	if err != nil {
		return nil, err
	}
	return plan.Fn(v, w)
}

// InplaceOp applies the augmented assignment operator op to v and w and
// returns the value to be stored back into v's location.
func InplaceOp(op Op, v, w *Object) (*Object, error) {
	plan, err := ResolveInplace(op, v.typ, w.typ)
	if err != nil {
		return nil, err
	}
	return plan.Fn(v, w)
}

// Abs returns the result of o.__abs__ and is equivalent to the Python
// expression "abs(o)".
func Abs(o *Object) (*Object, error) {
	return UnaryOp(OpAbs, o)
}

// Invert returns the result of o.__invert__ and is equivalent to the Python
// expression "~o".
func Invert(o *Object) (*Object, error) {
	return UnaryOp(OpInvert, o)
}

// Neg returns the result of o.__neg__ and is equivalent to the Python
// expression "-o".
func Neg(o *Object) (*Object, error) {
	return UnaryOp(OpNeg, o)
}

// Pos returns the result of o.__pos__ and is equivalent to the Python
// expression "+o".
func Pos(o *Object) (*Object, error) {
	return UnaryOp(OpPos, o)
}

// Add returns the result of adding v and w together according to the
// __add/radd__ operator.
func Add(v, w *Object) (*Object, error) {
	return BinaryOp(OpAdd, v, w)
}

// And returns the result of the bitwise and operator v & w according to
// __and/rand__.
func And(v, w *Object) (*Object, error) {
	return BinaryOp(OpAnd, v, w)
}

// DivMod returns the result (quotient and remainder tuple) of dividing v by w
// according to the __divmod/rdivmod__ operator.
func DivMod(v, w *Object) (*Object, error) {
	return BinaryOp(OpDivMod, v, w)
}

// FloorDiv returns the equivalent of the Python expression v // w.
func FloorDiv(v, w *Object) (*Object, error) {
	return BinaryOp(OpFloorDiv, v, w)
}

// LShift returns the result of v << w according to the __lshift/rlshift__
// operator.
func LShift(v, w *Object) (*Object, error) {
	return BinaryOp(OpLShift, v, w)
}

// Mod returns the remainder from the division of v by w according to the
// __mod/rmod__ operator.
func Mod(v, w *Object) (*Object, error) {
	return BinaryOp(OpMod, v, w)
}

// Mul returns the result of multiplying v and w together according to the
// __mul/rmul__ operator.
func Mul(v, w *Object) (*Object, error) {
	return BinaryOp(OpMul, v, w)
}

// Or returns the result of the bitwise or operator v | w according to
// __or/ror__.
func Or(v, w *Object) (*Object, error) {
	return BinaryOp(OpOr, v, w)
}

// Pow returns the result of x**y, the base-x exponential of y according to
// the __pow/rpow__ operator.
func Pow(v, w *Object) (*Object, error) {
	return BinaryOp(OpPow, v, w)
}

// RShift returns the result of v >> w according to the __rshift/rrshift__
// operator.
func RShift(v, w *Object) (*Object, error) {
	return BinaryOp(OpRShift, v, w)
}

// Sub returns the result of subtracting w from v according to the
// __sub/rsub__ operator.
func Sub(v, w *Object) (*Object, error) {
	return BinaryOp(OpSub, v, w)
}

// TrueDiv returns the result of v / w according to the __truediv/rtruediv__
// operator.
func TrueDiv(v, w *Object) (*Object, error) {
	return BinaryOp(OpTrueDiv, v, w)
}

// Xor returns the result of the bitwise xor operator v ^ w according to
// __xor/rxor__.
func Xor(v, w *Object) (*Object, error) {
	return BinaryOp(OpXor, v, w)
}

// IAdd returns the result of v.__iadd__ if defined, otherwise falls back to
// Add.
func IAdd(v, w *Object) (*Object, error) {
	return InplaceOp(OpIAdd, v, w)
}

// IAnd returns the result of v.__iand__ if defined, otherwise falls back to
// And.
func IAnd(v, w *Object) (*Object, error) {
	return InplaceOp(OpIAnd, v, w)
}

// IFloorDiv returns the result of v.__ifloordiv__ if defined, otherwise
// falls back to FloorDiv.
func IFloorDiv(v, w *Object) (*Object, error) {
	return InplaceOp(OpIFloorDiv, v, w)
}

// ILShift returns the result of v.__ilshift__ if defined, otherwise falls
// back to LShift.
func ILShift(v, w *Object) (*Object, error) {
	return InplaceOp(OpILShift, v, w)
}

// IMod returns the result of v.__imod__ if defined, otherwise falls back to
// Mod.
func IMod(v, w *Object) (*Object, error) {
	return InplaceOp(OpIMod, v, w)
}

// IMul returns the result of v.__imul__ if defined, otherwise falls back to
// Mul.
func IMul(v, w *Object) (*Object, error) {
	return InplaceOp(OpIMul, v, w)
}

// IOr returns the result of v.__ior__ if defined, otherwise falls back to Or.
func IOr(v, w *Object) (*Object, error) {
	return InplaceOp(OpIOr, v, w)
}

// IPow returns the result of v.__ipow__ if defined, otherwise falls back to
// Pow.
func IPow(v, w *Object) (*Object, error) {
	return InplaceOp(OpIPow, v, w)
}

// IRShift returns the result of v.__irshift__ if defined, otherwise falls
// back to RShift.
func IRShift(v, w *Object) (*Object, error) {
	return InplaceOp(OpIRShift, v, w)
}

// ISub returns the result of v.__isub__ if defined, otherwise falls back to
// Sub.
func ISub(v, w *Object) (*Object, error) {
	return InplaceOp(OpISub, v, w)
}

// ITrueDiv returns the result of v.__itruediv__ if defined, otherwise falls
// back to TrueDiv.
func ITrueDiv(v, w *Object) (*Object, error) {
	return InplaceOp(OpITrueDiv, v, w)
}

// IXor returns the result of v.__ixor__ if defined, otherwise falls back to
// Xor.
func IXor(v, w *Object) (*Object, error) {
	return InplaceOp(OpIXor, v, w)
}
