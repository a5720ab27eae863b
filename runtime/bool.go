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
	"math/big"
)

// GetBool returns True if v is true, False otherwise.
func GetBool(v bool) *Int {
	if v {
		return True
	}
	return False
}

// BoolType is the object representing the Python 'bool' type.
var BoolType = newSimpleType("bool", IntType)

var (
	// False is the singleton bool object representing the Python 'False'
	// object.
	False = newBool(0)
	// True is the singleton bool object representing the Python 'True'
	// object.
	True = newBool(1)
)

func newBool(x int64) *Int {
	b := &Int{Object: Object{typ: BoolType}}
	b.value.SetInt64(x)
	return b
}

// boolBitwiseOpSlot returns a slot that keeps bool & bool a bool and
// otherwise behaves like int's operator.
func boolBitwiseOpSlot(fun func(z, x, y *big.Int)) BinaryOpFunc {
	intFn := intBinaryOpSlot(fun)
	return func(v, w *Object) (*Object, error) {
		if v.isInstance(BoolType) && w.isInstance(BoolType) {
			z := big.Int{}
			fun(&z, &toIntUnsafe(v).value, &toIntUnsafe(w).value)
			return GetBool(z.Sign() != 0).ToObject(), nil
		}
		return intFn(v, w)
	}
}

func initBoolType() {
	BoolType.flags &^= typeFlagBasetype
	defBinary(BoolType, OpAnd, boolBitwiseOpSlot(intAnd))
	defBinary(BoolType, OpOr, boolBitwiseOpSlot(intOr))
	defBinary(BoolType, OpXor, boolBitwiseOpSlot(intXor))
}
