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
)

func seqAdd(elems1, elems2 []*Object) ([]*Object, error) {
	if len(elems1)+len(elems2) < 0 {
		// This indicates an int overflow.
		return nil, raise(OverflowError, errResultTooLarge)
	}
	result := make([]*Object, 0, len(elems1)+len(elems2))
	result = append(result, elems1...)
	return append(result, elems2...), nil
}

func seqMul(elems []*Object, n int) ([]*Object, error) {
	if n <= 0 || len(elems) == 0 {
		return nil, nil
	}
	numElems := len(elems)
	if numElems > math.MaxInt/n {
		return nil, raise(OverflowError, errResultTooLarge)
	}
	newNumElems := numElems * n
	resultElems := make([]*Object, newNumElems)
	for i := 0; i < newNumElems; i++ {
		resultElems[i] = elems[i%numElems]
	}
	return resultElems, nil
}

// seqRepeatOperands picks the sequence and the repeat count out of the
// operands of a repetition. Either operand may be the sequence, because a
// sequence type's slot also runs when the int on its left declines.
func seqRepeatOperands(t *Type, v, w *Object) (seq, mult *Object, ok bool) {
	switch {
	case v.isInstance(t) && w.isInstance(IntType):
		return v, w, true
	case w.isInstance(t) && v.isInstance(IntType):
		return w, v, true
	}
	return nil, nil, false
}

// seqRepeatCount converts mult to a repeat count for a sequence of
// numElems elements. Counts below zero repeat zero times.
func seqRepeatCount(numElems int, mult *Object) (int, error) {
	value := &toIntUnsafe(mult).value
	if value.Sign() <= 0 {
		return 0, nil
	}
	if !value.IsInt64() || value.Int64() > math.MaxInt {
		return 0, raise(OverflowError, "cannot fit '%s' into an index-sized integer", mult.typ.Name())
	}
	n := int(value.Int64())
	if numElems > 0 && numElems > math.MaxInt/n {
		return 0, raise(OverflowError, errResultTooLarge)
	}
	return n, nil
}
