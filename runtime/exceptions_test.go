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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExceptionError(t *testing.T) {
	cases := []struct {
		exc  *Exception
		want string
	}{
		{&Exception{Type: ValueError, Message: "negative shift count"}, "ValueError: negative shift count"},
		{&Exception{Type: OverflowError}, "OverflowError"},
		{raise(ZeroDivisionError, "%s by zero", "division").(*Exception), "ZeroDivisionError: division by zero"},
	}
	for _, cas := range cases {
		assert.Equal(t, cas.want, cas.exc.Error())
	}
}

func TestExceptionIs(t *testing.T) {
	err := fmt.Errorf("context: %w", raise(ZeroDivisionError, "float modulo"))
	assert.True(t, errors.Is(err, ZeroDivisionError))
	assert.False(t, errors.Is(err, TypeError))
	var exc *Exception
	assert.True(t, errors.As(err, &exc))
	assert.Equal(t, "float modulo", exc.Message)
}

func TestOperandTypeErrorMessages(t *testing.T) {
	cases := []struct {
		err  *OperandTypeError
		want string
	}{
		{unaryTypeError(OpNeg, StrType), "bad operand type for unary -: 'str'"},
		{unaryTypeError(OpAbs, TupleType), "bad operand type for abs(): 'tuple'"},
		{binaryTypeError(OpPow, StrType, IntType), "unsupported operand type(s) for ** or pow(): 'str' and 'int'"},
		{binaryTypeError(OpIFloorDiv, FloatType, StrType), "unsupported operand type(s) for //=: 'float' and 'str'"},
	}
	for _, cas := range cases {
		assert.Equal(t, cas.want, cas.err.Message())
		assert.Equal(t, "TypeError: "+cas.want, cas.err.Error())
		assert.ErrorIs(t, cas.err, TypeError)
	}
}
