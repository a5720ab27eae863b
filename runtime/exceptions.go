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

// ExceptionType names a Python exception class. The values double as
// sentinels, so errors.Is(err, ZeroDivisionError) works for any error
// carrying that type.
type ExceptionType string

// The exceptions operator implementations raise.
const (
	TypeError         ExceptionType = "TypeError"
	ValueError        ExceptionType = "ValueError"
	ZeroDivisionError ExceptionType = "ZeroDivisionError"
	OverflowError     ExceptionType = "OverflowError"
)

func (t ExceptionType) Error() string {
	return string(t)
}

// Exception is a Python exception raised by an operator implementation.
type Exception struct {
	Type    ExceptionType
	Message string
}

func (e *Exception) Error() string {
	if e.Message == "" {
		return string(e.Type)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Is reports whether target is e's exception type.
func (e *Exception) Is(target error) bool {
	t, ok := target.(ExceptionType)
	return ok && t == e.Type
}

func raise(t ExceptionType, format string, args ...interface{}) error {
	return &Exception{Type: t, Message: fmt.Sprintf(format, args...)}
}

const (
	errResultTooLarge     = "result too large"
	errUnsupportedOperand = "unsupported operand type(s) for %s: '%s' and '%s'"
	errBadOperand         = "bad operand type for %s: '%s'"
)

// OperandTypeError reports that no implementation of an operator accepts
// the given operand types. Right is empty for unary operators.
type OperandTypeError struct {
	Op          Op
	Left, Right string
}

// Message returns the text Python shows for the error.
func (e *OperandTypeError) Message() string {
	if e.Op.IsUnary() {
		return fmt.Sprintf(errBadOperand, e.Op.Symbol(), e.Left)
	}
	return fmt.Sprintf(errUnsupportedOperand, e.Op.Symbol(), e.Left, e.Right)
}

func (e *OperandTypeError) Error() string {
	return fmt.Sprintf("%s: %s", TypeError, e.Message())
}

// Is reports whether target is TypeError.
func (e *OperandTypeError) Is(target error) bool {
	return target == TypeError
}

// Exception converts e to the TypeError the interpreter raises.
func (e *OperandTypeError) Exception() *Exception {
	return &Exception{Type: TypeError, Message: e.Message()}
}

func unaryTypeError(op Op, t *Type) *OperandTypeError {
	return &OperandTypeError{Op: op, Left: t.Name()}
}

func binaryTypeError(op Op, vt, wt *Type) *OperandTypeError {
	return &OperandTypeError{Op: op, Left: vt.Name(), Right: wt.Name()}
}
