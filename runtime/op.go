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
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Op identifies an operator that has a slot in every type's registry row.
type Op int

// Unary operators come first, then binary operators, then their in-place
// forms. The order of the in-place block mirrors the binary block.
const (
	OpNeg Op = iota
	OpPos
	OpInvert
	OpAbs
	OpAdd
	OpSub
	OpMul
	OpTrueDiv
	OpFloorDiv
	OpMod
	OpDivMod
	OpPow
	OpLShift
	OpRShift
	OpAnd
	OpXor
	OpOr
	OpIAdd
	OpISub
	OpIMul
	OpITrueDiv
	OpIFloorDiv
	OpIMod
	OpIPow
	OpILShift
	OpIRShift
	OpIAnd
	OpIXor
	OpIOr
	numOps
)

type opKind int

const (
	opKindUnary opKind = iota
	opKindBinary
	opKindInplace
)

type opInfo struct {
	// name is the Go method name an implementation uses for the operator,
	// e.g. "Add". The dunder names are derived from it.
	name   string
	symbol string
	kind   opKind
	// binary is the operator an in-place operator falls back to.
	binary Op
}

var opInfos = [numOps]opInfo{
	OpNeg:       {name: "Neg", symbol: "unary -", kind: opKindUnary},
	OpPos:       {name: "Pos", symbol: "unary +", kind: opKindUnary},
	OpInvert:    {name: "Invert", symbol: "unary ~", kind: opKindUnary},
	OpAbs:       {name: "Abs", symbol: "abs()", kind: opKindUnary},
	OpAdd:       {name: "Add", symbol: "+", kind: opKindBinary},
	OpSub:       {name: "Sub", symbol: "-", kind: opKindBinary},
	OpMul:       {name: "Mul", symbol: "*", kind: opKindBinary},
	OpTrueDiv:   {name: "TrueDiv", symbol: "/", kind: opKindBinary},
	OpFloorDiv:  {name: "FloorDiv", symbol: "//", kind: opKindBinary},
	OpMod:       {name: "Mod", symbol: "%", kind: opKindBinary},
	OpDivMod:    {name: "DivMod", symbol: "divmod()", kind: opKindBinary},
	OpPow:       {name: "Pow", symbol: "** or pow()", kind: opKindBinary},
	OpLShift:    {name: "LShift", symbol: "<<", kind: opKindBinary},
	OpRShift:    {name: "RShift", symbol: ">>", kind: opKindBinary},
	OpAnd:       {name: "And", symbol: "&", kind: opKindBinary},
	OpXor:       {name: "Xor", symbol: "^", kind: opKindBinary},
	OpOr:        {name: "Or", symbol: "|", kind: opKindBinary},
	OpIAdd:      {name: "IAdd", symbol: "+=", kind: opKindInplace, binary: OpAdd},
	OpISub:      {name: "ISub", symbol: "-=", kind: opKindInplace, binary: OpSub},
	OpIMul:      {name: "IMul", symbol: "*=", kind: opKindInplace, binary: OpMul},
	OpITrueDiv:  {name: "ITrueDiv", symbol: "/=", kind: opKindInplace, binary: OpTrueDiv},
	OpIFloorDiv: {name: "IFloorDiv", symbol: "//=", kind: opKindInplace, binary: OpFloorDiv},
	OpIMod:      {name: "IMod", symbol: "%=", kind: opKindInplace, binary: OpMod},
	OpIPow:      {name: "IPow", symbol: "**=", kind: opKindInplace, binary: OpPow},
	OpILShift:   {name: "ILShift", symbol: "<<=", kind: opKindInplace, binary: OpLShift},
	OpIRShift:   {name: "IRShift", symbol: ">>=", kind: opKindInplace, binary: OpRShift},
	OpIAnd:      {name: "IAnd", symbol: "&=", kind: opKindInplace, binary: OpAnd},
	OpIXor:      {name: "IXor", symbol: "^=", kind: opKindInplace, binary: OpXor},
	OpIOr:       {name: "IOr", symbol: "|=", kind: opKindInplace, binary: OpOr},
}

var (
	opDunders, opReflectedDunders = calcOpNames()
	// methodNames maps every dunder name a class may define to the
	// operator it fills and whether it is the reflected form.
	methodNames = calcMethodNames()
)

func calcOpNames() (dunders, reflected [numOps]string) {
	for op := Op(0); op < numOps; op++ {
		lower := strings.ToLower(opInfos[op].name)
		dunders[op] = fmt.Sprintf("__%s__", lower)
		if opInfos[op].kind == opKindBinary {
			reflected[op] = fmt.Sprintf("__r%s__", lower)
		}
	}
	return dunders, reflected
}

type methodName struct {
	op        Op
	reflected bool
}

func calcMethodNames() map[string]methodName {
	names := make(map[string]methodName, 2*int(numOps))
	for op := Op(0); op < numOps; op++ {
		names[opDunders[op]] = methodName{op: op}
		if r := opReflectedDunders[op]; r != "" {
			names[r] = methodName{op: op, reflected: true}
		}
	}
	return names
}

// String returns the operator's dunder name, e.g. "__add__".
func (op Op) String() string {
	if op < 0 || op >= numOps {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opDunders[op]
}

// Name returns the short lower case name of op, e.g. "add".
func (op Op) Name() string {
	return strings.ToLower(opInfos[op].name)
}

// Symbol returns the operator as it appears in type error messages, e.g.
// "+" or "unary -".
func (op Op) Symbol() string {
	return opInfos[op].symbol
}

// ReflectedName returns the reflected dunder name of a binary operator,
// e.g. "__radd__", or "" for other operators.
func (op Op) ReflectedName() string {
	return opReflectedDunders[op]
}

// IsUnary reports whether op takes a single operand.
func (op Op) IsUnary() bool {
	return op.valid() && opInfos[op].kind == opKindUnary
}

// IsBinary reports whether op is an ordinary two operand operator.
func (op Op) IsBinary() bool {
	return op.valid() && opInfos[op].kind == opKindBinary
}

// IsInplace reports whether op is an augmented assignment operator.
func (op Op) IsInplace() bool {
	return op.valid() && opInfos[op].kind == opKindInplace
}

// Binary returns the binary operator an in-place operator falls back to.
// It returns op itself for other operators.
func (op Op) Binary() Op {
	if op.IsInplace() {
		return opInfos[op].binary
	}
	return op
}

func (op Op) valid() bool {
	return op >= 0 && op < numOps
}

// Ops returns every operator in slot order.
func Ops() []Op {
	ops := make([]Op, numOps)
	for i := range ops {
		ops[i] = Op(i)
	}
	return ops
}

// ParseOp converts a short name ("add"), a dunder name ("__add__") or an
// operator symbol ("+") into an Op.
func ParseOp(s string) (Op, error) {
	for op := Op(0); op < numOps; op++ {
		if s == op.Name() || s == opDunders[op] || s == opInfos[op].symbol {
			return op, nil
		}
	}
	if suggestion := suggestOpName(s); suggestion != "" {
		return 0, fmt.Errorf("unknown operator %q, did you mean %q?", s, suggestion)
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}

// suggestOpName returns the known operator or method name closest to s, or
// "" if nothing is close enough to be a plausible typo.
func suggestOpName(s string) string {
	var candidates []string
	if strings.HasPrefix(s, "__") {
		for name := range methodNames {
			candidates = append(candidates, name)
		}
	} else {
		for op := Op(0); op < numOps; op++ {
			candidates = append(candidates, op.Name())
		}
	}
	return closestName(s, candidates)
}

// closestName returns the candidate with the smallest edit distance to s,
// provided it is at most two edits away.
func closestName(s string, candidates []string) string {
	sort.Strings(candidates)
	best, bestDist := "", 3
	for _, candidate := range candidates {
		d := levenshtein.DistanceForStrings([]rune(s), []rune(candidate), levenshtein.DefaultOptions)
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
