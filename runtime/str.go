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
	"reflect"
	"strings"
)

// Str represents Python 'str' objects.
type Str struct {
	Object
	value string
}

// NewStr returns a new Str holding the given string value.
func NewStr(value string) *Str {
	return &Str{Object: Object{typ: StrType}, value: value}
}

func toStrUnsafe(o *Object) *Str {
	return (*Str)(o.toPointer())
}

// ToObject upcasts s to an Object.
func (s *Str) ToObject() *Object {
	return &s.Object
}

// Value returns the underlying string value held by s.
func (s *Str) Value() string {
	return s.value
}

// StrType is the object representing the Python 'str' type.
var StrType = newBasisType("str", reflect.TypeOf(Str{}), ObjectType)

func strAdd(v, w *Object) (*Object, error) {
	if !v.isInstance(StrType) || !w.isInstance(StrType) {
		return NotImplemented, nil
	}
	stringV, stringW := toStrUnsafe(v).Value(), toStrUnsafe(w).Value()
	if len(stringV)+len(stringW) < 0 {
		// This indicates an int overflow.
		return nil, raise(OverflowError, errResultTooLarge)
	}
	return NewStr(stringV + stringW).ToObject(), nil
}

func strMul(v, w *Object) (*Object, error) {
	seq, mult, ok := seqRepeatOperands(StrType, v, w)
	if !ok {
		return NotImplemented, nil
	}
	s := toStrUnsafe(seq).Value()
	n, err := seqRepeatCount(len(s), mult)
	if err != nil {
		return nil, err
	}
	return NewStr(strings.Repeat(s, n)).ToObject(), nil
}

func initStrType() {
	defBinary(StrType, OpAdd, strAdd)
	defBinary(StrType, OpMul, strMul)
}

// strRepr quotes s the way Python's repr does for simple strings.
func strRepr(s string) string {
	quote := "'"
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		quote = `"`
	}
	r := strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, "\t", `\t`, quote, `\`+quote)
	return quote + r.Replace(s) + quote
}
