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
)

var (
	// NotImplementedType is the object representing the Python
	// 'NotImplementedType' object.
	NotImplementedType = newSimpleType("NotImplementedType", ObjectType)
	// NotImplemented is the singleton NotImplementedType object
	// representing the Python 'NotImplemented' object. An operator
	// implementation returns it to decline its operands.
	NotImplemented = newObject(NotImplementedType)
)

func initNotImplementedType() {
	NotImplementedType.flags &^= typeFlagBasetype
}

type typeState int

const (
	typeStateNotReady typeState = iota
	typeStateInitializing
	typeStateReady
)

type builtinTypeInit func()

type builtinTypeInfo struct {
	state typeState
	init  builtinTypeInit
}

var builtinTypes = map[*Type]*builtinTypeInfo{
	BoolType:           {init: initBoolType},
	FloatType:          {init: initFloatType},
	IntType:            {init: initIntType},
	NotImplementedType: {init: initNotImplementedType},
	ObjectType:         {},
	StrType:            {init: initStrType},
	TupleType:          {init: initTupleType},
	TypeType:           {},
}

func init() {
	for typ, info := range builtinTypes {
		initBuiltinType(typ, info)
	}
}

func initBuiltinType(typ *Type, info *builtinTypeInfo) {
	if info.state == typeStateReady {
		return
	}
	if info.state == typeStateInitializing {
		logFatal(fmt.Sprintf("cycle in type initialization for: %s", typ.name))
	}
	info.state = typeStateInitializing
	for _, base := range typ.bases {
		baseInfo, ok := builtinTypes[base]
		if !ok {
			logFatal(fmt.Sprintf("base type not registered for: %s", typ.name))
		}
		initBuiltinType(base, baseInfo)
	}
	// ObjectType and TypeType are literals, see object.go and type.go.
	typ.typ = TypeType
	typ.reg = builtinRegistry
	if info.init != nil {
		info.init()
	}
	if err := prepareType(typ); err != "" {
		logFatal(err)
	}
	info.state = typeStateReady
}

// defUnary sets a built-in type's own implementation of a unary operator.
// Only type initializers call it, before the type is prepared.
func defUnary(t *Type, op Op, fn UnaryOpFunc) {
	defSlot(t, op, fn)
}

// defBinary sets a built-in type's own implementation of a binary or
// in-place operator.
func defBinary(t *Type, op Op, fn BinaryOpFunc) {
	defSlot(t, op, fn)
}

func defSlot(t *Type, op Op, fn interface{}) {
	slot, err := makeSlot(t, op, fn)
	if err != nil {
		logFatal(fmt.Sprintf("%s: %s", t.name, err))
	}
	t.own[op] = slot
}

// BuiltinTypes returns the built-in types ordered by name.
func BuiltinTypes() []*Type {
	types := make([]*Type, 0, len(builtinTypes))
	for t := range builtinTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].name < types[j].name })
	return types
}

// BuiltinType returns the built-in type with the given name, or nil.
func BuiltinType(name string) *Type {
	for t := range builtinTypes {
		if t.name == name {
			return t
		}
	}
	return nil
}
