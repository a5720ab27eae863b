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
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	logging "gopkg.in/op/go-logging.v1"
	"gopkg.in/yaml.v3"
)

// TypeTable declares a family of classes in YAML. Method implementations
// are named rather than given, and a Catalog turns the names into Go
// functions when the table is built.
type TypeTable struct {
	// LogLevel is a go-logging level name for tools that load the table.
	LogLevel string      `yaml:"log_level,omitempty"`
	Types    []ClassSpec `yaml:"types"`
}

// ClassSpec declares one class of a TypeTable.
type ClassSpec struct {
	Name string `yaml:"name"`
	// Bases name built-in types or classes declared earlier in the table.
	Bases []string `yaml:"bases,omitempty"`
	// Methods maps special method names to catalog entries.
	Methods map[string]string `yaml:"methods,omitempty"`
}

// Catalog resolves the implementation names used in a TypeTable. op is the
// operator the method implements, so that one name can serve both unary and
// binary methods.
type Catalog interface {
	Implementation(name string, op Op) (interface{}, bool)
}

// FuncCatalog is a Catalog of fixed functions, each a UnaryOpFunc or a
// BinaryOpFunc.
type FuncCatalog map[string]interface{}

// Implementation implements Catalog.
func (c FuncCatalog) Implementation(name string, op Op) (interface{}, bool) {
	fn, ok := c[name]
	return fn, ok
}

// Names returns the catalog's entries in order.
func (c FuncCatalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadTypeTable reads and validates the type table at path.
func LoadTypeTable(path string) (*TypeTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading type table %s: %w", path, err)
	}
	return ParseTypeTable(data, path)
}

// ParseTypeTable parses and validates a type table. path is only used in
// error messages.
func ParseTypeTable(data []byte, path string) (*TypeTable, error) {
	var table TypeTable
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&table); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := table.validate(path); err != nil {
		return nil, err
	}
	table.setDefaults()
	return &table, nil
}

// validate reports every problem in the table at once.
func (t *TypeTable) validate(path string) error {
	var result *multierror.Error
	if t.LogLevel != "" {
		if _, err := logging.LogLevel(t.LogLevel); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: log_level %q: %w", path, t.LogLevel, err))
		}
	}
	if len(t.Types) == 0 {
		result = multierror.Append(result, fmt.Errorf("%s: no types defined", path))
	}
	declared := map[string]bool{}
	for i, spec := range t.Types {
		where := fmt.Sprintf("%s: types[%d]", path, i)
		if spec.Name == "" {
			result = multierror.Append(result, fmt.Errorf("%s: name is required", where))
		} else {
			where = fmt.Sprintf("%s: type %s", path, spec.Name)
			if declared[spec.Name] {
				result = multierror.Append(result, fmt.Errorf("%s: declared more than once", where))
			}
			if BuiltinType(spec.Name) != nil {
				result = multierror.Append(result, fmt.Errorf("%s: shadows the built-in type", where))
			}
		}
		for _, base := range spec.Bases {
			if BuiltinType(base) == nil && !declared[base] {
				result = multierror.Append(result, fmt.Errorf("%s: unknown base %q", where, base))
			}
		}
		for _, name := range sortedKeys(spec.Methods) {
			if _, ok := methodNames[name]; !ok {
				result = multierror.Append(result, fmt.Errorf("%s: %w", where, unknownMethodError(name)))
			} else if spec.Methods[name] == "" {
				result = multierror.Append(result, fmt.Errorf("%s: %s has no implementation", where, name))
			}
		}
		if spec.Name != "" {
			declared[spec.Name] = true
		}
	}
	return result.ErrorOrNil()
}

func (t *TypeTable) setDefaults() {
	for i := range t.Types {
		if len(t.Types[i].Bases) == 0 {
			t.Types[i].Bases = []string{ObjectType.Name()}
		}
	}
}

// Build creates the table's classes in reg, in the order they are declared.
// Problems with individual classes are collected and returned together,
// along with the classes that could be built.
func (t *TypeTable) Build(reg *Registry, catalog Catalog) ([]*Type, error) {
	var result *multierror.Error
	built := map[string]*Type{}
	var types []*Type
	for _, spec := range t.Types {
		bases, err := resolveBases(spec, built)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		methods, err := spec.resolveMethods(catalog)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		cls, err := NewClass(reg, spec.Name, bases, methods)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("type %s: %w", spec.Name, err))
			continue
		}
		built[spec.Name] = cls
		types = append(types, cls)
	}
	return types, result.ErrorOrNil()
}

func resolveBases(spec ClassSpec, built map[string]*Type) ([]*Type, error) {
	bases := make([]*Type, 0, len(spec.Bases))
	for _, name := range spec.Bases {
		if base := BuiltinType(name); base != nil {
			bases = append(bases, base)
		} else if base := built[name]; base != nil {
			bases = append(bases, base)
		} else {
			return nil, fmt.Errorf("type %s: base %q was not built", spec.Name, name)
		}
	}
	return bases, nil
}

func (spec ClassSpec) resolveMethods(catalog Catalog) (SlotMap, error) {
	var result *multierror.Error
	methods := SlotMap{}
	for _, name := range sortedKeys(spec.Methods) {
		m, ok := methodNames[name]
		if !ok {
			result = multierror.Append(result, fmt.Errorf("type %s: %w", spec.Name, unknownMethodError(name)))
			continue
		}
		impl := spec.Methods[name]
		fn, ok := catalog.Implementation(impl, m.op)
		if !ok {
			result = multierror.Append(result, fmt.Errorf("type %s: %s: %s", spec.Name, name, unknownImplementation(catalog, impl)))
			continue
		}
		methods[name] = fn
	}
	return methods, result.ErrorOrNil()
}

func unknownImplementation(catalog Catalog, name string) string {
	msg := fmt.Sprintf("no implementation named %q", name)
	if named, ok := catalog.(interface{ Names() []string }); ok {
		if suggestion := closestName(name, named.Names()); suggestion != "" {
			msg += fmt.Sprintf(", did you mean %q?", suggestion)
		}
	}
	return msg
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns the names of the table's types.
func (t *TypeTable) String() string {
	names := make([]string, len(t.Types))
	for i, spec := range t.Types {
		names[i] = spec.Name
	}
	return fmt.Sprintf("TypeTable(%s)", strings.Join(names, ", "))
}
