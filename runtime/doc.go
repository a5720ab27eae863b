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

// Package pyrt dispatches Python's unary, binary and augmented assignment
// operators over a small set of built-in types and user-defined classes.
//
// Every type publishes a row of operator slots. Resolution picks the slots
// that take part in an operation the way CPython's abstract object layer
// does, and call sites cache the result, guarded by the operand types and,
// for classes whose slots can change, by the identity of the rows seen at
// resolution.
package pyrt
