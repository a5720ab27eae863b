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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeqMul(t *testing.T) {
	elems := []*Object{newInt(1), newInt(2)}
	cases := []struct {
		elems   []*Object
		n       int
		want    int
		wantErr string
	}{
		{elems, 3, 6, ""},
		{elems, 0, 0, ""},
		{elems, -2, 0, ""},
		{nil, 10, 0, ""},
		{elems, math.MaxInt, 0, "OverflowError: result too large"},
	}
	for _, cas := range cases {
		got, err := seqMul(cas.elems, cas.n)
		if cas.wantErr != "" {
			assert.EqualError(t, err, cas.wantErr)
			continue
		}
		require.NoError(t, err)
		assert.Len(t, got, cas.want)
		for i, o := range got {
			assert.Same(t, cas.elems[i%len(cas.elems)], o)
		}
	}
}

func TestSeqRepeatOperands(t *testing.T) {
	s, n := newStr("a"), newInt(2)
	seq, mult, ok := seqRepeatOperands(StrType, s, n)
	assert.True(t, ok)
	assert.Same(t, s, seq)
	assert.Same(t, n, mult)
	seq, mult, ok = seqRepeatOperands(StrType, n, s)
	assert.True(t, ok)
	assert.Same(t, s, seq)
	assert.Same(t, n, mult)
	_, _, ok = seqRepeatOperands(StrType, s, s)
	assert.False(t, ok)
	_, _, ok = seqRepeatOperands(TupleType, s, n)
	assert.False(t, ok)
}

func TestSeqRepeatCount(t *testing.T) {
	cases := []struct {
		numElems int
		mult     *Object
		want     int
		wantErr  string
	}{
		{3, newInt(4), 4, ""},
		{3, newInt(-4), 0, ""},
		{3, False.ToObject(), 0, ""},
		{0, newBig("0x7fffffffffffffff"), math.MaxInt, ""},
		{2, newBig("0x7fffffffffffffff"), 0, "OverflowError: result too large"},
		{2, newBig("0x10000000000000000"), 0, "OverflowError: cannot fit 'int' into an index-sized integer"},
	}
	for _, cas := range cases {
		got, err := seqRepeatCount(cas.numElems, cas.mult)
		if cas.wantErr != "" {
			assert.EqualError(t, err, cas.wantErr)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, cas.want, got)
	}
}
