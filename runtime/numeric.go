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
	"strconv"
	"strings"
)

// ParseNumber parses a Python numeric literal such as "42", "0x1f", "-7"
// or "2.5" into an int or a float.
func ParseNumber(s string) (*Object, error) {
	s = strings.TrimSpace(s)
	if z, ok := numParseInteger(new(big.Int), s, 0); ok {
		return NewIntFromBig(z).ToObject(), nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
	if err != nil {
		return nil, raise(ValueError, "invalid numeric literal: %q", s)
	}
	return NewFloat(f).ToObject(), nil
}

func numParseInteger(z *big.Int, s string, base int) (*big.Int, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	neg := false
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'b', 'B':
			if base == 0 || base == 2 {
				base = 2
				s = s[2:]
			}
		case 'o', 'O':
			if base == 0 || base == 8 {
				base = 8
				s = s[2:]
			}
		case 'x', 'X':
			if base == 0 || base == 16 {
				base = 16
				s = s[2:]
			}
		}
	}
	if base == 0 {
		base = 10
	}
	if _, ok := z.SetString(s, base); !ok {
		return nil, false
	}
	if neg {
		z.Neg(z)
	}
	return z, true
}

// numDivMod computes the Python quotient z and remainder m of x and y.
func numDivMod(x, y, z, m *big.Int) {
	z.QuoRem(x, y, m)
	if m.Sign() == -y.Sign() {
		// In Python the result of the modulo operator is always the
		// same sign as the divisor, whereas in Go, the result is
		// always the same sign as the dividend. Therefore we need to
		// do an adjustment when the sign of the modulo result differs
		// from that of the divisor.
		m.Add(m, y)
		// Relatedly, in Python the result of division truncates toward
		// negative infinity whereas it truncates toward zero in Go.
		// The fact that the signs of the divisor and the modulo result
		// differ implies that the quotient is also negative so we also
		// adjust the quotient here.
		z.Sub(z, big.NewInt(1))
	}
}
