// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gold

import "math/bits"

// Checked 64-bit arithmetic. Amounts on the ledger are fixed-width, so every
// balance mutation must detect wrap-around instead of silently corrupting a
// record.

// CheckedAdd returns a+b and whether the sum stayed within 64 bits.
func CheckedAdd(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry == 0
}

// CheckedSub returns a-b and whether the difference did not underflow.
func CheckedSub(a, b uint64) (uint64, bool) {
	diff, borrow := bits.Sub64(a, b, 0)
	return diff, borrow == 0
}

// CheckedMul returns a*b and whether the product stayed within 64 bits.
func CheckedMul(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}

// MulDiv returns a*b/d without intermediate overflow. It panics if d is zero
// or the quotient exceeds 64 bits; callers only use it with d larger than b.
func MulDiv(a, b, d uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	quo, _ := bits.Div64(hi, lo, d)
	return quo
}
