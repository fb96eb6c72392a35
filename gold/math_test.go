// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gold

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckedAdd(t *testing.T) {
	sum, ok := CheckedAdd(1, 2)
	assert.True(t, ok)
	assert.Equal(t, uint64(3), sum)

	_, ok = CheckedAdd(math.MaxUint64, 1)
	assert.False(t, ok)

	sum, ok = CheckedAdd(math.MaxUint64, 0)
	assert.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), sum)
}

func TestCheckedSub(t *testing.T) {
	diff, ok := CheckedSub(3, 2)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), diff)

	_, ok = CheckedSub(0, 1)
	assert.False(t, ok)
}

func TestCheckedMul(t *testing.T) {
	prod, ok := CheckedMul(1<<32, 1<<31)
	assert.True(t, ok)
	assert.Equal(t, uint64(1)<<63, prod)

	_, ok = CheckedMul(1<<32, 1<<32)
	assert.False(t, ok)
}

func TestMulDivNoIntermediateOverflow(t *testing.T) {
	// a*b overflows 64 bits, the quotient does not
	a := uint64(math.MaxUint64)
	got := MulDiv(a, 500, 10_000)
	assert.Equal(t, a/10_000*500+a%10_000*500/10_000, got)

	assert.Equal(t, uint64(0), MulDiv(9_999, 1, 10_000))
	assert.Equal(t, uint64(1), MulDiv(10_000, 1, 10_000))
}

func TestMinBalanceScalesWithSize(t *testing.T) {
	empty := MinBalance(0)
	assert.Equal(t, recordStorageOverhead*rentPerByte, empty)
	assert.Equal(t, empty+100*rentPerByte, MinBalance(100))
}
