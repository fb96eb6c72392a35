// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoesWaitsForAll(t *testing.T) {
	var goes Goes
	var ran atomic.Int32

	for range [8]struct{}{} {
		goes.Go(func() {
			ran.Add(1)
		})
	}
	goes.Wait()

	assert.Equal(t, int32(8), ran.Load())
}

func TestGoesWaitOnEmpty(t *testing.T) {
	var goes Goes
	goes.Wait()
}
