// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bank

import (
	"github.com/goldxyz/auctiond/engine/reverts"
	"github.com/goldxyz/auctiond/gold"
)

// FeeState is the platform-wide singleton holding the protocol fee fraction.
// The record is created lazily on first write; readers fall back to the
// default fraction while it does not exist.
type FeeState struct {
	FeeBps uint16
}

// Verify checks the fee fraction against the protocol ceiling. Zero is a
// valid fraction: the platform waives its cut.
func (f *FeeState) Verify() error {
	if f.FeeBps > gold.MaxProtocolFeeBps {
		return reverts.ErrInvalidProtocolFee
	}
	return nil
}

// SplitFee splits a claimed amount into the owner share and the platform
// share. The platform share is floor(amount*bps/10000), the owner share is
// the exact remainder; the two always sum to amount.
func SplitFee(amount uint64, feeBps uint16) (ownerShare, platformShare uint64) {
	platformShare = gold.MulDiv(amount, uint64(feeBps), 10_000)
	ownerShare = amount - platformShare
	return
}
