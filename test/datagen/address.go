// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/goldxyz/auctiond/gold"
)

func RandAddress() (addr gold.Address) {
	rand.Read(addr[:])
	return
}

func RandAuctionID() gold.AuctionID {
	id, err := gold.NewAuctionID("auction-" + randHex(8))
	if err != nil {
		panic(err)
	}
	return id
}

func randHex(n int) string {
	const hexdigits = "0123456789abcdef"
	b := make([]byte, n)
	rand.Read(b)
	for i := range b {
		b[i] = hexdigits[int(b[i])%len(hexdigits)]
	}
	return string(b)
}
