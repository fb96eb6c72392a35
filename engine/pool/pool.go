// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"sort"

	"github.com/goldxyz/auctiond/engine/reverts"
	"github.com/goldxyz/auctiond/gold"
)

// Pool is a bounded-capacity, sorted collection of auction identifiers.
// Sorted order allows binary-search insertion, removal and duplicate
// rejection.
type Pool struct {
	MaxLen uint32
	Ids    []gold.AuctionID
}

// New create an empty pool of the given capacity.
func New(maxLen uint32) *Pool {
	return &Pool{MaxLen: maxLen}
}

// IsEmpty returns whether the record can be treated as empty.
func (p *Pool) IsEmpty() bool {
	return p.MaxLen == 0 && len(p.Ids) == 0
}

// search returns the sorted position of id and whether it is present.
func (p *Pool) search(id gold.AuctionID) (int, bool) {
	i := sort.Search(len(p.Ids), func(i int) bool {
		return p.Ids[i].Compare(id) >= 0
	})
	return i, i < len(p.Ids) && p.Ids[i] == id
}

// Contains reports whether id is a member of the pool.
func (p *Pool) Contains(id gold.AuctionID) bool {
	_, found := p.search(id)
	return found
}

// Insert inserts id at its sorted position.
// It fails if the pool is at capacity or id is already present.
func (p *Pool) Insert(id gold.AuctionID) error {
	if uint32(len(p.Ids)) >= p.MaxLen {
		return reverts.ErrAuctionPoolFull
	}
	i, found := p.search(id)
	if found {
		return reverts.ErrAuctionIdNotUnique
	}
	p.Ids = append(p.Ids, gold.AuctionID{})
	copy(p.Ids[i+1:], p.Ids[i:])
	p.Ids[i] = id
	return nil
}

// Remove removes id from the pool. Removing an absent id is a no-op.
func (p *Pool) Remove(id gold.AuctionID) {
	i, found := p.search(id)
	if !found {
		return
	}
	p.Ids = append(p.Ids[:i], p.Ids[i+1:]...)
}

// MaxEncodedLen returns the bound on the encoded size of a pool with the
// given capacity, used to pre-size the record's storage allocation.
func MaxEncodedLen(maxLen uint32) int {
	// 33 bytes per id (32 payload + rlp string header), plus list header
	// and the capacity field.
	return int(maxLen)*33 + 16
}
