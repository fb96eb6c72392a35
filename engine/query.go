// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"github.com/goldxyz/auctiond/engine/auction"
	"github.com/goldxyz/auctiond/engine/bank"
	"github.com/goldxyz/auctiond/gold"
)

// Read-only queries backing the HTTP API and the cycle watcher. They go
// through the same record loaders as the handlers, so callers see exactly
// what the next invocation would.

// Auction returns an auction's root record.
func (e *Engine) Auction(id gold.AuctionID) (*auction.RootState, error) {
	root, _, err := e.loadRootState(id)
	return root, err
}

// Cycle returns one cycle record of an auction. Cycle zero selects the
// current cycle.
func (e *Engine) Cycle(id gold.AuctionID, cycle uint64) (*auction.CycleState, error) {
	root, rootAddr, err := e.loadRootState(id)
	if err != nil {
		return nil, err
	}
	if cycle == 0 {
		cycle = root.Status.CurrentAuctionCycle
	}
	cs, _, err := e.loadCycleState(rootAddr, cycle)
	return cs, err
}

// PoolIDs returns the members of the primary or secondary pool.
func (e *Engine) PoolIDs(secondary bool) ([]gold.AuctionID, error) {
	p, _, err := e.loadPool(secondary)
	if err != nil {
		return nil, err
	}
	ids := make([]gold.AuctionID, len(p.Ids))
	copy(ids, p.Ids)
	return ids, nil
}

// ContractBank returns the platform bank singleton.
func (e *Engine) ContractBank() (*bank.BankState, error) {
	b, _, err := e.loadContractBank()
	return b, err
}

// ProtocolFee returns the effective fee fraction in basis points.
func (e *Engine) ProtocolFee() (uint16, error) {
	return e.loadProtocolFee()
}

// EscrowBalance returns the balance held by an auction's escrow bank.
func (e *Engine) EscrowBalance(id gold.AuctionID) (uint64, error) {
	return e.state.GetBalance(e.BankAddress(id))
}

// PlatformBalance returns the balance held by the platform bank.
func (e *Engine) PlatformBalance() (uint64, error) {
	return e.state.GetBalance(e.ContractBankAddress())
}
