// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package engine implements the auction lifecycle state machine and
// accounting engine. All state lives in addressable persistent records; each
// operation is one atomic invocation that validates every precondition before
// mutating anything.
package engine

import (
	"encoding/binary"

	"github.com/goldxyz/auctiond/gold"
	"github.com/goldxyz/auctiond/log"
	"github.com/goldxyz/auctiond/metrics"
	"github.com/goldxyz/auctiond/mint"
	"github.com/goldxyz/auctiond/state"
)

var logger = log.WithContext("pkg", "engine")

var (
	metricBidsPlaced      = metrics.LazyLoadCounter("engine_bids_placed_count")
	metricCyclesClosed    = metrics.LazyLoadCounterVec("engine_cycles_closed_count", []string{"outcome"})
	metricAuctionsCreated = metrics.LazyLoadCounter("engine_auctions_created_count")
	metricRewardsClaimed  = metrics.LazyLoadCounter("engine_rewards_claimed_count")
)

// Record kind seeds. Every persistent record's address derives from the
// program address plus these seeds, so anyone can recompute it.
var (
	seedRootState     = []byte("auction_root_state")
	seedCycleState    = []byte("auction_cycle_state")
	seedAuctionBank   = []byte("auction_bank")
	seedPrimaryPool   = []byte("auction_pool")
	seedSecondaryPool = []byte("secondary_pool")
	seedPoolStaging   = []byte("pool_staging")
	seedContractBank  = []byte("contract_bank")
	seedProtocolFee   = []byte("protocol_fee")
)

// Engine executes auction operations against the ledger state.
type Engine struct {
	program gold.Address
	state   *state.State
	minter  mint.Minter
}

// New create an engine instance for the program deployed at the given address.
func New(program gold.Address, st *state.State, minter mint.Minter) *Engine {
	return &Engine{
		program: program,
		state:   st,
		minter:  minter,
	}
}

// State exposes the underlying state, mainly for the enclosing host to
// commit after successful invocations.
func (e *Engine) State() *state.State {
	return e.state
}

func cycleNumberSeed(cycle uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], cycle)
	return b[:]
}

// RootStateAddress returns the derived address of an auction's root record.
func (e *Engine) RootStateAddress(id gold.AuctionID) gold.Address {
	return gold.DeriveAddress(e.program, seedRootState, id.Bytes())
}

// CycleStateAddress returns the derived address of one cycle's record.
func (e *Engine) CycleStateAddress(root gold.Address, cycle uint64) gold.Address {
	return gold.DeriveAddress(e.program, seedCycleState, root.Bytes(), cycleNumberSeed(cycle))
}

// BankAddress returns the derived address of an auction's escrow bank.
func (e *Engine) BankAddress(id gold.AuctionID) gold.Address {
	return gold.DeriveAddress(e.program, seedAuctionBank, id.Bytes())
}

// PoolAddress returns the derived address of a membership pool singleton.
func (e *Engine) PoolAddress(secondary bool) gold.Address {
	if secondary {
		return gold.DeriveAddress(e.program, seedSecondaryPool)
	}
	return gold.DeriveAddress(e.program, seedPrimaryPool)
}

func (e *Engine) poolStagingAddress(secondary bool) gold.Address {
	if secondary {
		return gold.DeriveAddress(e.program, seedPoolStaging, []byte{1})
	}
	return gold.DeriveAddress(e.program, seedPoolStaging, []byte{0})
}

// ContractBankAddress returns the derived address of the platform bank singleton.
func (e *Engine) ContractBankAddress() gold.Address {
	return gold.DeriveAddress(e.program, seedContractBank)
}

// ProtocolFeeAddress returns the derived address of the fee state singleton.
func (e *Engine) ProtocolFeeAddress() gold.Address {
	return gold.DeriveAddress(e.program, seedProtocolFee)
}
