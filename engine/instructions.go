// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"github.com/pkg/errors"

	"github.com/goldxyz/auctiond/engine/auction"
	"github.com/goldxyz/auctiond/engine/reverts"
	"github.com/goldxyz/auctiond/gold"
	"github.com/goldxyz/auctiond/mint"
)

// Call is one atomic invocation of the engine: the authorizing identity, the
// host-attested signature flag, the host clock, and one instruction payload.
type Call struct {
	Caller gold.Address
	Signed bool
	Now    uint64 // unix seconds, supplied by the host
	Args   Instruction
}

// Instruction is the tagged union of all operation payloads.
type Instruction interface {
	isInstruction()
}

type InitializeContractArgs struct {
	Admin             gold.Address
	WithdrawAuthority gold.Address
}

type InitializeAuctionArgs struct {
	Id          gold.AuctionID
	Config      auction.Config
	Description auction.Description
	TokenConfig auction.TokenConfig
	StartTime   uint64 // zero means start immediately
	// Metadata of the master edition descriptor, collectible auctions only.
	Metadata mint.Metadata
	// RootState optionally asserts the caller's derived root record address.
	RootState gold.Address
}

type BidArgs struct {
	Id     gold.AuctionID
	Amount uint64
	// TopBidder is the identity the caller believes holds the current top
	// bid; the zero address asserts that no bid was placed yet.
	TopBidder gold.Address
	RootState gold.Address
}

type CloseAuctionCycleArgs struct {
	Id        gold.AuctionID
	RootState gold.Address
}

type ClaimFundsArgs struct {
	Id     gold.AuctionID
	Amount uint64 // zero claims everything available
}

type ClaimRewardsArgs struct {
	Id    gold.AuctionID
	Cycle uint64
}

type FreezeArgs struct {
	Id gold.AuctionID
}

type ThawArgs struct {
	Id gold.AuctionID
}

type FilterAuctionArgs struct {
	Id     gold.AuctionID
	Filter bool
}

type VerifyAuctionArgs struct {
	Id gold.AuctionID
}

type ModifyAuctionArgs struct {
	Id          gold.AuctionID
	Description auction.Description
}

type DeleteAuctionArgs struct {
	Id gold.AuctionID
	// CycleLimit caps the cycle records unwound by this call. Zero, or any
	// value above the protocol budget, means the full per-call budget.
	CycleLimit uint64
}

type ReallocatePoolArgs struct {
	Secondary bool
	NewMaxLen uint32
}

type AdminWithdrawArgs struct {
	Amount uint64
}

type AdminWithdrawReassignArgs struct {
	NewAuthority gold.Address
}

type SetProtocolFeeArgs struct {
	FeeBps uint16
}

type PoolCleanupArgs struct{}

func (*InitializeContractArgs) isInstruction()    {}
func (*InitializeAuctionArgs) isInstruction()     {}
func (*BidArgs) isInstruction()                   {}
func (*CloseAuctionCycleArgs) isInstruction()     {}
func (*ClaimFundsArgs) isInstruction()            {}
func (*ClaimRewardsArgs) isInstruction()          {}
func (*FreezeArgs) isInstruction()                {}
func (*ThawArgs) isInstruction()                  {}
func (*FilterAuctionArgs) isInstruction()         {}
func (*VerifyAuctionArgs) isInstruction()         {}
func (*ModifyAuctionArgs) isInstruction()         {}
func (*DeleteAuctionArgs) isInstruction()         {}
func (*ReallocatePoolArgs) isInstruction()        {}
func (*AdminWithdrawArgs) isInstruction()         {}
func (*AdminWithdrawReassignArgs) isInstruction() {}
func (*SetProtocolFeeArgs) isInstruction()        {}
func (*PoolCleanupArgs) isInstruction()           {}

// Execute runs one call with all-or-nothing semantics: if any check or
// mutation fails, every write of the call is reverted.
func (e *Engine) Execute(call *Call) error {
	if !call.Signed {
		return reverts.ErrMissingSignature
	}
	checkpoint := e.state.NewCheckpoint()
	if err := e.dispatch(call); err != nil {
		e.state.RevertTo(checkpoint)
		return err
	}
	return nil
}

func (e *Engine) dispatch(call *Call) error {
	switch args := call.Args.(type) {
	case *InitializeContractArgs:
		return e.InitializeContract(call.Caller, args)
	case *InitializeAuctionArgs:
		return e.InitializeAuction(call.Caller, call.Now, args)
	case *BidArgs:
		return e.Bid(call.Caller, call.Now, args)
	case *CloseAuctionCycleArgs:
		return e.CloseAuctionCycle(call.Caller, call.Now, args)
	case *ClaimFundsArgs:
		return e.ClaimFunds(call.Caller, args)
	case *ClaimRewardsArgs:
		return e.ClaimRewards(call.Caller, args)
	case *FreezeArgs:
		return e.Freeze(call.Caller, args)
	case *ThawArgs:
		return e.Thaw(call.Caller, call.Now, args)
	case *FilterAuctionArgs:
		return e.FilterAuction(call.Caller, args)
	case *VerifyAuctionArgs:
		return e.VerifyAuction(call.Caller, args)
	case *ModifyAuctionArgs:
		return e.ModifyAuction(call.Caller, args)
	case *DeleteAuctionArgs:
		return e.DeleteAuction(call.Caller, args)
	case *ReallocatePoolArgs:
		return e.ReallocatePool(call.Caller, args)
	case *AdminWithdrawArgs:
		return e.AdminWithdraw(call.Caller, args)
	case *AdminWithdrawReassignArgs:
		return e.AdminWithdrawReassign(call.Caller, args)
	case *SetProtocolFeeArgs:
		return e.SetProtocolFee(call.Caller, args)
	case *PoolCleanupArgs:
		return e.PoolCleanup(args)
	default:
		return errors.Errorf("unknown instruction %T", call.Args)
	}
}
