// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"github.com/goldxyz/auctiond/engine/auction"
	"github.com/goldxyz/auctiond/engine/bank"
	"github.com/goldxyz/auctiond/engine/reverts"
	"github.com/goldxyz/auctiond/gold"
)

// refundTopBid refunds the current cycle's top bid from the auction's escrow.
// Only the top bid is ever escrowed; every older ring entry was refunded the
// moment it was outbid, so the whole ring is cleared to keep a stale entry
// from resurfacing as the top and drawing a second refund.
func (e *Engine) refundTopBid(id gold.AuctionID, cycle *auction.CycleState) error {
	top := cycle.TopBid()
	if top == nil {
		return nil
	}
	if err := bank.Transfer(e.state, e.BankAddress(id), top.Bidder, top.Amount); err != nil {
		return err
	}
	cycle.Bids = nil
	return nil
}

// Freeze suspends bidding on an auction. Only the owner may freeze. The live
// top bid, if any, is refunded and the identifier moves to the secondary
// pool. Freezing a frozen auction is a no-op.
func (e *Engine) Freeze(caller gold.Address, args *FreezeArgs) error {
	root, rootAddr, err := e.loadRootState(args.Id)
	if err != nil {
		return err
	}
	if root.Owner != caller {
		return reverts.ErrAuctionOwnerMismatch
	}
	if root.Status.IsFinished {
		return reverts.ErrAuctionEnded
	}
	if root.Status.IsFrozen {
		return nil
	}

	cycle, cycleAddr, err := e.loadCycleState(rootAddr, root.Status.CurrentAuctionCycle)
	if err != nil {
		return err
	}
	if err := e.refundTopBid(args.Id, cycle); err != nil {
		return err
	}
	if err := e.storeCycleState(cycleAddr, cycle); err != nil {
		return err
	}

	root.Status.IsFrozen = true
	if err := e.storeRootState(rootAddr, root); err != nil {
		return err
	}
	if err := e.movePoolMembership(args.Id, true); err != nil {
		return err
	}
	logger.Info("auction frozen", "id", args.Id)
	return nil
}

// Thaw reactivates a frozen auction. Only the contract admin may thaw.
// Thawing a non-frozen auction is a no-op; a finished auction cannot thaw.
// The current cycle gets a fresh window so the idle close does not fire
// immediately.
func (e *Engine) Thaw(caller gold.Address, now uint64, args *ThawArgs) error {
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	root, rootAddr, err := e.loadRootState(args.Id)
	if err != nil {
		return err
	}
	if root.Status.IsFinished {
		return reverts.ErrAuctionEnded
	}
	if !root.Status.IsFrozen {
		return nil
	}

	cycle, cycleAddr, err := e.loadCycleState(rootAddr, root.Status.CurrentAuctionCycle)
	if err != nil {
		return err
	}
	endTime, ok := gold.CheckedAdd(now, root.Config.CyclePeriod)
	if !ok {
		return reverts.ErrArithmetic
	}
	cycle.EndTime = endTime
	if err := e.storeCycleState(cycleAddr, cycle); err != nil {
		return err
	}

	root.Status.IsFrozen = false
	root.Status.CurrentIdleCycleStreak = 0
	if err := e.storeRootState(rootAddr, root); err != nil {
		return err
	}
	if !root.Status.IsFiltered {
		if err := e.movePoolMembership(args.Id, false); err != nil {
			return err
		}
	}
	logger.Info("auction thawed", "id", args.Id)
	return nil
}

// FilterAuction flags or unflags an auction as hidden from listings. Only
// the contract admin may filter. The flag gates visibility, not transitions;
// filtered auctions live in the secondary pool.
func (e *Engine) FilterAuction(caller gold.Address, args *FilterAuctionArgs) error {
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	root, rootAddr, err := e.loadRootState(args.Id)
	if err != nil {
		return err
	}
	if root.Status.IsFiltered == args.Filter {
		return nil
	}
	root.Status.IsFiltered = args.Filter
	if err := e.storeRootState(rootAddr, root); err != nil {
		return err
	}

	if args.Filter {
		return e.movePoolMembership(args.Id, true)
	}
	// an unfiltered auction returns to the primary pool unless something
	// else keeps it out
	if !root.Status.IsFrozen && !root.Status.IsFinished &&
		root.Status.CurrentIdleCycleStreak <= gold.AllowedConsecutiveIdleCycles {
		return e.movePoolMembership(args.Id, false)
	}
	return nil
}

// VerifyAuction marks an auction as verified by the platform. Only the
// contract admin may verify.
func (e *Engine) VerifyAuction(caller gold.Address, args *VerifyAuctionArgs) error {
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	root, rootAddr, err := e.loadRootState(args.Id)
	if err != nil {
		return err
	}
	if root.Status.IsVerified {
		return nil
	}
	root.Status.IsVerified = true
	return e.storeRootState(rootAddr, root)
}

// ModifyAuction replaces the auction's display description. Config and
// token config are immutable after creation. Only the owner may modify.
func (e *Engine) ModifyAuction(caller gold.Address, args *ModifyAuctionArgs) error {
	root, rootAddr, err := e.loadRootState(args.Id)
	if err != nil {
		return err
	}
	if root.Owner != caller {
		return reverts.ErrAuctionOwnerMismatch
	}
	if err := args.Description.Verify(); err != nil {
		return err
	}
	root.Description = args.Description
	return e.storeRootState(rootAddr, root)
}

// requireAdmin verifies the caller is the recorded contract admin.
func (e *Engine) requireAdmin(caller gold.Address) error {
	b, _, err := e.loadContractBank()
	if err != nil {
		return err
	}
	if b.Admin != caller {
		return reverts.ErrContractAdminMismatch
	}
	return nil
}

// requireWithdrawAuthority verifies the caller holds the withdraw capability.
func (e *Engine) requireWithdrawAuthority(caller gold.Address) error {
	b, _, err := e.loadContractBank()
	if err != nil {
		return err
	}
	if b.WithdrawAuthority != caller {
		return reverts.ErrWithdrawAuthorityMismatch
	}
	return nil
}
