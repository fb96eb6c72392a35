// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"github.com/goldxyz/auctiond/engine/bank"
	"github.com/goldxyz/auctiond/engine/reverts"
	"github.com/goldxyz/auctiond/gold"
)

// DeleteAuction unwinds an auction, bounded by the per-call cycle budget.
// A long-running auction accumulates one record per cycle, so full deletion
// may span several calls; each call removes up to the budget of the most
// recent cycle records and the final call tears down the root and escrow.
//
// Only the owner may delete. The first call implicitly freezes the auction,
// refunding the live top bid, and drops the identifier from both pools so a
// partially deleted auction never surfaces in listings. Cycle record rent
// flows to the platform bank as the unwinding fee; on the final call the
// settled escrow is fee-split and everything else, root rent included,
// returns to the owner.
func (e *Engine) DeleteAuction(caller gold.Address, args *DeleteAuctionArgs) error {
	root, rootAddr, err := e.loadRootState(args.Id)
	if err != nil {
		return err
	}
	if root.Owner != caller {
		return reverts.ErrAuctionOwnerMismatch
	}

	if !root.Status.IsFrozen && !root.Status.IsFinished {
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
	}
	if err := e.removeFromPools(args.Id); err != nil {
		return err
	}

	budget := args.CycleLimit
	if budget == 0 || budget > gold.MaxCycleRemovalPerCall {
		budget = gold.MaxCycleRemovalPerCall
	}

	contractBank := e.ContractBankAddress()
	var removed uint64
	for removed < budget && root.Status.CurrentAuctionCycle > 0 {
		cycleAddr := e.CycleStateAddress(rootAddr, root.Status.CurrentAuctionCycle)
		if err := e.deleteRecord(cycleAddr, contractBank); err != nil {
			return err
		}
		root.Status.CurrentAuctionCycle--
		removed++
	}

	if root.Status.CurrentAuctionCycle > 0 {
		// budget exhausted, the owner resumes with another call
		if err := e.storeRootState(rootAddr, root); err != nil {
			return err
		}
		logger.Debug("auction deletion in progress", "id", args.Id,
			"removed", removed, "remaining", root.Status.CurrentAuctionCycle)
		return nil
	}

	// every cycle record is gone, settle the escrow and tear down
	bankAddr := e.BankAddress(args.Id)
	balance, err := e.state.GetBalance(bankAddr)
	if err != nil {
		return err
	}
	rest, ok := gold.CheckedSub(balance, root.AvailableFunds)
	if !ok {
		return reverts.ErrArithmetic
	}
	feeBps, err := e.loadProtocolFee()
	if err != nil {
		return err
	}
	ownerShare, platformShare := bank.SplitFee(root.AvailableFunds, feeBps)
	if platformShare > 0 {
		if err := bank.Credit(e.state, contractBank, platformShare); err != nil {
			return err
		}
	}
	ownerTotal, ok := gold.CheckedAdd(ownerShare, rest)
	if !ok {
		return reverts.ErrArithmetic
	}
	if ownerTotal > 0 {
		if err := bank.Credit(e.state, root.Owner, ownerTotal); err != nil {
			return err
		}
	}
	e.state.Delete(bankAddr)

	if err := e.deleteRecord(rootAddr, root.Owner); err != nil {
		return err
	}
	logger.Info("auction deleted", "id", args.Id)
	return nil
}
