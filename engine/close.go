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

// CloseAuctionCycle settles a cycle whose end time has passed. Any caller
// may close; the off-chain watcher polls the primary pool and drives this.
//
// With no bids the cycle re-opens with its window pushed one period forward
// and the idle streak grows, eventually demoting the auction to the
// secondary pool. With bids the top bid's escrow becomes claimable, the
// reward becomes collectible, and the auction either advances to the next
// cycle or finishes.
func (e *Engine) CloseAuctionCycle(caller gold.Address, now uint64, args *CloseAuctionCycleArgs) error {
	root, rootAddr, err := e.loadRootState(args.Id)
	if err != nil {
		return err
	}
	if err := verifySuppliedAddress(args.RootState, rootAddr); err != nil {
		return err
	}
	if root.Status.IsFrozen {
		return reverts.ErrAuctionFrozen
	}
	if root.Status.IsFinished {
		return reverts.ErrAuctionEnded
	}

	currentCycle := root.Status.CurrentAuctionCycle
	cycle, cycleAddr, err := e.loadCycleState(rootAddr, currentCycle)
	if err != nil {
		return err
	}
	if now < cycle.EndTime {
		return reverts.ErrAuctionIsInProgress
	}

	if cycle.TopBid() == nil {
		if err := e.closeIdleCycle(args.Id, root, cycle); err != nil {
			return err
		}
		if err := e.storeCycleState(cycleAddr, cycle); err != nil {
			return err
		}
		if err := e.storeRootState(rootAddr, root); err != nil {
			return err
		}
		metricCyclesClosed().AddWithLabel(1, map[string]string{"outcome": "idle"})
		return nil
	}

	top := *cycle.TopBid()

	// the settled top bid becomes claimable by the owner
	available, ok := gold.CheckedAdd(root.AvailableFunds, top.Amount)
	if !ok {
		return reverts.ErrArithmetic
	}
	treasury, ok := gold.CheckedAdd(root.AllTimeTreasury, top.Amount)
	if !ok {
		return reverts.ErrArithmetic
	}
	root.AvailableFunds = available
	root.AllTimeTreasury = treasury
	root.Status.CurrentIdleCycleStreak = 0
	root.UnclaimedRewards++

	lastCycle := root.Config.IsLastCycle(currentCycle)
	if nft := root.TokenConfig.Nft; nft != nil && !nft.IsRepeating {
		// advance the shared descriptor to the next edition, or park it on
		// the base marker after the final cycle
		if lastCycle {
			if err := e.minter.Repoint(nft.MasterEdition, nil); err != nil {
				return err
			}
		} else {
			next := currentCycle + 1
			if err := e.minter.Repoint(nft.MasterEdition, &next); err != nil {
				return err
			}
		}
	}

	outcome := "advanced"
	if lastCycle {
		outcome = "finished"
		root.Status.IsFinished = true
		// the finished cycle record's rent flows back to the owner's
		// claimable funds; the record itself stays until deletion
		cycleBalance, err := e.state.GetBalance(cycleAddr)
		if err != nil {
			return err
		}
		if cycleBalance > 0 {
			if err := bank.Transfer(e.state, cycleAddr, e.BankAddress(args.Id), cycleBalance); err != nil {
				return err
			}
			available, ok := gold.CheckedAdd(root.AvailableFunds, cycleBalance)
			if !ok {
				return reverts.ErrArithmetic
			}
			root.AvailableFunds = available
		}
		if err := e.movePoolMembership(args.Id, true); err != nil {
			return err
		}
	} else {
		root.Status.CurrentAuctionCycle++
		endTime, ok := gold.CheckedAdd(now, root.Config.CyclePeriod)
		if !ok {
			return reverts.ErrArithmetic
		}
		next := auction.CycleState{EndTime: endTime}
		nextAddr := e.CycleStateAddress(rootAddr, root.Status.CurrentAuctionCycle)
		if err := e.createRecord(nextAddr, caller, auction.CycleStateMaxLen, &next); err != nil {
			return err
		}
	}

	if err := e.storeCycleState(cycleAddr, cycle); err != nil {
		return err
	}
	if err := e.storeRootState(rootAddr, root); err != nil {
		return err
	}
	metricCyclesClosed().AddWithLabel(1, map[string]string{"outcome": outcome})
	logger.Debug("cycle closed", "id", args.Id, "cycle", currentCycle, "outcome", outcome)
	return nil
}

// closeIdleCycle re-opens a cycle that saw no bids and tracks the idle
// streak. Exceeding either idle threshold demotes the auction to the
// secondary pool; a later bid promotes it back.
func (e *Engine) closeIdleCycle(id gold.AuctionID, root *auction.RootState, cycle *auction.CycleState) error {
	endTime, ok := gold.CheckedAdd(cycle.EndTime, root.Config.CyclePeriod)
	if !ok {
		return reverts.ErrArithmetic
	}
	cycle.EndTime = endTime
	root.Status.CurrentIdleCycleStreak++

	idleFor, ok := gold.CheckedMul(uint64(root.Status.CurrentIdleCycleStreak), root.Config.CyclePeriod)
	if !ok {
		return reverts.ErrArithmetic
	}
	if root.Status.CurrentIdleCycleStreak > gold.AllowedConsecutiveIdleCycles || idleFor > gold.AllowedIdlePeriod {
		if err := e.movePoolMembership(id, true); err != nil {
			return err
		}
	}
	return nil
}
