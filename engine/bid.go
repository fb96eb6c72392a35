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

// Bid validates and records a bid on the auction's current cycle.
//
// The caller asserts the identity it believes holds the current top bid; the
// engine re-derives the truth from the ring's last entry, which is what makes
// concurrent competing bids safe without a lock. The new bid's funds move
// into the auction's escrow and the previous top bid is refunded.
func (e *Engine) Bid(caller gold.Address, now uint64, args *BidArgs) error {
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

	cycle, cycleAddr, err := e.loadCycleState(rootAddr, root.Status.CurrentAuctionCycle)
	if err != nil {
		return err
	}

	if now < root.StartTime {
		return reverts.ErrAuctionCycleEnded
	}
	if now >= cycle.EndTime {
		// a bid on an idle auction reactivates it: the cycle gets a fresh
		// window from the bid's timestamp and the id moves back to the
		// primary pool
		if root.Status.CurrentIdleCycleStreak == 0 || root.Status.IsFiltered {
			return reverts.ErrAuctionCycleEnded
		}
		endTime, ok := gold.CheckedAdd(now, root.Config.CyclePeriod)
		if !ok {
			return reverts.ErrArithmetic
		}
		cycle.EndTime = endTime
		if err := e.movePoolMembership(args.Id, false); err != nil {
			return err
		}
	}

	var (
		previousTop    = cycle.TopBid()
		previousBidder gold.Address
		minimum        = root.Config.MinimumBidAmount
	)
	if previousTop != nil {
		previousBidder = previousTop.Bidder
		floor, ok := gold.CheckedAdd(previousTop.Amount, 1)
		if !ok {
			return reverts.ErrArithmetic
		}
		if floor > minimum {
			minimum = floor
		}
	}
	if args.TopBidder != previousBidder {
		return reverts.ErrTopBidderAccountMismatch
	}
	if args.Amount < minimum {
		return reverts.ErrInvalidBidAmount
	}

	bankAddr := e.BankAddress(args.Id)
	if err := bank.Transfer(e.state, caller, bankAddr, args.Amount); err != nil {
		return err
	}
	if previousTop != nil {
		if err := bank.Transfer(e.state, bankAddr, previousBidder, previousTop.Amount); err != nil {
			return err
		}
	}

	cycle.PushBid(auction.Bid{Bidder: caller, Amount: args.Amount})

	// sniping protection: a bid inside the encore window pushes the end out
	// by the encore period, indefinitely while bids keep arriving
	if root.Config.EncorePeriod > 0 && cycle.EndTime-now <= root.Config.EncorePeriod {
		endTime, ok := gold.CheckedAdd(cycle.EndTime, root.Config.EncorePeriod)
		if !ok {
			return reverts.ErrArithmetic
		}
		cycle.EndTime = endTime
	}

	if err := e.storeCycleState(cycleAddr, cycle); err != nil {
		return err
	}

	metricBidsPlaced().Add(1)
	logger.Debug("bid placed", "id", args.Id, "bidder", caller, "amount", args.Amount)
	return nil
}
