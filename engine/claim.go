// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"github.com/goldxyz/auctiond/engine/bank"
	"github.com/goldxyz/auctiond/engine/reverts"
	"github.com/goldxyz/auctiond/gold"
)

// ClaimFunds pays out settled escrow to the auction owner, minus the
// protocol fee credited to the contract bank. Only the recorded owner may
// claim. The fee split is a single rounding: the platform share is floored,
// the owner receives the exact remainder.
func (e *Engine) ClaimFunds(caller gold.Address, args *ClaimFundsArgs) error {
	root, rootAddr, err := e.loadRootState(args.Id)
	if err != nil {
		return err
	}
	if root.Owner != caller {
		return reverts.ErrAuctionOwnerMismatch
	}

	amount := args.Amount
	if amount == 0 {
		amount = root.AvailableFunds
	}
	if amount == 0 || amount > root.AvailableFunds {
		return reverts.ErrInsufficientFunds
	}

	feeBps, err := e.loadProtocolFee()
	if err != nil {
		return err
	}
	ownerShare, platformShare := bank.SplitFee(amount, feeBps)

	bankAddr := e.BankAddress(args.Id)
	if err := bank.DebitKeepingRent(e.state, bankAddr, amount); err != nil {
		return err
	}
	if err := bank.Credit(e.state, caller, ownerShare); err != nil {
		return err
	}
	if platformShare > 0 {
		if err := bank.Credit(e.state, e.ContractBankAddress(), platformShare); err != nil {
			return err
		}
	}

	root.AvailableFunds -= amount
	if err := e.storeRootState(rootAddr, root); err != nil {
		return err
	}
	logger.Debug("funds claimed", "id", args.Id, "amount", amount, "fee", platformShare)
	return nil
}

// ClaimRewards mints the reward of one closed cycle to its recorded top
// bidder. Claims are permitted in any chronological order once a cycle with
// a recorded bid has closed; each cycle's reward can be claimed exactly
// once, tracked by the end-time sentinel.
func (e *Engine) ClaimRewards(caller gold.Address, args *ClaimRewardsArgs) error {
	root, rootAddr, err := e.loadRootState(args.Id)
	if err != nil {
		return err
	}
	if args.Cycle == 0 || args.Cycle > root.Status.CurrentAuctionCycle {
		return reverts.ErrAuctionIsInProgress
	}

	cycle, cycleAddr, err := e.loadCycleState(rootAddr, args.Cycle)
	if err != nil {
		return err
	}
	if cycle.RewardClaimed() {
		return reverts.ErrRewardAlreadyClaimed
	}
	top := cycle.TopBid()
	if top == nil {
		return reverts.ErrAuctionIsInProgress
	}
	if args.Cycle == root.Status.CurrentAuctionCycle && !root.Status.IsFinished {
		// the live cycle settles only when closed
		return reverts.ErrAuctionIsInProgress
	}

	switch {
	case root.TokenConfig.Nft != nil:
		edition := args.Cycle
		if root.TokenConfig.Nft.IsRepeating {
			// repeating auctions number editions by mint order, not by
			// cycle number
			edition = 0
		}
		if err := e.minter.MintEdition(root.TokenConfig.Nft.MasterEdition, edition, top.Bidder); err != nil {
			return err
		}
	case root.TokenConfig.Token != nil:
		t := root.TokenConfig.Token
		if err := e.minter.MintTokens(t.Mint, top.Bidder, t.PerCycleAmount); err != nil {
			return err
		}
	default:
		return reverts.ErrTokenAuctionInconsistency
	}

	cycle.EndTime = 0 // claimed sentinel
	if root.UnclaimedRewards == 0 {
		return reverts.ErrArithmetic
	}
	root.UnclaimedRewards--

	if err := e.storeCycleState(cycleAddr, cycle); err != nil {
		return err
	}
	if err := e.storeRootState(rootAddr, root); err != nil {
		return err
	}
	metricRewardsClaimed().Add(1)
	logger.Debug("reward claimed", "id", args.Id, "cycle", args.Cycle, "winner", top.Bidder)
	return nil
}
