// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auctions

import (
	"github.com/goldxyz/auctiond/engine/auction"
	"github.com/goldxyz/auctiond/gold"
)

// Auction is the JSON view of one auction's root record, flattened for
// frontend consumption.
type Auction struct {
	Id               string       `json:"id"`
	Owner            gold.Address `json:"owner"`
	Description      string       `json:"description"`
	Socials          []string     `json:"socials"`
	GoalTreasury     *uint64      `json:"goalTreasury,omitempty"`
	CyclePeriod      uint64       `json:"cyclePeriod"`
	EncorePeriod     uint64       `json:"encorePeriod"`
	NumberOfCycles   *uint64      `json:"numberOfCycles,omitempty"`
	MinimumBidAmount uint64       `json:"minimumBidAmount"`
	Reward           Reward       `json:"reward"`
	CurrentCycle     uint64       `json:"currentCycle"`
	IdleCycleStreak  uint32       `json:"idleCycleStreak"`
	IsFinished       bool         `json:"isFinished"`
	IsFrozen         bool         `json:"isFrozen"`
	IsFiltered       bool         `json:"isFiltered"`
	IsVerified       bool         `json:"isVerified"`
	AllTimeTreasury  uint64       `json:"allTimeTreasury"`
	AvailableFunds   uint64       `json:"availableFunds"`
	StartTime        uint64       `json:"startTime"`
	UnclaimedRewards uint32       `json:"unclaimedRewards"`
}

// Reward describes what a cycle's winner receives.
type Reward struct {
	Kind           string        `json:"kind"` // "nft" or "token"
	MasterEdition  *gold.Address `json:"masterEdition,omitempty"`
	IsRepeating    bool          `json:"isRepeating,omitempty"`
	Mint           *gold.Address `json:"mint,omitempty"`
	PerCycleAmount uint64        `json:"perCycleAmount,omitempty"`
}

// Bid is the JSON view of one recorded bid.
type Bid struct {
	Bidder gold.Address `json:"bidder"`
	Amount uint64       `json:"amount"`
}

// Cycle is the JSON view of one cycle record.
type Cycle struct {
	Number        uint64 `json:"number"`
	EndTime       uint64 `json:"endTime"`
	Bids          []Bid  `json:"bids"`
	RewardClaimed bool   `json:"rewardClaimed"`
}

func convertAuction(root *auction.RootState) *Auction {
	a := &Auction{
		Id:               root.AuctionName.String(),
		Owner:            root.Owner,
		Description:      root.Description.Description,
		Socials:          root.Description.Socials,
		GoalTreasury:     root.Description.GoalTreasuryAmount,
		CyclePeriod:      root.Config.CyclePeriod,
		EncorePeriod:     root.Config.EncorePeriod,
		NumberOfCycles:   root.Config.NumberOfCycles,
		MinimumBidAmount: root.Config.MinimumBidAmount,
		CurrentCycle:     root.Status.CurrentAuctionCycle,
		IdleCycleStreak:  root.Status.CurrentIdleCycleStreak,
		IsFinished:       root.Status.IsFinished,
		IsFrozen:         root.Status.IsFrozen,
		IsFiltered:       root.Status.IsFiltered,
		IsVerified:       root.Status.IsVerified,
		AllTimeTreasury:  root.AllTimeTreasury,
		AvailableFunds:   root.AvailableFunds,
		StartTime:        root.StartTime,
		UnclaimedRewards: root.UnclaimedRewards,
	}
	switch {
	case root.TokenConfig.Nft != nil:
		a.Reward = Reward{
			Kind:          "nft",
			MasterEdition: &root.TokenConfig.Nft.MasterEdition,
			IsRepeating:   root.TokenConfig.Nft.IsRepeating,
		}
	case root.TokenConfig.Token != nil:
		a.Reward = Reward{
			Kind:           "token",
			Mint:           &root.TokenConfig.Token.Mint,
			PerCycleAmount: root.TokenConfig.Token.PerCycleAmount,
		}
	}
	return a
}

func convertCycle(number uint64, cs *auction.CycleState) *Cycle {
	bids := make([]Bid, 0, len(cs.Bids))
	for _, b := range cs.Bids {
		bids = append(bids, Bid{Bidder: b.Bidder, Amount: b.Amount})
	}
	return &Cycle{
		Number:        number,
		EndTime:       cs.EndTime,
		Bids:          bids,
		RewardClaimed: cs.RewardClaimed(),
	}
}
