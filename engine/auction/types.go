// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/goldxyz/auctiond/engine/reverts"
	"github.com/goldxyz/auctiond/gold"
)

// Config holds the immutable-after-creation parameters of an auction.
type Config struct {
	CyclePeriod      uint64  // duration of one cycle, in seconds
	EncorePeriod     uint64  // sniping-extension window before cycle end, in seconds
	NumberOfCycles   *uint64 `rlp:"nil"` // nil means the auction recurs indefinitely
	MinimumBidAmount uint64
}

// Verify checks the config against the protocol-wide bounds.
func (c *Config) Verify() error {
	if c.CyclePeriod < gold.MinCyclePeriod || c.CyclePeriod > gold.MaxCyclePeriod {
		return reverts.ErrInvalidCyclePeriod
	}
	if c.EncorePeriod > c.CyclePeriod/2 {
		return reverts.ErrInvalidEncorePeriod
	}
	if c.MinimumBidAmount < gold.UniversalBidFloor {
		return reverts.ErrInvalidMinimumBidAmount
	}
	if c.NumberOfCycles != nil && *c.NumberOfCycles == 0 {
		return reverts.ErrInvalidCycleCount
	}
	return nil
}

// IsLastCycle reports whether the given cycle number is the configured final one.
func (c *Config) IsLastCycle(cycle uint64) bool {
	return c.NumberOfCycles != nil && cycle >= *c.NumberOfCycles
}

// Description carries the bounded display strings of an auction.
type Description struct {
	Description        string
	Socials            []string
	GoalTreasuryAmount *uint64 `rlp:"nil"`
}

// Verify checks the description against the protocol-wide bounds.
func (d *Description) Verify() error {
	if len(d.Description) > gold.MaxDescriptionLength {
		return reverts.ErrDescriptionTooLong
	}
	if len(d.Socials) > gold.MaxSocials {
		return reverts.ErrSocialsTooLong
	}
	for _, s := range d.Socials {
		if len(s) > gold.MaxSocialLength {
			return reverts.ErrSocialsTooLong
		}
	}
	return nil
}

// NftData configures an auction whose cycles mint numbered editions derived
// from a shared master edition.
type NftData struct {
	MasterEdition gold.Address
	// IsRepeating auctions mint from the same descriptor every cycle instead
	// of advancing the embedded edition counter.
	IsRepeating bool
}

// TokenData configures an auction whose cycles mint a fixed fungible amount.
type TokenData struct {
	Mint           gold.Address
	PerCycleAmount uint64
}

// TokenConfig is the tagged union of the two reward kinds. Exactly one arm
// is set.
type TokenConfig struct {
	Nft   *NftData   `rlp:"nil"`
	Token *TokenData `rlp:"nil"`
}

// Verify checks that exactly one union arm is present and well formed.
func (t *TokenConfig) Verify() error {
	switch {
	case t.Nft != nil && t.Token == nil:
		if t.Nft.MasterEdition.IsZero() {
			return reverts.ErrMasterEditionMismatch
		}
		return nil
	case t.Token != nil && t.Nft == nil:
		if t.Token.Mint.IsZero() || t.Token.PerCycleAmount == 0 {
			return reverts.ErrTokenAuctionInconsistency
		}
		return nil
	default:
		return reverts.ErrTokenAuctionInconsistency
	}
}

// Status tracks the mutable lifecycle counters and flags of an auction.
type Status struct {
	CurrentAuctionCycle    uint64 // 1-based
	CurrentIdleCycleStreak uint32
	IsFinished             bool
	IsFrozen               bool
	IsFiltered             bool
	IsVerified             bool
}

// RootState is the auction's identity record.
type RootState struct {
	AuctionName      gold.AuctionID
	Owner            gold.Address
	Description      Description
	Config           Config
	TokenConfig      TokenConfig
	Status           Status
	AllTimeTreasury  uint64 // cumulative funds ever raised
	AvailableFunds   uint64 // currently claimable by the owner
	StartTime        uint64 // unix seconds
	UnclaimedRewards uint32
}

// IsEmpty returns whether the record can be treated as empty.
func (r *RootState) IsEmpty() bool {
	return r.AuctionName.IsZero()
}

// Bid is one recorded bid. Immutable once recorded, except for implicit
// eviction from the ring when capacity is exceeded.
type Bid struct {
	Bidder gold.Address
	Amount uint64
}

// CycleState is the per-cycle record: the end timestamp and a bounded ring
// of the most recent bids, ordered oldest to newest.
//
// EndTime doubles as the reward-claim sentinel: zero means the cycle's
// reward has already been claimed.
type CycleState struct {
	EndTime uint64
	Bids    []Bid
}

// IsEmpty returns whether the record can be treated as empty.
func (c *CycleState) IsEmpty() bool {
	return c.EndTime == 0 && len(c.Bids) == 0
}

// TopBid returns the ring's last entry, or nil if no bids were placed.
func (c *CycleState) TopBid() *Bid {
	if len(c.Bids) == 0 {
		return nil
	}
	return &c.Bids[len(c.Bids)-1]
}

// PushBid appends a bid to the ring, silently evicting the oldest entry
// once capacity is reached.
func (c *CycleState) PushBid(b Bid) {
	if len(c.Bids) >= gold.BidHistoryLength {
		c.Bids = append(c.Bids[len(c.Bids)-gold.BidHistoryLength+1:], b)
		return
	}
	c.Bids = append(c.Bids, b)
}

// RewardClaimed reports whether the cycle's reward has been handed out.
func (c *CycleState) RewardClaimed() bool {
	return c.EndTime == 0
}

// Statically known bounds on the encoded size of each record, used to
// pre-size storage allocations and derive rent-exempt minimum balances.
const (
	RootStateMaxLen  = 1280
	CycleStateMaxLen = 512
)
