// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goldxyz/auctiond/engine/reverts"
	"github.com/goldxyz/auctiond/gold"
	"github.com/goldxyz/auctiond/test/datagen"
)

func validConfig() Config {
	return Config{
		CyclePeriod:      86_400,
		EncorePeriod:     300,
		MinimumBidAmount: gold.UniversalBidFloor,
	}
}

func TestConfigVerify(t *testing.T) {
	c := validConfig()
	assert.NoError(t, c.Verify())

	c = validConfig()
	c.CyclePeriod = gold.MinCyclePeriod - 1
	assert.ErrorIs(t, c.Verify(), reverts.ErrInvalidCyclePeriod)

	c = validConfig()
	c.CyclePeriod = gold.MaxCyclePeriod + 1
	assert.ErrorIs(t, c.Verify(), reverts.ErrInvalidCyclePeriod)

	c = validConfig()
	c.EncorePeriod = c.CyclePeriod/2 + 1
	assert.ErrorIs(t, c.Verify(), reverts.ErrInvalidEncorePeriod)

	c = validConfig()
	c.MinimumBidAmount = gold.UniversalBidFloor - 1
	assert.ErrorIs(t, c.Verify(), reverts.ErrInvalidMinimumBidAmount)

	c = validConfig()
	zero := uint64(0)
	c.NumberOfCycles = &zero
	assert.ErrorIs(t, c.Verify(), reverts.ErrInvalidCycleCount)
}

func TestConfigIsLastCycle(t *testing.T) {
	c := validConfig()
	assert.False(t, c.IsLastCycle(1_000_000), "perpetual auctions never finish")

	three := uint64(3)
	c.NumberOfCycles = &three
	assert.False(t, c.IsLastCycle(2))
	assert.True(t, c.IsLastCycle(3))
	assert.True(t, c.IsLastCycle(4))
}

func TestDescriptionVerify(t *testing.T) {
	d := Description{Description: "ok", Socials: []string{"https://example.com"}}
	assert.NoError(t, d.Verify())

	d = Description{Description: strings.Repeat("x", gold.MaxDescriptionLength+1)}
	assert.ErrorIs(t, d.Verify(), reverts.ErrDescriptionTooLong)

	d = Description{Socials: make([]string, gold.MaxSocials+1)}
	assert.ErrorIs(t, d.Verify(), reverts.ErrSocialsTooLong)

	d = Description{Socials: []string{strings.Repeat("x", gold.MaxSocialLength+1)}}
	assert.ErrorIs(t, d.Verify(), reverts.ErrSocialsTooLong)
}

func TestTokenConfigVerify(t *testing.T) {
	master := datagen.RandAddress()
	mintAddr := datagen.RandAddress()

	assert.NoError(t, (&TokenConfig{Nft: &NftData{MasterEdition: master}}).Verify())
	assert.NoError(t, (&TokenConfig{Token: &TokenData{Mint: mintAddr, PerCycleAmount: 1}}).Verify())

	assert.Error(t, (&TokenConfig{}).Verify())
	assert.Error(t, (&TokenConfig{
		Nft:   &NftData{MasterEdition: master},
		Token: &TokenData{Mint: mintAddr, PerCycleAmount: 1},
	}).Verify())
	assert.Error(t, (&TokenConfig{Nft: &NftData{}}).Verify())
	assert.Error(t, (&TokenConfig{Token: &TokenData{Mint: mintAddr}}).Verify())
}

func TestPushBidEvictsOldest(t *testing.T) {
	var c CycleState
	bidders := make([]gold.Address, gold.BidHistoryLength+3)
	for i := range bidders {
		bidders[i] = datagen.RandAddress()
		c.PushBid(Bid{Bidder: bidders[i], Amount: uint64(i + 1)})
	}

	assert.Len(t, c.Bids, gold.BidHistoryLength)
	assert.Equal(t, bidders[len(bidders)-1], c.TopBid().Bidder)
	assert.Equal(t, uint64(len(bidders)), c.TopBid().Amount)
	// the oldest three were evicted
	assert.Equal(t, bidders[3], c.Bids[0].Bidder)
}

func TestCycleStateSentinels(t *testing.T) {
	var c CycleState
	assert.True(t, c.IsEmpty())
	assert.Nil(t, c.TopBid())

	c.EndTime = 100
	assert.False(t, c.IsEmpty())
	assert.False(t, c.RewardClaimed())

	c.EndTime = 0
	assert.True(t, c.RewardClaimed())
}
