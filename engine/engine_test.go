// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldxyz/auctiond/engine"
	"github.com/goldxyz/auctiond/engine/auction"
	"github.com/goldxyz/auctiond/engine/reverts"
	"github.com/goldxyz/auctiond/gold"
	"github.com/goldxyz/auctiond/mint"
	"github.com/goldxyz/auctiond/test/datagen"
	"github.com/goldxyz/auctiond/test/testenv"
)

const (
	t0          uint64 = 1_700_000_000
	cyclePeriod        = gold.MinCyclePeriod
	minBid             = gold.UniversalBidFloor
)

type fixture struct {
	*testenv.Env
	admin     gold.Address
	authority gold.Address
	owner     gold.Address
	bidder1   gold.Address
	bidder2   gold.Address
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		Env:       testenv.New(t),
		admin:     datagen.RandAddress(),
		authority: datagen.RandAddress(),
		owner:     datagen.RandAddress(),
		bidder1:   datagen.RandAddress(),
		bidder2:   datagen.RandAddress(),
	}
	f.Fund(t, f.admin, f.authority, f.owner, f.bidder1, f.bidder2)
	f.MustExecute(t, f.admin, t0, &engine.InitializeContractArgs{
		Admin:             f.admin,
		WithdrawAuthority: f.authority,
	})
	return f
}

// newNftAuction creates a non-repeating collectible auction starting at t0.
// cycles nil means perpetual.
func (f *fixture) newNftAuction(t *testing.T, name string, encore uint64, cycles *uint64) gold.AuctionID {
	t.Helper()
	id, err := gold.NewAuctionID(name)
	require.NoError(t, err)
	f.MustExecute(t, f.owner, t0, &engine.InitializeAuctionArgs{
		Id: id,
		Config: auction.Config{
			CyclePeriod:      cyclePeriod,
			EncorePeriod:     encore,
			NumberOfCycles:   cycles,
			MinimumBidAmount: minBid,
		},
		Description: auction.Description{Description: "test auction"},
		TokenConfig: auction.TokenConfig{
			Nft: &auction.NftData{MasterEdition: datagen.RandAddress()},
		},
		Metadata: mint.Metadata{Name: "Test", Symbol: "TST", URI: "https://example.com/meta/0.json"},
	})
	return id
}

func (f *fixture) inPool(t *testing.T, secondary bool, id gold.AuctionID) bool {
	t.Helper()
	ids, err := f.Engine.PoolIDs(secondary)
	require.NoError(t, err)
	for _, member := range ids {
		if member == id {
			return true
		}
	}
	return false
}

func (f *fixture) balanceOf(t *testing.T, addr gold.Address) uint64 {
	t.Helper()
	balance, err := f.State.GetBalance(addr)
	require.NoError(t, err)
	return balance
}

func TestInitializeContract(t *testing.T) {
	f := newFixture(t)

	b, err := f.Engine.ContractBank()
	require.NoError(t, err)
	assert.Equal(t, f.admin, b.Admin)
	assert.Equal(t, f.authority, b.WithdrawAuthority)

	// both pools exist and are empty
	for _, secondary := range []bool{false, true} {
		ids, err := f.Engine.PoolIDs(secondary)
		require.NoError(t, err)
		assert.Empty(t, ids)
	}

	err = f.Execute(f.admin, t0, &engine.InitializeContractArgs{Admin: f.admin, WithdrawAuthority: f.authority})
	assert.ErrorIs(t, err, reverts.ErrContractAlreadyInitialized)
}

func TestMissingSignature(t *testing.T) {
	f := newFixture(t)
	err := f.Engine.Execute(&engine.Call{
		Caller: f.admin,
		Signed: false,
		Now:    t0,
		Args:   &engine.PoolCleanupArgs{},
	})
	assert.ErrorIs(t, err, reverts.ErrMissingSignature)
}

func TestInitializeAuction(t *testing.T) {
	f := newFixture(t)
	id := f.newNftAuction(t, "first", 0, nil)

	root, err := f.Engine.Auction(id)
	require.NoError(t, err)
	assert.Equal(t, f.owner, root.Owner)
	assert.Equal(t, uint64(1), root.Status.CurrentAuctionCycle)
	assert.Equal(t, t0, root.StartTime)

	cycle, err := f.Engine.Cycle(id, 0)
	require.NoError(t, err)
	assert.Equal(t, t0+cyclePeriod, cycle.EndTime)
	assert.True(t, f.inPool(t, false, id))

	// duplicate name
	err = f.Execute(f.owner, t0, &engine.InitializeAuctionArgs{
		Id:          id,
		Config:      auction.Config{CyclePeriod: cyclePeriod, MinimumBidAmount: minBid},
		TokenConfig: auction.TokenConfig{Nft: &auction.NftData{MasterEdition: datagen.RandAddress()}},
		Metadata:    mint.Metadata{URI: "https://example.com/meta/0.json"},
	})
	assert.ErrorIs(t, err, reverts.ErrAuctionAlreadyInitialized)

	// a start time in the past is rejected
	err = f.Execute(f.owner, t0, &engine.InitializeAuctionArgs{
		Id:          mustID(t, "past"),
		Config:      auction.Config{CyclePeriod: cyclePeriod, MinimumBidAmount: minBid},
		TokenConfig: auction.TokenConfig{Nft: &auction.NftData{MasterEdition: datagen.RandAddress()}},
		Metadata:    mint.Metadata{URI: "https://example.com/meta/0.json"},
		StartTime:   t0 - 1,
	})
	assert.ErrorIs(t, err, reverts.ErrInvalidStartTime)
}

func mustID(t *testing.T, name string) gold.AuctionID {
	t.Helper()
	id, err := gold.NewAuctionID(name)
	require.NoError(t, err)
	return id
}

func TestBidAndOutbid(t *testing.T) {
	f := newFixture(t)
	id := f.newNftAuction(t, "bids", 0, nil)
	escrow := f.Engine.BankAddress(id)
	escrowBase := f.balanceOf(t, escrow)

	// below minimum
	err := f.Execute(f.bidder1, t0, &engine.BidArgs{Id: id, Amount: minBid - 1})
	assert.ErrorIs(t, err, reverts.ErrInvalidBidAmount)

	f.MustExecute(t, f.bidder1, t0, &engine.BidArgs{Id: id, Amount: minBid})
	assert.Equal(t, escrowBase+minBid, f.balanceOf(t, escrow))

	// stale top bidder assertion
	err = f.Execute(f.bidder2, t0+1, &engine.BidArgs{Id: id, Amount: minBid * 3})
	assert.ErrorIs(t, err, reverts.ErrTopBidderAccountMismatch)

	// outbidding must beat the top bid, not just the minimum
	err = f.Execute(f.bidder2, t0+1, &engine.BidArgs{Id: id, Amount: minBid, TopBidder: f.bidder1})
	assert.ErrorIs(t, err, reverts.ErrInvalidBidAmount)

	bidder1Before := f.balanceOf(t, f.bidder1)
	f.MustExecute(t, f.bidder2, t0+1, &engine.BidArgs{Id: id, Amount: minBid * 3, TopBidder: f.bidder1})

	// the outbid bidder got refunded, escrow holds only the new top
	assert.Equal(t, bidder1Before+minBid, f.balanceOf(t, f.bidder1))
	assert.Equal(t, escrowBase+minBid*3, f.balanceOf(t, escrow))

	cycle, err := f.Engine.Cycle(id, 0)
	require.NoError(t, err)
	assert.Equal(t, f.bidder2, cycle.TopBid().Bidder)
	assert.Len(t, cycle.Bids, 2)
}

func TestBidAtomicityOnFailure(t *testing.T) {
	f := newFixture(t)
	id := f.newNftAuction(t, "atomic", 0, nil)
	escrow := f.Engine.BankAddress(id)
	escrowBefore := f.balanceOf(t, escrow)

	pauper := datagen.RandAddress()
	err := f.Execute(pauper, t0, &engine.BidArgs{Id: id, Amount: minBid})
	assert.ErrorIs(t, err, reverts.ErrInsufficientFunds)

	// nothing of the failed call sticks
	assert.Equal(t, escrowBefore, f.balanceOf(t, escrow))
	cycle, err := f.Engine.Cycle(id, 0)
	require.NoError(t, err)
	assert.Empty(t, cycle.Bids)
}

func TestEncoreExtension(t *testing.T) {
	const encore = 20
	f := newFixture(t)
	id := f.newNftAuction(t, "encore", encore, nil)

	endTime := t0 + cyclePeriod

	// a bid before the encore window leaves the end untouched
	f.MustExecute(t, f.bidder1, endTime-encore-1, &engine.BidArgs{Id: id, Amount: minBid})
	cycle, err := f.Engine.Cycle(id, 0)
	require.NoError(t, err)
	assert.Equal(t, endTime, cycle.EndTime)

	// a bid inside the window pushes the end out by the encore period
	f.MustExecute(t, f.bidder2, endTime-5, &engine.BidArgs{Id: id, Amount: minBid * 2, TopBidder: f.bidder1})
	cycle, err = f.Engine.Cycle(id, 0)
	require.NoError(t, err)
	assert.Equal(t, endTime+encore, cycle.EndTime)
}

func TestCloseCycleAdvances(t *testing.T) {
	f := newFixture(t)
	id := f.newNftAuction(t, "advance", 0, nil)
	closer := f.admin

	f.MustExecute(t, f.bidder1, t0, &engine.BidArgs{Id: id, Amount: minBid})

	// too early
	err := f.Execute(closer, t0+cyclePeriod-1, &engine.CloseAuctionCycleArgs{Id: id})
	assert.ErrorIs(t, err, reverts.ErrAuctionIsInProgress)

	f.MustExecute(t, closer, t0+cyclePeriod, &engine.CloseAuctionCycleArgs{Id: id})

	root, err := f.Engine.Auction(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), root.Status.CurrentAuctionCycle)
	assert.Equal(t, uint64(minBid), root.AvailableFunds)
	assert.Equal(t, uint64(minBid), root.AllTimeTreasury)
	assert.Equal(t, uint32(1), root.UnclaimedRewards)
	assert.False(t, root.Status.IsFinished)

	cycle, err := f.Engine.Cycle(id, 0)
	require.NoError(t, err)
	assert.Equal(t, t0+2*cyclePeriod, cycle.EndTime)
	assert.Empty(t, cycle.Bids)
}

func TestCloseLastCycleFinishes(t *testing.T) {
	one := uint64(1)
	f := newFixture(t)
	id := f.newNftAuction(t, "single", 0, &one)

	f.MustExecute(t, f.bidder1, t0, &engine.BidArgs{Id: id, Amount: minBid})
	f.MustExecute(t, f.admin, t0+cyclePeriod, &engine.CloseAuctionCycleArgs{Id: id})

	root, err := f.Engine.Auction(id)
	require.NoError(t, err)
	assert.True(t, root.Status.IsFinished)
	// the finished cycle record's rent became claimable on top of the bid
	assert.Greater(t, root.AvailableFunds, uint64(minBid))
	assert.False(t, f.inPool(t, false, id))
	assert.True(t, f.inPool(t, true, id))

	// no further bids or closes
	err = f.Execute(f.bidder2, t0+cyclePeriod, &engine.BidArgs{Id: id, Amount: minBid})
	assert.ErrorIs(t, err, reverts.ErrAuctionEnded)
	err = f.Execute(f.admin, t0+2*cyclePeriod, &engine.CloseAuctionCycleArgs{Id: id})
	assert.ErrorIs(t, err, reverts.ErrAuctionEnded)
}

func TestIdleCycleDemotion(t *testing.T) {
	f := newFixture(t)
	id := f.newNftAuction(t, "idle", 0, nil)

	now := t0
	for i := uint32(1); i <= gold.AllowedConsecutiveIdleCycles; i++ {
		now += cyclePeriod
		f.MustExecute(t, f.admin, now, &engine.CloseAuctionCycleArgs{Id: id})

		root, err := f.Engine.Auction(id)
		require.NoError(t, err)
		assert.Equal(t, i, root.Status.CurrentIdleCycleStreak)
		assert.Equal(t, uint64(1), root.Status.CurrentAuctionCycle, "idle closes reuse the cycle record")
		assert.True(t, f.inPool(t, false, id))
	}

	// one more idle close crosses the threshold
	now += cyclePeriod
	f.MustExecute(t, f.admin, now, &engine.CloseAuctionCycleArgs{Id: id})
	assert.False(t, f.inPool(t, false, id))
	assert.True(t, f.inPool(t, true, id))

	// once the re-opened window lapses too, a bid reactivates the auction
	// with a fresh window
	bidTime := now + cyclePeriod + 10
	f.MustExecute(t, f.bidder1, bidTime, &engine.BidArgs{Id: id, Amount: minBid})
	cycle, err := f.Engine.Cycle(id, 0)
	require.NoError(t, err)
	assert.Equal(t, bidTime+cyclePeriod, cycle.EndTime)
	assert.True(t, f.inPool(t, false, id))
	assert.False(t, f.inPool(t, true, id))
}

func TestClaimFunds(t *testing.T) {
	f := newFixture(t)
	id := f.newNftAuction(t, "claims", 0, nil)
	const amount = 10_000

	f.MustExecute(t, f.bidder1, t0, &engine.BidArgs{Id: id, Amount: amount})
	f.MustExecute(t, f.admin, t0+cyclePeriod, &engine.CloseAuctionCycleArgs{Id: id})

	err := f.Execute(f.bidder1, t0+cyclePeriod, &engine.ClaimFundsArgs{Id: id})
	assert.ErrorIs(t, err, reverts.ErrAuctionOwnerMismatch)

	ownerBefore := f.balanceOf(t, f.owner)
	platformBefore := f.balanceOf(t, f.Engine.ContractBankAddress())

	f.MustExecute(t, f.owner, t0+cyclePeriod, &engine.ClaimFundsArgs{Id: id})

	// default fee is 500 bps
	assert.Equal(t, ownerBefore+amount-500, f.balanceOf(t, f.owner))
	assert.Equal(t, platformBefore+500, f.balanceOf(t, f.Engine.ContractBankAddress()))

	root, err := f.Engine.Auction(id)
	require.NoError(t, err)
	assert.Zero(t, root.AvailableFunds)

	err = f.Execute(f.owner, t0+cyclePeriod, &engine.ClaimFundsArgs{Id: id})
	assert.ErrorIs(t, err, reverts.ErrInsufficientFunds)
}

func TestClaimRewardsAnyOrder(t *testing.T) {
	f := newFixture(t)
	id := f.newNftAuction(t, "rewards", 0, nil)

	root, err := f.Engine.Auction(id)
	require.NoError(t, err)
	master := root.TokenConfig.Nft.MasterEdition

	// three settled cycles won by alternating bidders
	now := t0
	winners := []gold.Address{f.bidder1, f.bidder2, f.bidder1}
	for _, w := range winners {
		f.MustExecute(t, w, now, &engine.BidArgs{Id: id, Amount: minBid})
		now += cyclePeriod
		f.MustExecute(t, f.admin, now, &engine.CloseAuctionCycleArgs{Id: id})
	}

	// the live cycle cannot be claimed
	err = f.Execute(f.bidder1, now, &engine.ClaimRewardsArgs{Id: id, Cycle: 4})
	assert.ErrorIs(t, err, reverts.ErrAuctionIsInProgress)

	// out of order is fine
	f.MustExecute(t, f.bidder2, now, &engine.ClaimRewardsArgs{Id: id, Cycle: 2})
	f.MustExecute(t, f.bidder1, now, &engine.ClaimRewardsArgs{Id: id, Cycle: 1})

	err = f.Execute(f.bidder2, now, &engine.ClaimRewardsArgs{Id: id, Cycle: 2})
	assert.ErrorIs(t, err, reverts.ErrRewardAlreadyClaimed)

	// editions landed with the recorded winners
	holder, ok, err := f.Minter.EditionOwner(master, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, f.bidder1, holder)
	holder, ok, err = f.Minter.EditionOwner(master, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, f.bidder2, holder)

	root, err = f.Engine.Auction(id)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), root.UnclaimedRewards)
}

func TestClaimRewardsTokenAuction(t *testing.T) {
	f := newFixture(t)
	id := mustID(t, "fungible")
	tokenMint := datagen.RandAddress()
	f.MustExecute(t, f.owner, t0, &engine.InitializeAuctionArgs{
		Id: id,
		Config: auction.Config{
			CyclePeriod:      cyclePeriod,
			MinimumBidAmount: minBid,
		},
		Description: auction.Description{Description: "fungible reward auction"},
		TokenConfig: auction.TokenConfig{
			Token: &auction.TokenData{Mint: tokenMint, PerCycleAmount: 250},
		},
	})

	end1 := t0 + cyclePeriod
	end2 := end1 + cyclePeriod
	f.MustExecute(t, f.bidder1, t0+1, &engine.BidArgs{Id: id, Amount: minBid})
	f.MustExecute(t, f.admin, end1, &engine.CloseAuctionCycleArgs{Id: id})
	f.MustExecute(t, f.bidder2, end1+1, &engine.BidArgs{Id: id, Amount: minBid})
	f.MustExecute(t, f.admin, end2, &engine.CloseAuctionCycleArgs{Id: id})

	f.MustExecute(t, f.bidder2, end2, &engine.ClaimRewardsArgs{Id: id, Cycle: 1})
	f.MustExecute(t, f.bidder2, end2, &engine.ClaimRewardsArgs{Id: id, Cycle: 2})

	// each settled cycle mints the per-cycle amount to its top bidder
	held, err := f.Minter.HoldingOf(tokenMint, f.bidder1)
	require.NoError(t, err)
	assert.Equal(t, uint64(250), held)
	held, err = f.Minter.HoldingOf(tokenMint, f.bidder2)
	require.NoError(t, err)
	assert.Equal(t, uint64(250), held)

	err = f.Execute(f.bidder1, end2, &engine.ClaimRewardsArgs{Id: id, Cycle: 1})
	assert.ErrorIs(t, err, reverts.ErrRewardAlreadyClaimed)
}

func TestClaimRewardsRepeatingNft(t *testing.T) {
	f := newFixture(t)
	id := mustID(t, "repeating")
	master := datagen.RandAddress()
	f.MustExecute(t, f.owner, t0, &engine.InitializeAuctionArgs{
		Id: id,
		Config: auction.Config{
			CyclePeriod:      cyclePeriod,
			MinimumBidAmount: minBid,
		},
		Description: auction.Description{Description: "repeating reward auction"},
		TokenConfig: auction.TokenConfig{
			Nft: &auction.NftData{MasterEdition: master, IsRepeating: true},
		},
		Metadata: mint.Metadata{Name: "Rep", Symbol: "REP", URI: "https://example.com/meta/0.json"},
	})

	end1 := t0 + cyclePeriod
	end2 := end1 + cyclePeriod
	f.MustExecute(t, f.bidder1, t0+1, &engine.BidArgs{Id: id, Amount: minBid})
	f.MustExecute(t, f.admin, end1, &engine.CloseAuctionCycleArgs{Id: id})
	f.MustExecute(t, f.bidder2, end1+1, &engine.BidArgs{Id: id, Amount: minBid})
	f.MustExecute(t, f.admin, end2, &engine.CloseAuctionCycleArgs{Id: id})

	// closing never advances a repeating auction's shared descriptor
	m, err := f.Minter.MasterOf(master)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), m.TopEdition)
	assert.Equal(t, "https://example.com/meta/0.json", m.Meta.URI)

	// editions go out by mint order, not by cycle number
	f.MustExecute(t, f.bidder2, end2, &engine.ClaimRewardsArgs{Id: id, Cycle: 2})
	winner, ok, err := f.Minter.EditionOwner(master, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, f.bidder2, winner)

	f.MustExecute(t, f.bidder1, end2, &engine.ClaimRewardsArgs{Id: id, Cycle: 1})
	winner, ok, err = f.Minter.EditionOwner(master, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, f.bidder1, winner)
}

func TestFreezeAndThaw(t *testing.T) {
	f := newFixture(t)
	id := f.newNftAuction(t, "frozen", 0, nil)

	f.MustExecute(t, f.bidder1, t0, &engine.BidArgs{Id: id, Amount: minBid})

	err := f.Execute(f.bidder1, t0, &engine.FreezeArgs{Id: id})
	assert.ErrorIs(t, err, reverts.ErrAuctionOwnerMismatch)

	bidder1Before := f.balanceOf(t, f.bidder1)
	f.MustExecute(t, f.owner, t0+1, &engine.FreezeArgs{Id: id})

	// live top bid refunded, auction demoted
	assert.Equal(t, bidder1Before+minBid, f.balanceOf(t, f.bidder1))
	assert.True(t, f.inPool(t, true, id))
	cycle, err := f.Engine.Cycle(id, 0)
	require.NoError(t, err)
	assert.Empty(t, cycle.Bids)

	err = f.Execute(f.bidder2, t0+2, &engine.BidArgs{Id: id, Amount: minBid})
	assert.ErrorIs(t, err, reverts.ErrAuctionFrozen)

	// freezing again is a no-op
	f.MustExecute(t, f.owner, t0+3, &engine.FreezeArgs{Id: id})

	// only the admin may thaw
	err = f.Execute(f.owner, t0+4, &engine.ThawArgs{Id: id})
	assert.ErrorIs(t, err, reverts.ErrContractAdminMismatch)

	thawTime := t0 + 100
	f.MustExecute(t, f.admin, thawTime, &engine.ThawArgs{Id: id})

	root, err := f.Engine.Auction(id)
	require.NoError(t, err)
	assert.False(t, root.Status.IsFrozen)
	assert.Zero(t, root.Status.CurrentIdleCycleStreak)
	assert.True(t, f.inPool(t, false, id))

	cycle, err = f.Engine.Cycle(id, 0)
	require.NoError(t, err)
	assert.Equal(t, thawTime+cyclePeriod, cycle.EndTime, "thaw grants a fresh window")
}

func TestFreezeRefundsOnlyEscrowedBid(t *testing.T) {
	f := newFixture(t)
	id := f.newNftAuction(t, "refunded", 0, nil)
	escrow := f.Engine.BankAddress(id)
	escrowBase := f.balanceOf(t, escrow)

	f.MustExecute(t, f.bidder1, t0, &engine.BidArgs{Id: id, Amount: minBid})
	f.MustExecute(t, f.bidder2, t0+1, &engine.BidArgs{Id: id, Amount: minBid * 2, TopBidder: f.bidder1})

	bidder1Before := f.balanceOf(t, f.bidder1)
	bidder2Before := f.balanceOf(t, f.bidder2)
	f.MustExecute(t, f.owner, t0+2, &engine.FreezeArgs{Id: id})

	// only the escrowed top bid comes back; the outbid entry was already
	// refunded when it was outbid and must not resurface through the ring
	assert.Equal(t, bidder1Before, f.balanceOf(t, f.bidder1))
	assert.Equal(t, bidder2Before+minBid*2, f.balanceOf(t, f.bidder2))
	assert.Equal(t, escrowBase, f.balanceOf(t, escrow))
	cycle, err := f.Engine.Cycle(id, 0)
	require.NoError(t, err)
	assert.Empty(t, cycle.Bids)

	thawTime := t0 + 10
	f.MustExecute(t, f.admin, thawTime, &engine.ThawArgs{Id: id})

	// bidding restarts from scratch: no top bidder to assert, the floor is
	// the configured minimum again
	err = f.Execute(f.bidder1, thawTime+1, &engine.BidArgs{Id: id, Amount: minBid, TopBidder: f.bidder2})
	assert.ErrorIs(t, err, reverts.ErrTopBidderAccountMismatch)
	f.MustExecute(t, f.bidder1, thawTime+1, &engine.BidArgs{Id: id, Amount: minBid})
	assert.Equal(t, escrowBase+minBid, f.balanceOf(t, escrow))

	// the restarted cycle settles and pays out in full
	f.MustExecute(t, f.admin, thawTime+cyclePeriod, &engine.CloseAuctionCycleArgs{Id: id})
	ownerBefore := f.balanceOf(t, f.owner)
	f.MustExecute(t, f.owner, thawTime+cyclePeriod, &engine.ClaimFundsArgs{Id: id})
	assert.Equal(t, ownerBefore+950, f.balanceOf(t, f.owner), "950 of the 1000 top bid at the default fee")
}

func TestFilterAndVerify(t *testing.T) {
	f := newFixture(t)
	id := f.newNftAuction(t, "moderated", 0, nil)

	err := f.Execute(f.owner, t0, &engine.FilterAuctionArgs{Id: id, Filter: true})
	assert.ErrorIs(t, err, reverts.ErrContractAdminMismatch)

	f.MustExecute(t, f.admin, t0, &engine.FilterAuctionArgs{Id: id, Filter: true})
	assert.True(t, f.inPool(t, true, id))
	root, err := f.Engine.Auction(id)
	require.NoError(t, err)
	assert.True(t, root.Status.IsFiltered)

	f.MustExecute(t, f.admin, t0, &engine.FilterAuctionArgs{Id: id, Filter: false})
	assert.True(t, f.inPool(t, false, id))

	f.MustExecute(t, f.admin, t0, &engine.VerifyAuctionArgs{Id: id})
	root, err = f.Engine.Auction(id)
	require.NoError(t, err)
	assert.True(t, root.Status.IsVerified)
}

func TestModifyAuction(t *testing.T) {
	f := newFixture(t)
	id := f.newNftAuction(t, "edited", 0, nil)

	err := f.Execute(f.bidder1, t0, &engine.ModifyAuctionArgs{Id: id, Description: auction.Description{Description: "nope"}})
	assert.ErrorIs(t, err, reverts.ErrAuctionOwnerMismatch)

	f.MustExecute(t, f.owner, t0, &engine.ModifyAuctionArgs{
		Id:          id,
		Description: auction.Description{Description: "updated", Socials: []string{"https://x.com/gold"}},
	})
	root, err := f.Engine.Auction(id)
	require.NoError(t, err)
	assert.Equal(t, "updated", root.Description.Description)
}

func TestDeleteAuctionResumable(t *testing.T) {
	f := newFixture(t)
	id := f.newNftAuction(t, "doomed", 0, nil)

	// accumulate more cycle records than one delete call may unwind
	cycles := gold.MaxCycleRemovalPerCall + 5
	now := t0
	for i := uint64(0); i < cycles; i++ {
		f.MustExecute(t, f.bidder1, now, &engine.BidArgs{Id: id, Amount: minBid})
		now += cyclePeriod
		f.MustExecute(t, f.admin, now, &engine.CloseAuctionCycleArgs{Id: id})
	}
	root, err := f.Engine.Auction(id)
	require.NoError(t, err)
	require.Equal(t, cycles+1, root.Status.CurrentAuctionCycle)

	err = f.Execute(f.bidder1, now, &engine.DeleteAuctionArgs{Id: id})
	assert.ErrorIs(t, err, reverts.ErrAuctionOwnerMismatch)

	// first call: budget spent, auction frozen and delisted, root survives
	f.MustExecute(t, f.owner, now, &engine.DeleteAuctionArgs{Id: id})
	root, err = f.Engine.Auction(id)
	require.NoError(t, err)
	assert.True(t, root.Status.IsFrozen)
	assert.Equal(t, cycles+1-gold.MaxCycleRemovalPerCall, root.Status.CurrentAuctionCycle)
	assert.False(t, f.inPool(t, false, id))
	assert.False(t, f.inPool(t, true, id))

	// second call tears everything down
	ownerBefore := f.balanceOf(t, f.owner)
	f.MustExecute(t, f.owner, now, &engine.DeleteAuctionArgs{Id: id})

	_, err = f.Engine.Auction(id)
	assert.ErrorIs(t, err, reverts.ErrAuctionNotInitialized)
	exists, err := f.State.Exists(f.Engine.BankAddress(id))
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Greater(t, f.balanceOf(t, f.owner), ownerBefore, "escrow and root rent return to the owner")
}

func TestSetProtocolFeeAndWithdraw(t *testing.T) {
	f := newFixture(t)

	fee, err := f.Engine.ProtocolFee()
	require.NoError(t, err)
	assert.Equal(t, gold.DefaultProtocolFeeBps, fee)

	err = f.Execute(f.owner, t0, &engine.SetProtocolFeeArgs{FeeBps: 250})
	assert.ErrorIs(t, err, reverts.ErrContractAdminMismatch)

	err = f.Execute(f.admin, t0, &engine.SetProtocolFeeArgs{FeeBps: gold.MaxProtocolFeeBps + 1})
	assert.ErrorIs(t, err, reverts.ErrInvalidProtocolFee)

	f.MustExecute(t, f.admin, t0, &engine.SetProtocolFeeArgs{FeeBps: 250})
	fee, err = f.Engine.ProtocolFee()
	require.NoError(t, err)
	assert.Equal(t, uint16(250), fee)

	// accumulate platform funds through a fee-split claim
	id := f.newNftAuction(t, "feesrc", 0, nil)
	f.MustExecute(t, f.bidder1, t0, &engine.BidArgs{Id: id, Amount: 10_000})
	f.MustExecute(t, f.admin, t0+cyclePeriod, &engine.CloseAuctionCycleArgs{Id: id})
	f.MustExecute(t, f.owner, t0+cyclePeriod, &engine.ClaimFundsArgs{Id: id})

	err = f.Execute(f.admin, t0+cyclePeriod, &engine.AdminWithdrawArgs{Amount: 100})
	assert.ErrorIs(t, err, reverts.ErrWithdrawAuthorityMismatch)

	authorityBefore := f.balanceOf(t, f.authority)
	f.MustExecute(t, f.authority, t0+cyclePeriod, &engine.AdminWithdrawArgs{Amount: 100})
	assert.Equal(t, authorityBefore+100, f.balanceOf(t, f.authority))

	// hand over the authority and use it
	next := datagen.RandAddress()
	f.Fund(t, next)
	f.MustExecute(t, f.authority, t0+cyclePeriod, &engine.AdminWithdrawReassignArgs{NewAuthority: next})
	err = f.Execute(f.authority, t0+cyclePeriod, &engine.AdminWithdrawArgs{Amount: 1})
	assert.ErrorIs(t, err, reverts.ErrWithdrawAuthorityMismatch)
	f.MustExecute(t, next, t0+cyclePeriod, &engine.AdminWithdrawArgs{Amount: 1})
}

func TestZeroProtocolFee(t *testing.T) {
	f := newFixture(t)

	f.MustExecute(t, f.admin, t0, &engine.SetProtocolFeeArgs{FeeBps: 0})
	fee, err := f.Engine.ProtocolFee()
	require.NoError(t, err)
	assert.Zero(t, fee, "a waived fee does not snap back to the default")

	id := f.newNftAuction(t, "nofee", 0, nil)
	f.MustExecute(t, f.bidder1, t0, &engine.BidArgs{Id: id, Amount: 10_000})
	f.MustExecute(t, f.admin, t0+cyclePeriod, &engine.CloseAuctionCycleArgs{Id: id})

	ownerBefore := f.balanceOf(t, f.owner)
	f.MustExecute(t, f.owner, t0+cyclePeriod, &engine.ClaimFundsArgs{Id: id})
	assert.Equal(t, ownerBefore+10_000, f.balanceOf(t, f.owner), "the owner keeps the full claim")
}

func TestReallocatePool(t *testing.T) {
	f := newFixture(t)
	id := f.newNftAuction(t, "kept", 0, nil)

	err := f.Execute(f.admin, t0, &engine.ReallocatePoolArgs{NewMaxLen: gold.InitialPoolCapacity - 1})
	assert.ErrorIs(t, err, reverts.ErrShrinkingPoolIsNotAllowed)

	f.MustExecute(t, f.admin, t0, &engine.ReallocatePoolArgs{NewMaxLen: gold.InitialPoolCapacity * 2})

	// membership survives the reallocation and the staging record is gone
	assert.True(t, f.inPool(t, false, id))

	// growing again from the new size still works, equal size is a no-op
	f.MustExecute(t, f.admin, t0, &engine.ReallocatePoolArgs{NewMaxLen: gold.InitialPoolCapacity * 2})
	f.MustExecute(t, f.admin, t0, &engine.ReallocatePoolArgs{NewMaxLen: gold.InitialPoolCapacity * 3})
}

func TestPoolCleanup(t *testing.T) {
	f := newFixture(t)
	kept := f.newNftAuction(t, "kept", 0, nil)
	dangling := f.newNftAuction(t, "dangling", 0, nil)

	// simulate a root record lost to ledger-level pruning
	f.State.Delete(f.Engine.RootStateAddress(dangling))

	f.MustExecute(t, f.bidder1, t0, &engine.PoolCleanupArgs{})

	assert.True(t, f.inPool(t, false, kept))
	assert.False(t, f.inPool(t, false, dangling))
	assert.False(t, f.inPool(t, true, dangling))
}
