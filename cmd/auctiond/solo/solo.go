// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package solo runs the platform against a self-contained ledger for test &
// dev: a prefunded operator and bidder set, an auto-created demo auction, and
// a loop that keeps bidding on it and settling its cycles.
package solo

import (
	"context"
	"math/rand"
	"time"

	"github.com/goldxyz/auctiond/engine"
	"github.com/goldxyz/auctiond/engine/auction"
	"github.com/goldxyz/auctiond/gold"
	"github.com/goldxyz/auctiond/health"
	"github.com/goldxyz/auctiond/log"
	"github.com/goldxyz/auctiond/mint"
	"github.com/goldxyz/auctiond/state"
)

var logger = log.WithContext("pkg", "solo")

const (
	// DemoAuctionName the auction the solo loop plays against.
	DemoAuctionName = "solo-demo"

	prefundedBalance  uint64 = 1_000_000_000_000
	demoCyclePeriod          = gold.MinCyclePeriod
	demoEncorePeriod  uint64 = 10
	demoMinimumBid           = gold.UniversalBidFloor
	demoMetadataURI          = "https://assets.gold.xyz/solo-demo/0.json"
)

// Options solo mode options.
type Options struct {
	OnDemand bool
	Interval time.Duration
	Bidders  int
}

// Solo mode is the standalone client without the hosted ledger.
type Solo struct {
	eng          *engine.Engine
	st           *state.State
	operator     gold.Address
	bidders      []gold.Address
	healthStatus *health.Health
	opts         Options
	rng          *rand.Rand
}

// New create a solo client instance.
func New(eng *engine.Engine, st *state.State, operator gold.Address, healthStatus *health.Health, opts Options) *Solo {
	if opts.Bidders < 1 {
		opts.Bidders = 1
	}
	bidders := make([]gold.Address, opts.Bidders)
	for i := range bidders {
		bidders[i] = gold.DeriveAddress(operator, []byte("solo_bidder"), []byte{byte(i)})
	}
	return &Solo{
		eng:          eng,
		st:           st,
		operator:     operator,
		bidders:      bidders,
		healthStatus: healthStatus,
		opts:         opts,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Bootstrap prefunds the demo identities and creates the platform singletons
// and the demo auction, unless an earlier run already has.
func (s *Solo) Bootstrap() error {
	for _, addr := range append([]gold.Address{s.operator}, s.bidders...) {
		balance, err := s.st.GetBalance(addr)
		if err != nil {
			return err
		}
		if balance < prefundedBalance {
			if err := s.st.SetBalance(addr, prefundedBalance); err != nil {
				return err
			}
		}
	}

	bankExists, err := s.st.Exists(s.eng.ContractBankAddress())
	if err != nil {
		return err
	}
	if !bankExists {
		err := s.eng.Execute(&engine.Call{
			Caller: s.operator,
			Signed: true,
			Now:    uint64(time.Now().Unix()),
			Args: &engine.InitializeContractArgs{
				Admin:             s.operator,
				WithdrawAuthority: s.operator,
			},
		})
		if err != nil {
			return err
		}
	}

	id, err := gold.NewAuctionID(DemoAuctionName)
	if err != nil {
		return err
	}
	rootExists, err := s.st.Exists(s.eng.RootStateAddress(id))
	if err != nil {
		return err
	}
	if !rootExists {
		err := s.eng.Execute(&engine.Call{
			Caller: s.operator,
			Signed: true,
			Now:    uint64(time.Now().Unix()),
			Args: &engine.InitializeAuctionArgs{
				Id: id,
				Config: auction.Config{
					CyclePeriod:      demoCyclePeriod,
					EncorePeriod:     demoEncorePeriod,
					MinimumBidAmount: demoMinimumBid,
				},
				Description: auction.Description{
					Description: "perpetual demo auction minting one edition per cycle",
				},
				TokenConfig: auction.TokenConfig{
					Nft: &auction.NftData{
						MasterEdition: gold.DeriveAddress(s.operator, []byte("solo_master")),
					},
				},
				Metadata: mint.Metadata{
					Name:   "Solo Demo",
					Symbol: "DEMO",
					URI:    demoMetadataURI,
				},
			},
		})
		if err != nil {
			return err
		}
		logger.Info("demo auction created", "id", id, "owner", s.operator)
	}

	if err := s.st.Commit(); err != nil {
		return err
	}
	s.healthStatus.BootstrapStatus(true)
	return nil
}

// Run the solo loop until the context is canceled.
func (s *Solo) Run(ctx context.Context) error {
	logger.Info("solo loop started", "interval", s.opts.Interval, "bidders", len(s.bidders), "on-demand", s.opts.OnDemand)
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("solo loop stopped")
			return nil
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick plays one round: settle what is due on the demo auction, otherwise
// maybe place a bid on it.
func (s *Solo) tick() {
	closed := 0
	defer func() { s.healthStatus.NewPoll(closed) }()

	id, err := gold.NewAuctionID(DemoAuctionName)
	if err != nil {
		return
	}
	cycle, err := s.eng.Cycle(id, 0)
	if err != nil {
		logger.Warn("load demo cycle", "err", err)
		return
	}

	now := uint64(time.Now().Unix())
	if now >= cycle.EndTime {
		if s.opts.OnDemand && cycle.TopBid() == nil {
			return
		}
		closed += s.settle(id, cycle, now)
		return
	}

	// half of the ticks place a bid, so some cycles settle idle too
	if s.rng.Intn(2) == 0 {
		s.placeBid(id, cycle, now)
	}
}

func (s *Solo) placeBid(id gold.AuctionID, cycle *auction.CycleState, now uint64) {
	var (
		topBidder gold.Address
		amount    = demoMinimumBid
	)
	if top := cycle.TopBid(); top != nil {
		topBidder = top.Bidder
		amount = top.Amount + demoMinimumBid
	}
	bidder := s.bidders[s.rng.Intn(len(s.bidders))]

	err := s.eng.Execute(&engine.Call{
		Caller: bidder,
		Signed: true,
		Now:    now,
		Args:   &engine.BidArgs{Id: id, Amount: amount, TopBidder: topBidder},
	})
	if err != nil {
		logger.Debug("demo bid rejected", "err", err)
		return
	}
	if err := s.st.Commit(); err != nil {
		logger.Error("commit state", "err", err)
		return
	}
	logger.Info("demo bid placed", "bidder", bidder, "amount", amount)
}

// settle closes the due cycle, hands the reward to the winner and sweeps the
// owner's claimable funds.
func (s *Solo) settle(id gold.AuctionID, cycle *auction.CycleState, now uint64) int {
	root, err := s.eng.Auction(id)
	if err != nil {
		logger.Warn("load demo auction", "err", err)
		return 0
	}
	settledCycle := root.Status.CurrentAuctionCycle
	winner := cycle.TopBid()

	err = s.eng.Execute(&engine.Call{
		Caller: s.operator,
		Signed: true,
		Now:    now,
		Args:   &engine.CloseAuctionCycleArgs{Id: id},
	})
	if err != nil {
		logger.Debug("demo close skipped", "err", err)
		return 0
	}

	if winner != nil {
		err := s.eng.Execute(&engine.Call{
			Caller: winner.Bidder,
			Signed: true,
			Now:    now,
			Args:   &engine.ClaimRewardsArgs{Id: id, Cycle: settledCycle},
		})
		if err != nil {
			logger.Warn("demo reward claim failed", "cycle", settledCycle, "err", err)
		}
		err = s.eng.Execute(&engine.Call{
			Caller: s.operator,
			Signed: true,
			Now:    now,
			Args:   &engine.ClaimFundsArgs{Id: id},
		})
		if err != nil {
			logger.Warn("demo funds claim failed", "err", err)
		}
	}

	if err := s.st.Commit(); err != nil {
		logger.Error("commit state", "err", err)
		return 0
	}
	if winner != nil {
		logger.Info("demo cycle settled", "cycle", settledCycle, "winner", winner.Bidder, "amount", winner.Amount)
	} else {
		logger.Info("demo cycle idle", "cycle", settledCycle)
	}
	return 1
}
