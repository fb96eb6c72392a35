// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auctions_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldxyz/auctiond/api/auctions"
	"github.com/goldxyz/auctiond/engine"
	"github.com/goldxyz/auctiond/engine/auction"
	"github.com/goldxyz/auctiond/gold"
	"github.com/goldxyz/auctiond/mint"
	"github.com/goldxyz/auctiond/test/datagen"
	"github.com/goldxyz/auctiond/test/testenv"
)

const t0 uint64 = 1_700_000_000

type server struct {
	*testenv.Env
	ts    *httptest.Server
	owner gold.Address
	admin gold.Address
}

func newServer(t *testing.T) *server {
	env := testenv.New(t)
	s := &server{
		Env:   env,
		owner: datagen.RandAddress(),
		admin: datagen.RandAddress(),
	}
	s.Fund(t, s.owner, s.admin)
	s.MustExecute(t, s.admin, t0, &engine.InitializeContractArgs{Admin: s.admin, WithdrawAuthority: s.admin})

	router := mux.NewRouter()
	auctions.New(env.Engine).Mount(router, "/auctions")
	s.ts = httptest.NewServer(router)
	t.Cleanup(s.ts.Close)
	return s
}

func (s *server) createAuction(t *testing.T, name string) gold.AuctionID {
	t.Helper()
	id, err := gold.NewAuctionID(name)
	require.NoError(t, err)
	s.MustExecute(t, s.owner, t0, &engine.InitializeAuctionArgs{
		Id: id,
		Config: auction.Config{
			CyclePeriod:      gold.MinCyclePeriod,
			MinimumBidAmount: gold.UniversalBidFloor,
		},
		Description: auction.Description{Description: "api test auction"},
		TokenConfig: auction.TokenConfig{
			Nft: &auction.NftData{MasterEdition: datagen.RandAddress()},
		},
		Metadata: mint.Metadata{Name: "API", Symbol: "API", URI: "https://example.com/meta/0.json"},
	})
	return id
}

func (s *server) get(t *testing.T, path string) (int, []byte) {
	t.Helper()
	res, err := http.Get(s.ts.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, body
}

func TestGetPool(t *testing.T) {
	s := newServer(t)
	s.createAuction(t, "listed")

	// freeze a second one into the secondary pool
	frozen := s.createAuction(t, "frozen")
	s.MustExecute(t, s.owner, t0, &engine.FreezeArgs{Id: frozen})

	var listing struct {
		Auctions []string `json:"auctions"`
	}

	code, body := s.get(t, "/auctions")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &listing))
	assert.Equal(t, []string{"listed"}, listing.Auctions)

	code, body = s.get(t, "/auctions?pool=secondary")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &listing))
	assert.Equal(t, []string{"frozen"}, listing.Auctions)

	code, body = s.get(t, "/auctions?pool=all")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &listing))
	assert.ElementsMatch(t, []string{"listed", "frozen"}, listing.Auctions)

	code, _ = s.get(t, "/auctions?pool=bogus")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetAuction(t *testing.T) {
	s := newServer(t)
	s.createAuction(t, "detailed")

	code, body := s.get(t, "/auctions/detailed")
	require.Equal(t, http.StatusOK, code)

	var view auctions.Auction
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "detailed", view.Id)
	assert.Equal(t, s.owner, view.Owner)
	assert.Equal(t, gold.MinCyclePeriod, view.CyclePeriod)
	assert.Equal(t, uint64(1), view.CurrentCycle)
	assert.Equal(t, "nft", view.Reward.Kind)
	assert.Nil(t, view.NumberOfCycles)

	code, _ = s.get(t, "/auctions/unknown")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.get(t, "/auctions/"+strings.Repeat("x", 40))
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetCycle(t *testing.T) {
	s := newServer(t)
	id := s.createAuction(t, "cycled")

	bidder := datagen.RandAddress()
	s.Fund(t, bidder)
	s.MustExecute(t, bidder, t0, &engine.BidArgs{Id: id, Amount: gold.UniversalBidFloor})

	code, body := s.get(t, "/auctions/cycled/cycles/1")
	require.Equal(t, http.StatusOK, code)

	var view auctions.Cycle
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, uint64(1), view.Number)
	assert.Equal(t, t0+gold.MinCyclePeriod, view.EndTime)
	require.Len(t, view.Bids, 1)
	assert.Equal(t, bidder, view.Bids[0].Bidder)
	assert.False(t, view.RewardClaimed)

	code, _ = s.get(t, "/auctions/cycled/cycles/99")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.get(t, "/auctions/cycled/cycles/one")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetClaimedCycleCached(t *testing.T) {
	s := newServer(t)
	id := s.createAuction(t, "settled")

	bidder := datagen.RandAddress()
	s.Fund(t, bidder)
	s.MustExecute(t, bidder, t0, &engine.BidArgs{Id: id, Amount: gold.UniversalBidFloor})
	s.MustExecute(t, s.admin, t0+gold.MinCyclePeriod, &engine.CloseAuctionCycleArgs{Id: id})
	s.MustExecute(t, bidder, t0+gold.MinCyclePeriod, &engine.ClaimRewardsArgs{Id: id, Cycle: 1})

	code, first := s.get(t, "/auctions/settled/cycles/1")
	require.Equal(t, http.StatusOK, code)
	var view auctions.Cycle
	require.NoError(t, json.Unmarshal(first, &view))
	assert.True(t, view.RewardClaimed)

	// second read serves the cached view
	code, second := s.get(t, "/auctions/settled/cycles/1")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, string(first), string(second))
}

func TestGetEscrow(t *testing.T) {
	s := newServer(t)
	id := s.createAuction(t, "escrowed")

	bidder := datagen.RandAddress()
	s.Fund(t, bidder)
	s.MustExecute(t, bidder, t0, &engine.BidArgs{Id: id, Amount: 5_000})

	code, body := s.get(t, "/auctions/escrowed/escrow")
	require.Equal(t, http.StatusOK, code)

	var view struct {
		Balance uint64 `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, gold.MinBalance(0)+5_000, view.Balance)

	code, _ = s.get(t, "/auctions/nothere/escrow")
	assert.Equal(t, http.StatusNotFound, code)
}
