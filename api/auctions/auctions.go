// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auctions

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/goldxyz/auctiond/api/utils"
	"github.com/goldxyz/auctiond/engine"
	"github.com/goldxyz/auctiond/engine/reverts"
	"github.com/goldxyz/auctiond/gold"
)

const claimedCycleCacheSize = 512

type Auctions struct {
	eng *engine.Engine
	// claimed past cycles never change again, so their views are cached
	claimedCycles *lru.Cache
}

func New(eng *engine.Engine) *Auctions {
	cache, _ := lru.New(claimedCycleCacheSize)
	return &Auctions{
		eng:           eng,
		claimedCycles: cache,
	}
}

func (a *Auctions) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	var (
		poolParam = req.URL.Query().Get("pool")
		ids       []gold.AuctionID
		err       error
	)
	switch poolParam {
	case "", "primary":
		ids, err = a.eng.PoolIDs(false)
	case "secondary":
		ids, err = a.eng.PoolIDs(true)
	case "all":
		ids, err = a.eng.PoolIDs(false)
		if err == nil {
			var secondary []gold.AuctionID
			secondary, err = a.eng.PoolIDs(true)
			ids = append(ids, secondary...)
		}
	default:
		return utils.BadRequest(fmt.Errorf("pool: invalid value %q", poolParam))
	}
	if err != nil {
		return err
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, id.String())
	}
	return utils.WriteJSON(w, utils.M{"auctions": names})
}

func (a *Auctions) handleGetAuction(w http.ResponseWriter, req *http.Request) error {
	id, err := parseID(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	root, err := a.eng.Auction(id)
	if err != nil {
		if errors.Is(err, reverts.ErrAuctionNotInitialized) {
			return utils.NotFound(errors.New("no such auction"))
		}
		return err
	}
	return utils.WriteJSON(w, convertAuction(root))
}

func (a *Auctions) handleGetCycle(w http.ResponseWriter, req *http.Request) error {
	id, err := parseID(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	number, err := strconv.ParseUint(mux.Vars(req)["number"], 10, 64)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "number"))
	}

	cacheKey := id.String() + "/" + strconv.FormatUint(number, 10)
	if cached, ok := a.claimedCycles.Get(cacheKey); ok {
		// a root lookup still guards against serving cycles of a deleted auction
		if _, err := a.eng.Auction(id); err == nil {
			return utils.WriteJSON(w, cached)
		}
	}

	cs, err := a.eng.Cycle(id, number)
	if err != nil {
		if errors.Is(err, reverts.ErrAuctionNotInitialized) || errors.Is(err, reverts.ErrInvalidSeeds) {
			return utils.NotFound(errors.New("no such cycle"))
		}
		return err
	}
	view := convertCycle(number, cs)
	if number > 0 && view.RewardClaimed {
		a.claimedCycles.Add(cacheKey, view)
	}
	return utils.WriteJSON(w, view)
}

func (a *Auctions) handleGetEscrow(w http.ResponseWriter, req *http.Request) error {
	id, err := parseID(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	if _, err := a.eng.Auction(id); err != nil {
		if errors.Is(err, reverts.ErrAuctionNotInitialized) {
			return utils.NotFound(errors.New("no such auction"))
		}
		return err
	}
	balance, err := a.eng.EscrowBalance(id)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"balance": balance})
}

func parseID(raw string) (gold.AuctionID, error) {
	id, err := gold.NewAuctionID(raw)
	if err != nil {
		return gold.AuctionID{}, err
	}
	return id, nil
}

func (a *Auctions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("auctions_get_pool").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetPool))
	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("auctions_get_auction").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAuction))
	sub.Path("/{id}/cycles/{number}").
		Methods(http.MethodGet).
		Name("auctions_get_cycle").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetCycle))
	sub.Path("/{id}/escrow").
		Methods(http.MethodGet).
		Name("auctions_get_escrow").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetEscrow))
}
