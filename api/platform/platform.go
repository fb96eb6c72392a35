// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package platform

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/goldxyz/auctiond/api/utils"
	"github.com/goldxyz/auctiond/engine"
	"github.com/goldxyz/auctiond/engine/reverts"
	"github.com/goldxyz/auctiond/gold"
)

type Platform struct {
	eng *engine.Engine
}

func New(eng *engine.Engine) *Platform {
	return &Platform{eng: eng}
}

// Summary is the JSON view of the platform singletons.
type Summary struct {
	Admin             gold.Address `json:"admin"`
	WithdrawAuthority gold.Address `json:"withdrawAuthority"`
	FeeBps            uint16       `json:"feeBps"`
	Balance           uint64       `json:"balance"`
}

func (p *Platform) handleGetSummary(w http.ResponseWriter, req *http.Request) error {
	b, err := p.eng.ContractBank()
	if err != nil {
		if errors.Is(err, reverts.ErrInvalidSeeds) {
			return utils.NotFound(errors.New("contract not initialized"))
		}
		return err
	}
	feeBps, err := p.eng.ProtocolFee()
	if err != nil {
		return err
	}
	balance, err := p.eng.PlatformBalance()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Summary{
		Admin:             b.Admin,
		WithdrawAuthority: b.WithdrawAuthority,
		FeeBps:            feeBps,
		Balance:           balance,
	})
}

func (p *Platform) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("platform_get_summary").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetSummary))
}
