// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package platform_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldxyz/auctiond/api/platform"
	"github.com/goldxyz/auctiond/engine"
	"github.com/goldxyz/auctiond/engine/bank"
	"github.com/goldxyz/auctiond/gold"
	"github.com/goldxyz/auctiond/test/datagen"
	"github.com/goldxyz/auctiond/test/testenv"
)

func newServer(t *testing.T, env *testenv.Env) *httptest.Server {
	router := mux.NewRouter()
	platform.New(env.Engine).Mount(router, "/platform")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func TestGetSummaryUninitialized(t *testing.T) {
	env := testenv.New(t)
	ts := newServer(t, env)

	res, err := http.Get(ts.URL + "/platform")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestGetSummary(t *testing.T) {
	env := testenv.New(t)
	admin := datagen.RandAddress()
	authority := datagen.RandAddress()
	env.Fund(t, admin)
	env.MustExecute(t, admin, 1_700_000_000, &engine.InitializeContractArgs{
		Admin:             admin,
		WithdrawAuthority: authority,
	})
	ts := newServer(t, env)

	res, err := http.Get(ts.URL + "/platform")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var summary platform.Summary
	require.NoError(t, json.Unmarshal(body, &summary))

	assert.Equal(t, admin, summary.Admin)
	assert.Equal(t, authority, summary.WithdrawAuthority)
	assert.Equal(t, gold.DefaultProtocolFeeBps, summary.FeeBps)
	assert.Equal(t, gold.MinBalance(bank.BankStateMaxLen), summary.Balance)
}
