// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/goldxyz/auctiond/api/admin/loglevel"
	"github.com/goldxyz/auctiond/health"

	healthAPI "github.com/goldxyz/auctiond/api/admin/health"
)

// New assembles the admin-only endpoints, served on a separate listener from
// the public API.
func New(logLevel *slog.LevelVar, healthStatus *health.Health) http.HandlerFunc {
	router := mux.NewRouter()
	router.PathPrefix("/admin")

	loglevel.New(logLevel).Mount(router, "/admin/loglevel")
	healthAPI.New(healthStatus).Mount(router, "/health")

	handler := handlers.CompressHandler(router)

	return handler.ServeHTTP
}
