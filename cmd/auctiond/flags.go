// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/goldxyz/auctiond/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for ledger databases",
	}
	programFlag = cli.StringFlag{
		Name:  "program",
		Usage: "address the auction program is deployed at (defaults to the well-known devnet address)",
	}
	operatorFlag = cli.StringFlag{
		Name:  "operator",
		Usage: "address the cycle watcher signs close calls with",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8668",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	pollIntervalFlag = cli.Uint64Flag{
		Name:  "poll-interval",
		Value: 10,
		Usage: "seconds between cycle watcher sweeps of the primary pool",
	}
	pprofFlag = cli.BoolFlag{
		Name:  "pprof",
		Usage: "turn on go-pprof",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:  "enable-admin",
		Usage: "enables admin server",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Value: "localhost:2113",
		Usage: "admin service listening address",
	}
	cacheFlag = cli.Uint64Flag{
		Name:  "cache",
		Value: 128,
		Usage: "megabytes of ram allocated to database cache",
	}

	// one-shot call flags
	callerFlag = cli.StringFlag{
		Name:  "caller",
		Usage: "address the call is signed with",
	}
	specFileFlag = cli.StringFlag{
		Name:  "spec",
		Usage: "path to a yaml auction definition",
	}
	auctionIDFlag = cli.StringFlag{
		Name:  "id",
		Usage: "auction name",
	}
	amountFlag = cli.Uint64Flag{
		Name:  "amount",
		Usage: "amount in base units",
	}
	feeBpsFlag = cli.Uint64Flag{
		Name:  "bps",
		Usage: "protocol fee in basis points",
	}
	adminFlag = cli.StringFlag{
		Name:  "admin",
		Usage: "platform admin address",
	}
	withdrawAuthorityFlag = cli.StringFlag{
		Name:  "withdraw-authority",
		Usage: "platform withdraw authority address",
	}
	newAuthorityFlag = cli.StringFlag{
		Name:  "new-authority",
		Usage: "address taking over the withdraw authority",
	}
	filterFlag = cli.BoolFlag{
		Name:  "filter",
		Usage: "set instead of clear the filter flag",
	}
	secondaryPoolFlag = cli.BoolFlag{
		Name:  "secondary",
		Usage: "target the secondary pool instead of the primary",
	}
	poolCapacityFlag = cli.Uint64Flag{
		Name:  "capacity",
		Usage: "new pool capacity",
	}
	cycleLimitFlag = cli.Uint64Flag{
		Name:  "cycle-limit",
		Usage: "cap on cycle records unwound per delete call (0 means the protocol budget)",
	}

	// solo mode only flags
	onDemandFlag = cli.BoolFlag{
		Name:  "on-demand",
		Usage: "close cycles only when a bid is pending instead of on the clock",
	}
	persistFlag = cli.BoolFlag{
		Name:  "persist",
		Usage: "ledger data storage option, if set data will be saved to disk",
	}
	bidderCountFlag = cli.Uint64Flag{
		Name:  "bidders",
		Value: 3,
		Usage: "number of prefunded demo bidders",
	}
)
