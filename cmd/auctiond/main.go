// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/goldxyz/auctiond/api"
	"github.com/goldxyz/auctiond/cmd/auctiond/node"
	"github.com/goldxyz/auctiond/cmd/auctiond/solo"
	"github.com/goldxyz/auctiond/engine"
	"github.com/goldxyz/auctiond/gold"
	"github.com/goldxyz/auctiond/health"
	"github.com/goldxyz/auctiond/kv"
	"github.com/goldxyz/auctiond/log"
	"github.com/goldxyz/auctiond/metrics"
	"github.com/goldxyz/auctiond/mint"
	"github.com/goldxyz/auctiond/state"
)

const appName = "Auctiond"

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      appName,
		Usage:     "Recurring auction engine of the Gold platform",
		Copyright: "2025 The Gold developers",
		Flags: []cli.Flag{
			dataDirFlag,
			programFlag,
			operatorFlag,
			apiAddrFlag,
			apiCorsFlag,
			enableAPILogsFlag,
			verbosityFlag,
			jsonLogsFlag,
			pollIntervalFlag,
			pprofFlag,
			enableMetricsFlag,
			enableAdminFlag,
			adminAddrFlag,
			cacheFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "solo",
				Usage: "client for test & dev against a self-contained ledger",
				Flags: []cli.Flag{
					dataDirFlag,
					programFlag,
					apiAddrFlag,
					apiCorsFlag,
					enableAPILogsFlag,
					verbosityFlag,
					jsonLogsFlag,
					pollIntervalFlag,
					pprofFlag,
					enableMetricsFlag,
					enableAdminFlag,
					adminAddrFlag,
					onDemandFlag,
					persistFlag,
					bidderCountFlag,
				},
				Action: soloAction,
			},
			{
				Name:  "auction",
				Usage: "owner operations on one auction",
				Subcommands: []cli.Command{
					{
						Name:   "create",
						Usage:  "create an auction from a yaml definition",
						Flags:  []cli.Flag{dataDirFlag, programFlag, verbosityFlag, callerFlag, specFileFlag},
						Action: createAuctionAction,
					},
					{
						Name:   "delete",
						Usage:  "delete an auction, unwinding its cycle records",
						Flags:  []cli.Flag{dataDirFlag, programFlag, verbosityFlag, callerFlag, auctionIDFlag, cycleLimitFlag},
						Action: deleteAuctionAction,
					},
					{
						Name:   "freeze",
						Usage:  "freeze an auction, refunding its live top bid",
						Flags:  []cli.Flag{dataDirFlag, programFlag, verbosityFlag, callerFlag, auctionIDFlag},
						Action: freezeAuctionAction,
					},
				},
			},
			{
				Name:  "admin",
				Usage: "platform admin operations",
				Subcommands: []cli.Command{
					{
						Name:   "init",
						Usage:  "create the platform singletons",
						Flags:  []cli.Flag{dataDirFlag, programFlag, verbosityFlag, callerFlag, adminFlag, withdrawAuthorityFlag},
						Action: initContractAction,
					},
					{
						Name:   "set-fee",
						Usage:  "set the protocol fee",
						Flags:  []cli.Flag{dataDirFlag, programFlag, verbosityFlag, callerFlag, feeBpsFlag},
						Action: setFeeAction,
					},
					{
						Name:   "thaw",
						Usage:  "thaw a frozen auction",
						Flags:  []cli.Flag{dataDirFlag, programFlag, verbosityFlag, callerFlag, auctionIDFlag},
						Action: thawAuctionAction,
					},
					{
						Name:   "filter",
						Usage:  "set or clear an auction's filter flag",
						Flags:  []cli.Flag{dataDirFlag, programFlag, verbosityFlag, callerFlag, auctionIDFlag, filterFlag},
						Action: filterAuctionAction,
					},
					{
						Name:   "verify",
						Usage:  "mark an auction as verified",
						Flags:  []cli.Flag{dataDirFlag, programFlag, verbosityFlag, callerFlag, auctionIDFlag},
						Action: verifyAuctionAction,
					},
					{
						Name:   "withdraw",
						Usage:  "withdraw accumulated protocol fees",
						Flags:  []cli.Flag{dataDirFlag, programFlag, verbosityFlag, callerFlag, amountFlag},
						Action: adminWithdrawAction,
					},
					{
						Name:   "reassign",
						Usage:  "hand the withdraw authority to another address",
						Flags:  []cli.Flag{dataDirFlag, programFlag, verbosityFlag, callerFlag, newAuthorityFlag},
						Action: adminReassignAction,
					},
					{
						Name:   "reallocate-pool",
						Usage:  "grow a membership pool's capacity",
						Flags:  []cli.Flag{dataDirFlag, programFlag, verbosityFlag, callerFlag, secondaryPoolFlag, poolCapacityFlag},
						Action: reallocatePoolAction,
					},
					{
						Name:   "cleanup-pools",
						Usage:  "drop dangling ids from the membership pools",
						Flags:  []cli.Flag{dataDirFlag, programFlag, verbosityFlag, callerFlag},
						Action: poolCleanupAction,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { log.Info("exited") }()

	logLevel := initLogger(ctx)
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	program := selectProgram(ctx)
	instanceDir := makeInstanceDir(ctx, program)
	operator := loadOperator(ctx, instanceDir)

	mainDB := openMainDB(ctx, instanceDir)
	defer func() { log.Info("closing main database..."); mainDB.Close() }()

	st := state.New(mainDB)
	eng := engine.New(program, st, mint.NewLedger(program, st))

	pollInterval := time.Duration(ctx.Uint64(pollIntervalFlag.Name)) * time.Second
	healthStatus := health.New(3 * pollInterval)
	healthStatus.BootstrapStatus(true)

	apiHandler := api.New(eng, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})
	apiURL, srvCloser, err := startAPIServer(ctx.String(apiAddrFlag.Name), apiHandler)
	if err != nil {
		fatal(err)
	}
	defer func() { log.Info("stopping API server..."); srvCloser() }()

	if ctx.Bool(enableAdminFlag.Name) {
		adminURL, closeFunc, err := api.StartAdminServer(ctx.String(adminAddrFlag.Name), logLevel, healthStatus)
		if err != nil {
			fatal(err)
		}
		log.Info("admin server started", "url", adminURL)
		defer func() { log.Info("stopping admin server..."); closeFunc() }()
	}

	printStartupMessage(program, operator, instanceDir, apiURL)

	return node.New(eng, operator, pollInterval, healthStatus).
		Run(handleExitSignal())
}

func soloAction(ctx *cli.Context) error {
	defer func() { log.Info("exited") }()

	logLevel := initLogger(ctx)
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	program := selectProgram(ctx)

	var mainDB *kv.LevelDB
	var instanceDir string
	if ctx.Bool(persistFlag.Name) {
		instanceDir = makeInstanceDir(ctx, program)
		mainDB = openMainDB(ctx, instanceDir)
	} else {
		instanceDir = "Memory"
		mainDB = kv.NewMem()
	}
	defer func() { log.Info("closing main database..."); mainDB.Close() }()

	st := state.New(mainDB)
	eng := engine.New(program, st, mint.NewLedger(program, st))
	operator := gold.DeriveAddress(program, []byte("solo_operator"))

	pollInterval := time.Duration(ctx.Uint64(pollIntervalFlag.Name)) * time.Second
	healthStatus := health.New(3 * pollInterval)

	soloContext := solo.New(eng, st, operator, healthStatus, solo.Options{
		OnDemand: ctx.Bool(onDemandFlag.Name),
		Interval: pollInterval,
		Bidders:  int(ctx.Uint64(bidderCountFlag.Name)),
	})
	if err := soloContext.Bootstrap(); err != nil {
		fatal(err)
	}

	apiHandler := api.New(eng, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		SoloMode:        true,
	})
	apiURL, srvCloser, err := startAPIServer(ctx.String(apiAddrFlag.Name), apiHandler)
	if err != nil {
		fatal(err)
	}
	defer func() { log.Info("stopping API server..."); srvCloser() }()

	if ctx.Bool(enableAdminFlag.Name) {
		adminURL, closeFunc, err := api.StartAdminServer(ctx.String(adminAddrFlag.Name), logLevel, healthStatus)
		if err != nil {
			fatal(err)
		}
		log.Info("admin server started", "url", adminURL)
		defer func() { log.Info("stopping admin server..."); closeFunc() }()
	}

	printStartupMessage(program, operator, instanceDir, apiURL)

	return soloContext.Run(handleExitSignal())
}
