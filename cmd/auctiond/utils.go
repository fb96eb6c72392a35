// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/goldxyz/auctiond/co"
	"github.com/goldxyz/auctiond/gold"
	"github.com/goldxyz/auctiond/kv"
	"github.com/goldxyz/auctiond/log"
)

func fatal(args ...interface{}) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		} else {
			w = io.MultiWriter(os.Stdout, os.Stderr)
		}
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

func fatalf(format string, args ...interface{}) {
	fatal(fmt.Sprintf(format, args...))
}

func initLogger(ctx *cli.Context) *slog.LevelVar {
	logLevel := ctx.Int(verbosityFlag.Name)
	lvl := log.FromLegacyLevel(logLevel)

	var level slog.LevelVar
	level.Set(lvl)

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stdout, &level)
	} else {
		useColor := isatty.IsTerminal(os.Stderr.Fd()) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, &level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))

	return &level
}

// copy from go-ethereum
func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "xyz.gold.auctiond")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "xyz.gold.auctiond")
		} else {
			return filepath.Join(home, ".xyz.gold.auctiond")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// makeInstanceDir keys the instance by program address, so ledgers of
// different deployments never mix.
func makeInstanceDir(ctx *cli.Context, program gold.Address) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatalf("unable to infer default data dir, use -%s to specify one", dataDirFlag.Name)
	}

	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", program.Bytes()[28:]))
	if err := os.MkdirAll(instanceDir, 0700); err != nil {
		fatalf("create instance dir [%v]: %v", instanceDir, err)
	}
	return instanceDir
}

func openMainDB(ctx *cli.Context, instanceDir string) *kv.LevelDB {
	cacheMB := int(ctx.Uint64(cacheFlag.Name))
	dir := filepath.Join(instanceDir, "main.db")
	db, err := kv.New(dir, kv.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: 256,
	})
	if err != nil {
		fatalf("open main database [%v]: %v", dir, err)
	}
	return db
}

// selectProgram resolves the program address: the flag if given, the
// well-known devnet address otherwise.
func selectProgram(ctx *cli.Context) gold.Address {
	if s := ctx.String(programFlag.Name); s != "" {
		addr, err := gold.ParseAddress(s)
		if err != nil {
			fatalf("parse -%s: %v", programFlag.Name, err)
		}
		return *addr
	}
	return gold.BytesToAddress([]byte("auctiond-devnet-program"))
}

// loadOperator resolves the watcher identity: the flag if given, otherwise a
// generated address persisted beside the database so restarts keep it.
func loadOperator(ctx *cli.Context, instanceDir string) gold.Address {
	if s := ctx.String(operatorFlag.Name); s != "" {
		addr, err := gold.ParseAddress(s)
		if err != nil {
			fatalf("parse -%s: %v", operatorFlag.Name, err)
		}
		return *addr
	}

	idFile := filepath.Join(instanceDir, "operator.id")
	if raw, err := os.ReadFile(idFile); err == nil {
		addr, err := gold.ParseAddress(strings.TrimSpace(string(raw)))
		if err != nil {
			fatalf("parse operator identity [%v]: %v", idFile, err)
		}
		return *addr
	} else if !os.IsNotExist(err) {
		fatalf("read operator identity [%v]: %v", idFile, err)
	}

	var addr gold.Address
	if _, err := rand.Read(addr[:]); err != nil {
		fatalf("generate operator identity: %v", err)
	}
	if err := os.WriteFile(idFile, []byte(hex.EncodeToString(addr[:])+"\n"), 0600); err != nil {
		fatalf("write operator identity [%v]: %v", idFile, err)
	}
	return addr
}

func parseAddressFlag(ctx *cli.Context, flag cli.StringFlag) (gold.Address, error) {
	s := ctx.String(flag.Name)
	if s == "" {
		return gold.Address{}, errors.Errorf("-%s is required", flag.Name)
	}
	addr, err := gold.ParseAddress(s)
	if err != nil {
		return gold.Address{}, errors.Wrapf(err, "parse -%s", flag.Name)
	}
	return *addr, nil
}

func parseAuctionIDFlag(ctx *cli.Context) (gold.AuctionID, error) {
	s := ctx.String(auctionIDFlag.Name)
	if s == "" {
		return gold.AuctionID{}, errors.Errorf("-%s is required", auctionIDFlag.Name)
	}
	return gold.NewAuctionID(s)
}

func startAPIServer(addr string, handler http.HandlerFunc) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Close()
		goes.Wait()
	}, nil
}

func handleExitSignal() context.Context {
	exitSignalCh := make(chan os.Signal, 1)
	signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := <-exitSignalCh
		log.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func printStartupMessage(program, operator gold.Address, instanceDir, apiURL string) {
	fmt.Printf(`Starting %v
    Program     [ %v ]
    Operator    [ %v ]
    Instance    [ %v ]
    API portal  [ %v ]
`,
		appName,
		program,
		operator,
		instanceDir,
		apiURL,
	)
}
