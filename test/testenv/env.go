// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testenv assembles an engine against an in-memory ledger, with
// helpers to fund identities and run calls, for tests across packages.
package testenv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goldxyz/auctiond/engine"
	"github.com/goldxyz/auctiond/gold"
	"github.com/goldxyz/auctiond/kv"
	"github.com/goldxyz/auctiond/mint"
	"github.com/goldxyz/auctiond/state"
)

// InitialBalance every funded identity starts with.
const InitialBalance uint64 = 1_000_000_000_000

// Env is one self-contained engine instance.
type Env struct {
	Program gold.Address
	State   *state.State
	Engine  *engine.Engine
	Minter  *mint.Ledger
}

// New create an engine over a fresh in-memory store.
func New(t *testing.T) *Env {
	t.Helper()
	store := kv.NewMem()
	t.Cleanup(func() { store.Close() })

	st := state.New(store)
	program := gold.BytesToAddress([]byte("test-program"))
	minter := mint.NewLedger(program, st)
	return &Env{
		Program: program,
		State:   st,
		Engine:  engine.New(program, st, minter),
		Minter:  minter,
	}
}

// Fund credits the identity with the standard test balance.
func (e *Env) Fund(t *testing.T, addrs ...gold.Address) {
	t.Helper()
	for _, addr := range addrs {
		require.NoError(t, e.State.SetBalance(addr, InitialBalance))
	}
}

// Execute runs one signed call at the given time.
func (e *Env) Execute(caller gold.Address, now uint64, args engine.Instruction) error {
	return e.Engine.Execute(&engine.Call{Caller: caller, Signed: true, Now: now, Args: args})
}

// MustExecute runs one signed call and requires success.
func (e *Env) MustExecute(t *testing.T, caller gold.Address, now uint64, args engine.Instruction) {
	t.Helper()
	require.NoError(t, e.Execute(caller, now, args))
}
