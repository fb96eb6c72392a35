// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package mint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldxyz/auctiond/engine/reverts"
	"github.com/goldxyz/auctiond/gold"
	"github.com/goldxyz/auctiond/kv"
	"github.com/goldxyz/auctiond/state"
)

func TestEditionURI(t *testing.T) {
	assert.Equal(t, "https://example.com/meta/7.json", EditionURI("https://example.com/meta", 7))
}

func TestSwapEditionInURI(t *testing.T) {
	uri, err := SwapEditionInURI("https://example.com/meta/0.json", 3)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/meta/3.json", uri)

	// back to the base marker
	uri, err = SwapEditionInURI(uri, 0)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/meta/0.json", uri)

	_, err = SwapEditionInURI("https://example.com/meta/0.png", 1)
	assert.ErrorIs(t, err, reverts.ErrMetadataManipulationError)

	_, err = SwapEditionInURI("https://example.com/meta/base.json", 1)
	assert.ErrorIs(t, err, reverts.ErrMetadataManipulationError)

	_, err = SwapEditionInURI("no-slash.json", 1)
	assert.ErrorIs(t, err, reverts.ErrMetadataManipulationError)
}

func newLedger(t *testing.T) *Ledger {
	t.Helper()
	store := kv.NewMem()
	t.Cleanup(func() { store.Close() })
	return NewLedger(gold.BytesToAddress([]byte("minter")), state.New(store))
}

func masterMeta() Metadata {
	return Metadata{Name: "Master", Symbol: "MST", URI: "https://example.com/meta/0.json"}
}

func TestCreateMaster(t *testing.T) {
	l := newLedger(t)
	master := gold.BytesToAddress([]byte("master1"))

	require.NoError(t, l.CreateMaster(master, masterMeta()))

	m, err := l.MasterOf(master)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), m.TopEdition)
	assert.Zero(t, m.Supply)

	assert.ErrorIs(t, l.CreateMaster(master, masterMeta()), reverts.ErrNftAlreadyExists)

	bad := masterMeta()
	bad.URI = "https://example.com/meta.png"
	assert.ErrorIs(t, l.CreateMaster(gold.BytesToAddress([]byte("master2")), bad), reverts.ErrMetadataManipulationError)
}

func TestMintEdition(t *testing.T) {
	l := newLedger(t)
	master := gold.BytesToAddress([]byte("master1"))
	alice := gold.BytesToAddress([]byte("alice"))
	bob := gold.BytesToAddress([]byte("bob"))
	require.NoError(t, l.CreateMaster(master, masterMeta()))

	// an unknown master cannot mint
	err := l.MintEdition(gold.BytesToAddress([]byte("nope")), 1, alice)
	assert.ErrorIs(t, err, reverts.ErrMasterEditionMismatch)

	// editions above the pointed-at counter are rejected
	err = l.MintEdition(master, 2, alice)
	assert.ErrorIs(t, err, reverts.ErrChildEditionNumberMismatch)

	require.NoError(t, l.MintEdition(master, 1, alice))
	owner, ok, err := l.EditionOwner(master, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, alice, owner)

	assert.ErrorIs(t, l.MintEdition(master, 1, bob), reverts.ErrNftAlreadyExists)

	// advancing the descriptor unlocks higher editions
	three := uint64(3)
	require.NoError(t, l.Repoint(master, &three))
	require.NoError(t, l.MintEdition(master, 3, bob))

	m, err := l.MasterOf(master)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), m.Supply)
	assert.Equal(t, uint64(3), m.TopEdition)
}

func TestMintEditionByMintOrder(t *testing.T) {
	l := newLedger(t)
	master := gold.BytesToAddress([]byte("master1"))
	alice := gold.BytesToAddress([]byte("alice"))
	require.NoError(t, l.CreateMaster(master, masterMeta()))

	// edition zero asks for the next by mint order
	require.NoError(t, l.MintEdition(master, 0, alice))
	_, ok, err := l.EditionOwner(master, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMintTokensAccumulates(t *testing.T) {
	l := newLedger(t)
	mintAddr := gold.BytesToAddress([]byte("token"))
	alice := gold.BytesToAddress([]byte("alice"))

	require.NoError(t, l.MintTokens(mintAddr, alice, 100))
	require.NoError(t, l.MintTokens(mintAddr, alice, 50))

	held, err := l.HoldingOf(mintAddr, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), held)

	held, err = l.HoldingOf(mintAddr, gold.BytesToAddress([]byte("bob")))
	require.NoError(t, err)
	assert.Zero(t, held)
}

func TestRepoint(t *testing.T) {
	l := newLedger(t)
	master := gold.BytesToAddress([]byte("master1"))
	require.NoError(t, l.CreateMaster(master, masterMeta()))

	five := uint64(5)
	require.NoError(t, l.Repoint(master, &five))
	m, err := l.MasterOf(master)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/meta/5.json", m.Meta.URI)
	assert.Equal(t, uint64(5), m.TopEdition)

	// nil parks the descriptor on the base marker without lowering the top
	require.NoError(t, l.Repoint(master, nil))
	m, err = l.MasterOf(master)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/meta/0.json", m.Meta.URI)
	assert.Equal(t, uint64(5), m.TopEdition)

	assert.ErrorIs(t, l.Repoint(gold.BytesToAddress([]byte("nope")), nil), reverts.ErrMasterEditionMismatch)
}
