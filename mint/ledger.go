// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package mint

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/goldxyz/auctiond/engine/reverts"
	"github.com/goldxyz/auctiond/gold"
	"github.com/goldxyz/auctiond/state"
)

var (
	seedEdition = []byte("edition")
	seedHolding = []byte("holding")
)

// Ledger is a Minter keeping masters, editions and holdings as records in
// the same keyed store the engine uses. It backs tests and solo mode; in
// production the same interface fronts the platform's metadata program.
type Ledger struct {
	program gold.Address
	state   *state.State
}

// NewLedger create a ledger-backed minter owned by the given program address.
func NewLedger(program gold.Address, st *state.State) *Ledger {
	return &Ledger{program: program, state: st}
}

var _ Minter = (*Ledger)(nil)

// Master is the persisted master edition descriptor.
type Master struct {
	Meta       Metadata
	Supply     uint64 // child editions minted so far
	TopEdition uint64 // highest edition number the descriptor was pointed at
}

// IsEmpty returns whether the record can be treated as empty.
func (m *Master) IsEmpty() bool {
	return m.Meta.Name == "" && m.Meta.URI == "" && m.Supply == 0
}

// Holding is a recipient's balance of editions or fungible tokens of one mint.
type Holding struct {
	Amount uint64
}

func (l *Ledger) editionAddress(master gold.Address, edition uint64) gold.Address {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], edition)
	return gold.DeriveAddress(l.program, seedEdition, master.Bytes(), b[:])
}

func (l *Ledger) holdingAddress(mintAddr, owner gold.Address) gold.Address {
	return gold.DeriveAddress(l.program, seedHolding, mintAddr.Bytes(), owner.Bytes())
}

func (l *Ledger) getMaster(master gold.Address) (*Master, error) {
	var m Master
	if err := l.state.DecodeData(master, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &m)
	}); err != nil {
		return nil, err
	}
	return &m, nil
}

func (l *Ledger) setMaster(master gold.Address, m *Master) error {
	if err := l.state.EncodeData(master, func() ([]byte, error) {
		return rlp.EncodeToBytes(m)
	}); err != nil {
		return err
	}
	return l.state.SetOwner(master, l.program)
}

// CreateMaster implements Minter.
func (l *Ledger) CreateMaster(master gold.Address, meta Metadata) error {
	existing, err := l.getMaster(master)
	if err != nil {
		return err
	}
	if !existing.IsEmpty() {
		return reverts.ErrNftAlreadyExists
	}
	if _, err := SwapEditionInURI(meta.URI, 1); err != nil {
		return err
	}
	return l.setMaster(master, &Master{Meta: meta, TopEdition: 1})
}

// MintEdition implements Minter.
// Edition zero requests the next edition by mint order; a concrete edition
// number must not exceed the counter the descriptor was last pointed at.
func (l *Ledger) MintEdition(master gold.Address, edition uint64, to gold.Address) error {
	m, err := l.getMaster(master)
	if err != nil {
		return err
	}
	if m.IsEmpty() {
		return reverts.ErrMasterEditionMismatch
	}
	if edition == 0 {
		edition = m.Supply + 1
	} else if edition > m.TopEdition {
		return reverts.ErrChildEditionNumberMismatch
	}
	editionAddr := l.editionAddress(master, edition)
	exists, err := l.state.Exists(editionAddr)
	if err != nil {
		return err
	}
	if exists {
		return reverts.ErrNftAlreadyExists
	}
	if err := l.state.EncodeData(editionAddr, func() ([]byte, error) {
		return rlp.EncodeToBytes(&Holding{Amount: 1})
	}); err != nil {
		return err
	}
	if err := l.state.SetOwner(editionAddr, to); err != nil {
		return err
	}
	m.Supply++
	return l.setMaster(master, m)
}

// MintTokens implements Minter.
func (l *Ledger) MintTokens(mintAddr gold.Address, to gold.Address, amount uint64) error {
	holdingAddr := l.holdingAddress(mintAddr, to)
	var h Holding
	if err := l.state.DecodeData(holdingAddr, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &h)
	}); err != nil {
		return err
	}
	sum, ok := gold.CheckedAdd(h.Amount, amount)
	if !ok {
		return reverts.ErrArithmetic
	}
	h.Amount = sum
	if err := l.state.EncodeData(holdingAddr, func() ([]byte, error) {
		return rlp.EncodeToBytes(&h)
	}); err != nil {
		return err
	}
	return l.state.SetOwner(holdingAddr, to)
}

// Repoint implements Minter.
func (l *Ledger) Repoint(master gold.Address, next *uint64) error {
	m, err := l.getMaster(master)
	if err != nil {
		return err
	}
	if m.IsEmpty() {
		return reverts.ErrMasterEditionMismatch
	}
	target := uint64(0) // base marker
	if next != nil {
		target = *next
		if target > m.TopEdition {
			m.TopEdition = target
		}
	}
	uri, err := SwapEditionInURI(m.Meta.URI, target)
	if err != nil {
		return err
	}
	m.Meta.URI = uri
	return l.setMaster(master, m)
}

// HoldingOf returns the recorded holding of owner for the given mint.
func (l *Ledger) HoldingOf(mintAddr, owner gold.Address) (uint64, error) {
	var h Holding
	err := l.state.DecodeData(l.holdingAddress(mintAddr, owner), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &h)
	})
	return h.Amount, err
}

// MasterOf returns the master descriptor at the given address.
func (l *Ledger) MasterOf(master gold.Address) (*Master, error) {
	return l.getMaster(master)
}

// EditionOwner returns whether the numbered edition exists and who holds it.
func (l *Ledger) EditionOwner(master gold.Address, edition uint64) (gold.Address, bool, error) {
	addr := l.editionAddress(master, edition)
	exists, err := l.state.Exists(addr)
	if err != nil || !exists {
		return gold.Address{}, false, err
	}
	owner, err := l.state.GetOwner(addr)
	return owner, err == nil, err
}
