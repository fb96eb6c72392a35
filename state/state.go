// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/goldxyz/auctiond/gold"
	"github.com/goldxyz/auctiond/kv"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// State manages the ledger records. Reads are cached, writes are buffered in
// a revision journal until Commit, and any range of writes can be reverted to
// a checkpoint. That is what gives every engine invocation its all-or-nothing
// semantics.
type State struct {
	store   kv.Store
	journal *journal
}

// New create a state object backed by the given store.
func New(store kv.Store) *State {
	s := &State{store: store}
	s.journal = newJournal(func(addr gold.Address) (*Account, error) {
		return loadAccount(store, addr)
	})
	return s
}

// getAccount gets account by address. The returned account must not be modified.
func (s *State) getAccount(addr gold.Address) (*Account, error) {
	a, err := s.journal.get(addr)
	if err != nil {
		return nil, &Error{err}
	}
	return a, nil
}

// getAccountCopy get a copy of account by address.
func (s *State) getAccountCopy(addr gold.Address) (Account, error) {
	a, err := s.getAccount(addr)
	if err != nil {
		return Account{}, err
	}
	return *a, nil
}

func (s *State) updateAccount(addr gold.Address, a *Account) {
	s.journal.put(addr, a)
}

// Exists returns whether a non-empty record exists at the given address.
func (s *State) Exists(addr gold.Address) (bool, error) {
	a, err := s.getAccount(addr)
	if err != nil {
		return false, err
	}
	return !a.IsEmpty(), nil
}

// GetBalance returns balance for the given address.
func (s *State) GetBalance(addr gold.Address) (uint64, error) {
	a, err := s.getAccount(addr)
	if err != nil {
		return 0, err
	}
	return a.Balance, nil
}

// SetBalance set balance for the given address.
func (s *State) SetBalance(addr gold.Address, balance uint64) error {
	cpy, err := s.getAccountCopy(addr)
	if err != nil {
		return err
	}
	cpy.Balance = balance
	s.updateAccount(addr, &cpy)
	return nil
}

// GetOwner returns the program owning the record at the given address.
func (s *State) GetOwner(addr gold.Address) (gold.Address, error) {
	a, err := s.getAccount(addr)
	if err != nil {
		return gold.Address{}, err
	}
	return a.Owner, nil
}

// SetOwner set the program owning the record at the given address.
func (s *State) SetOwner(addr, owner gold.Address) error {
	cpy, err := s.getAccountCopy(addr)
	if err != nil {
		return err
	}
	cpy.Owner = owner
	s.updateAccount(addr, &cpy)
	return nil
}

// DataLen returns the length of the record's data payload.
func (s *State) DataLen(addr gold.Address) (int, error) {
	a, err := s.getAccount(addr)
	if err != nil {
		return 0, err
	}
	return len(a.Data), nil
}

// EncodeData set the record's data payload produced by the given enc method.
func (s *State) EncodeData(addr gold.Address, enc func() ([]byte, error)) error {
	data, err := enc()
	if err != nil {
		return &Error{err}
	}
	cpy, err := s.getAccountCopy(addr)
	if err != nil {
		return err
	}
	cpy.Data = data
	s.updateAccount(addr, &cpy)
	return nil
}

// DecodeData get and decode the record's data payload.
// dec is called with a nil slice if the record does not exist.
func (s *State) DecodeData(addr gold.Address, dec func([]byte) error) error {
	a, err := s.getAccount(addr)
	if err != nil {
		return err
	}
	if err := dec(a.Data); err != nil {
		return &Error{err}
	}
	return nil
}

// Delete delete a record at the given address.
// That's set balance and owner to zero and drop the data payload.
func (s *State) Delete(addr gold.Address) {
	s.updateAccount(addr, emptyAccount())
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.journal.push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.journal.popTo(revision)
}

// Commit writes all buffered changes through to the backing store in one
// batch and resets the journal.
func (s *State) Commit() error {
	batch := s.store.NewBatch()
	for addr, a := range s.journal.changes() {
		if err := saveAccount(batch, addr, a); err != nil {
			return &Error{err}
		}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}
	s.journal.reset()
	return nil
}
