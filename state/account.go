// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/goldxyz/auctiond/gold"
	"github.com/goldxyz/auctiond/kv"
)

// Account is the persisted form of a ledger record: a balance, the program
// that owns the record's data, and the data payload itself.
type Account struct {
	Balance uint64
	Owner   gold.Address
	Data    []byte
}

// IsEmpty returns if the account is regarded as empty.
// Empty accounts are pruned from the store on commit.
func (a *Account) IsEmpty() bool {
	return a.Balance == 0 && a.Owner.IsZero() && len(a.Data) == 0
}

func emptyAccount() *Account {
	return &Account{}
}

// accountKey is the store key of the record at the given address.
func accountKey(addr gold.Address) []byte {
	return append([]byte("a"), addr.Bytes()...)
}

// loadAccount load an account at the given address from the store.
// The empty account is returned if the record does not exist.
func loadAccount(store kv.Getter, addr gold.Address) (*Account, error) {
	data, err := store.Get(accountKey(addr))
	if err != nil {
		if store.IsNotFound(err) {
			return emptyAccount(), nil
		}
		return nil, err
	}
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// saveAccount save the account at the given address, or delete it if empty.
func saveAccount(putter kv.Batch, addr gold.Address, a *Account) error {
	if a.IsEmpty() {
		return putter.Delete(accountKey(addr))
	}
	data, err := rlp.EncodeToBytes(a)
	if err != nil {
		return err
	}
	return putter.Put(accountKey(addr), data)
}
