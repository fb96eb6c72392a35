// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bank

import (
	"github.com/goldxyz/auctiond/engine/reverts"
	"github.com/goldxyz/auctiond/gold"
	"github.com/goldxyz/auctiond/state"
)

// Balances are only ever mutated through the checked primitives below, never
// by direct arithmetic, so a bug in one handler cannot silently corrupt
// another record's balance invariant.

// Credit adds amount to the balance of the record at addr.
func Credit(st *state.State, addr gold.Address, amount uint64) error {
	balance, err := st.GetBalance(addr)
	if err != nil {
		return err
	}
	sum, ok := gold.CheckedAdd(balance, amount)
	if !ok {
		return reverts.ErrArithmetic
	}
	return st.SetBalance(addr, sum)
}

// Debit removes amount from the balance of the record at addr.
func Debit(st *state.State, addr gold.Address, amount uint64) error {
	balance, err := st.GetBalance(addr)
	if err != nil {
		return err
	}
	diff, ok := gold.CheckedSub(balance, amount)
	if !ok {
		return reverts.ErrInsufficientFunds
	}
	return st.SetBalance(addr, diff)
}

// Transfer moves amount between two record balances, debit first.
func Transfer(st *state.State, from, to gold.Address, amount uint64) error {
	if err := Debit(st, from, amount); err != nil {
		return err
	}
	return Credit(st, to, amount)
}

// DebitKeepingRent debits amount while keeping the record's rent-exempt
// minimum balance untouched.
func DebitKeepingRent(st *state.State, addr gold.Address, amount uint64) error {
	balance, err := st.GetBalance(addr)
	if err != nil {
		return err
	}
	dataLen, err := st.DataLen(addr)
	if err != nil {
		return err
	}
	diff, ok := gold.CheckedSub(balance, amount)
	if !ok {
		return reverts.ErrInsufficientFunds
	}
	if diff < gold.MinBalance(dataLen) {
		return reverts.ErrWithdrawBelowRentExemption
	}
	return st.SetBalance(addr, diff)
}

// BankStateMaxLen bounds the encoded size of the bank singleton record.
const BankStateMaxLen = 80

// BankState is the platform-wide singleton holding the two admin
// capabilities. The admin controls auction moderation and pool sizing, the
// withdraw authority controls accumulated platform funds.
type BankState struct {
	Admin             gold.Address
	WithdrawAuthority gold.Address
}

// IsEmpty returns whether the record can be treated as empty.
func (b *BankState) IsEmpty() bool {
	return b.Admin.IsZero() && b.WithdrawAuthority.IsZero()
}
