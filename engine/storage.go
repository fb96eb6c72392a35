// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/goldxyz/auctiond/engine/auction"
	"github.com/goldxyz/auctiond/engine/bank"
	"github.com/goldxyz/auctiond/engine/pool"
	"github.com/goldxyz/auctiond/engine/reverts"
	"github.com/goldxyz/auctiond/gold"
)

// verifyRecordOwner ensures a non-empty record at addr belongs to this program.
func (e *Engine) verifyRecordOwner(addr gold.Address) error {
	exists, err := e.state.Exists(addr)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	owner, err := e.state.GetOwner(addr)
	if err != nil {
		return err
	}
	if owner != e.program {
		return reverts.ErrInvalidAccountOwner
	}
	return nil
}

// decodeRecord decodes the record at addr into val, after verifying the
// record is owned by this program. missing is returned when no record exists.
func (e *Engine) decodeRecord(addr gold.Address, val any) (missing bool, err error) {
	if err := e.verifyRecordOwner(addr); err != nil {
		return false, err
	}
	missing = true
	err = e.state.DecodeData(addr, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		missing = false
		return rlp.DecodeBytes(raw, val)
	})
	return
}

// encodeRecord encodes val into the record at addr, marking this program as
// the record's owner.
func (e *Engine) encodeRecord(addr gold.Address, val any) error {
	if err := e.state.EncodeData(addr, func() ([]byte, error) {
		return rlp.EncodeToBytes(val)
	}); err != nil {
		return err
	}
	return e.state.SetOwner(addr, e.program)
}

// createRecord encodes val into a fresh record at addr and funds the
// record's rent-exempt minimum balance, sized by maxLen, from payer.
func (e *Engine) createRecord(addr, payer gold.Address, maxLen int, val any) error {
	if err := e.encodeRecord(addr, val); err != nil {
		return err
	}
	return bank.Transfer(e.state, payer, addr, gold.MinBalance(maxLen))
}

// deleteRecord reclaims the record's balance to beneficiary and deletes it.
func (e *Engine) deleteRecord(addr, beneficiary gold.Address) error {
	balance, err := e.state.GetBalance(addr)
	if err != nil {
		return err
	}
	if balance > 0 {
		if err := bank.Credit(e.state, beneficiary, balance); err != nil {
			return err
		}
	}
	e.state.Delete(addr)
	return nil
}

func (e *Engine) loadRootState(id gold.AuctionID) (*auction.RootState, gold.Address, error) {
	addr := e.RootStateAddress(id)
	var root auction.RootState
	missing, err := e.decodeRecord(addr, &root)
	if err != nil {
		return nil, addr, err
	}
	if missing || root.IsEmpty() {
		return nil, addr, reverts.ErrAuctionNotInitialized
	}
	return &root, addr, nil
}

func (e *Engine) storeRootState(addr gold.Address, root *auction.RootState) error {
	return e.encodeRecord(addr, root)
}

func (e *Engine) loadCycleState(rootAddr gold.Address, cycle uint64) (*auction.CycleState, gold.Address, error) {
	addr := e.CycleStateAddress(rootAddr, cycle)
	var cs auction.CycleState
	missing, err := e.decodeRecord(addr, &cs)
	if err != nil {
		return nil, addr, err
	}
	if missing {
		return nil, addr, errors.Wrap(reverts.ErrInvalidSeeds, "no cycle state record")
	}
	return &cs, addr, nil
}

func (e *Engine) storeCycleState(addr gold.Address, cs *auction.CycleState) error {
	return e.encodeRecord(addr, cs)
}

func (e *Engine) loadPool(secondary bool) (*pool.Pool, gold.Address, error) {
	addr := e.PoolAddress(secondary)
	var p pool.Pool
	missing, err := e.decodeRecord(addr, &p)
	if err != nil {
		return nil, addr, err
	}
	if missing {
		return nil, addr, errors.Wrap(reverts.ErrInvalidSeeds, "no pool record")
	}
	return &p, addr, nil
}

func (e *Engine) storePool(addr gold.Address, p *pool.Pool) error {
	return e.encodeRecord(addr, p)
}

func (e *Engine) loadContractBank() (*bank.BankState, gold.Address, error) {
	addr := e.ContractBankAddress()
	var b bank.BankState
	missing, err := e.decodeRecord(addr, &b)
	if err != nil {
		return nil, addr, err
	}
	if missing || b.IsEmpty() {
		return nil, addr, errors.Wrap(reverts.ErrInvalidSeeds, "no contract bank record")
	}
	return &b, addr, nil
}

// loadProtocolFee returns the configured fee fraction, falling back to the
// default while the fee record does not exist. An existing record is
// authoritative even at zero: a waived fee must not snap back to the default.
func (e *Engine) loadProtocolFee() (uint16, error) {
	var f bank.FeeState
	missing, err := e.decodeRecord(e.ProtocolFeeAddress(), &f)
	if err != nil {
		return 0, err
	}
	if missing {
		return gold.DefaultProtocolFeeBps, nil
	}
	return f.FeeBps, nil
}

// movePoolMembership moves id between the primary and secondary pools.
// Removal from a pool not containing the id is a silent no-op; insertion
// into a pool already containing it keeps the call idempotent.
func (e *Engine) movePoolMembership(id gold.AuctionID, toSecondary bool) error {
	from, fromAddr, err := e.loadPool(!toSecondary)
	if err != nil {
		return err
	}
	to, toAddr, err := e.loadPool(toSecondary)
	if err != nil {
		return err
	}
	from.Remove(id)
	if !to.Contains(id) {
		if err := to.Insert(id); err != nil {
			return err
		}
	}
	if err := e.storePool(fromAddr, from); err != nil {
		return err
	}
	return e.storePool(toAddr, to)
}

// removeFromPools removes id from both pools.
func (e *Engine) removeFromPools(id gold.AuctionID) error {
	for _, secondary := range []bool{false, true} {
		p, addr, err := e.loadPool(secondary)
		if err != nil {
			return err
		}
		p.Remove(id)
		if err := e.storePool(addr, p); err != nil {
			return err
		}
	}
	return nil
}

// verifySuppliedAddress checks a caller-supplied record address against the
// one derived from configuration-known seeds. A zero supplied address means
// the caller left derivation to the engine.
func verifySuppliedAddress(supplied, derived gold.Address) error {
	if !supplied.IsZero() && supplied != derived {
		return reverts.ErrInvalidSeeds
	}
	return nil
}
