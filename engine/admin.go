// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"github.com/goldxyz/auctiond/engine/bank"
	"github.com/goldxyz/auctiond/engine/pool"
	"github.com/goldxyz/auctiond/engine/reverts"
	"github.com/goldxyz/auctiond/gold"
)

// encoded FeeState is a single short rlp list
const feeStateMaxLen = 16

// SetProtocolFee sets the platform's cut of claimed funds. Only the contract
// admin may set it. The fee record is created lazily on first use, with the
// admin funding its rent.
func (e *Engine) SetProtocolFee(caller gold.Address, args *SetProtocolFeeArgs) error {
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	f := bank.FeeState{FeeBps: args.FeeBps}
	if err := f.Verify(); err != nil {
		return err
	}
	addr := e.ProtocolFeeAddress()
	var existing bank.FeeState
	missing, err := e.decodeRecord(addr, &existing)
	if err != nil {
		return err
	}
	if missing {
		return e.createRecord(addr, caller, feeStateMaxLen, &f)
	}
	if err := e.encodeRecord(addr, &f); err != nil {
		return err
	}
	logger.Info("protocol fee updated", "bps", args.FeeBps)
	return nil
}

// AdminWithdraw pays accumulated platform funds out of the contract bank to
// the withdraw authority. The bank record's rent-exempt minimum cannot be
// withdrawn.
func (e *Engine) AdminWithdraw(caller gold.Address, args *AdminWithdrawArgs) error {
	if err := e.requireWithdrawAuthority(caller); err != nil {
		return err
	}
	if args.Amount == 0 {
		return reverts.ErrInsufficientFunds
	}
	if err := bank.DebitKeepingRent(e.state, e.ContractBankAddress(), args.Amount); err != nil {
		return err
	}
	if err := bank.Credit(e.state, caller, args.Amount); err != nil {
		return err
	}
	logger.Info("platform funds withdrawn", "amount", args.Amount, "to", caller)
	return nil
}

// AdminWithdrawReassign hands the withdraw capability to a new identity.
// Only the current withdraw authority may reassign it.
func (e *Engine) AdminWithdrawReassign(caller gold.Address, args *AdminWithdrawReassignArgs) error {
	b, addr, err := e.loadContractBank()
	if err != nil {
		return err
	}
	if b.WithdrawAuthority != caller {
		return reverts.ErrWithdrawAuthorityMismatch
	}
	if args.NewAuthority.IsZero() {
		return reverts.ErrInvalidSeeds
	}
	b.WithdrawAuthority = args.NewAuthority
	if err := e.encodeRecord(addr, b); err != nil {
		return err
	}
	logger.Info("withdraw authority reassigned", "to", args.NewAuthority)
	return nil
}

// ReallocatePool grows a pool's capacity. Shrinking is not allowed because
// member identifiers would have to be evicted. The contents round-trip
// through a staging record so a failure mid-way never leaves the live pool
// truncated; the admin fronts the staging rent and gets it back at the end.
func (e *Engine) ReallocatePool(caller gold.Address, args *ReallocatePoolArgs) error {
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	p, addr, err := e.loadPool(args.Secondary)
	if err != nil {
		return err
	}
	if args.NewMaxLen < p.MaxLen {
		return reverts.ErrShrinkingPoolIsNotAllowed
	}
	if args.NewMaxLen == p.MaxLen {
		return nil
	}

	staging := pool.Pool{MaxLen: args.NewMaxLen, Ids: p.Ids}
	stagingAddr := e.poolStagingAddress(args.Secondary)
	if err := e.createRecord(stagingAddr, caller, pool.MaxEncodedLen(args.NewMaxLen), &staging); err != nil {
		return err
	}

	// top up the live record's rent to the new allocation before adopting
	// the staged contents
	oldRent := gold.MinBalance(pool.MaxEncodedLen(p.MaxLen))
	newRent := gold.MinBalance(pool.MaxEncodedLen(args.NewMaxLen))
	if newRent > oldRent {
		if err := bank.Transfer(e.state, caller, addr, newRent-oldRent); err != nil {
			return err
		}
	}
	if err := e.storePool(addr, &staging); err != nil {
		return err
	}
	if err := e.deleteRecord(stagingAddr, caller); err != nil {
		return err
	}
	logger.Info("pool reallocated", "secondary", args.Secondary, "capacity", args.NewMaxLen)
	return nil
}

// PoolCleanup drops identifiers whose root record no longer exists from both
// pools. Anyone may run it; deletion already maintains the pools, so this is
// a repair path for state imported from elsewhere.
func (e *Engine) PoolCleanup(_ *PoolCleanupArgs) error {
	for _, secondary := range []bool{false, true} {
		p, addr, err := e.loadPool(secondary)
		if err != nil {
			return err
		}
		kept := p.Ids[:0]
		for _, id := range p.Ids {
			exists, err := e.state.Exists(e.RootStateAddress(id))
			if err != nil {
				return err
			}
			if exists {
				kept = append(kept, id)
			}
		}
		if len(kept) == len(p.Ids) {
			continue
		}
		p.Ids = kept
		if err := e.storePool(addr, p); err != nil {
			return err
		}
	}
	return nil
}
