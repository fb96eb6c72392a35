// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"github.com/goldxyz/auctiond/engine/auction"
	"github.com/goldxyz/auctiond/engine/bank"
	"github.com/goldxyz/auctiond/engine/pool"
	"github.com/goldxyz/auctiond/engine/reverts"
	"github.com/goldxyz/auctiond/gold"
)

// InitializeContract creates the platform-wide singletons: the contract bank
// holding the admin identities, and the two membership pools. The caller
// funds the records' rent.
func (e *Engine) InitializeContract(caller gold.Address, args *InitializeContractArgs) error {
	bankAddr := e.ContractBankAddress()
	exists, err := e.state.Exists(bankAddr)
	if err != nil {
		return err
	}
	if exists {
		return reverts.ErrContractAlreadyInitialized
	}
	if args.Admin.IsZero() || args.WithdrawAuthority.IsZero() {
		return reverts.ErrContractAdminMismatch
	}

	b := bank.BankState{
		Admin:             args.Admin,
		WithdrawAuthority: args.WithdrawAuthority,
	}
	if err := e.createRecord(bankAddr, caller, bank.BankStateMaxLen, &b); err != nil {
		return err
	}

	poolLen := pool.MaxEncodedLen(gold.InitialPoolCapacity)
	for _, secondary := range []bool{false, true} {
		p := pool.New(gold.InitialPoolCapacity)
		if err := e.createRecord(e.PoolAddress(secondary), caller, poolLen, p); err != nil {
			return err
		}
	}

	logger.Info("contract initialized", "admin", args.Admin, "withdrawAuthority", args.WithdrawAuthority)
	return nil
}

// InitializeAuction creates a new recurring auction: the root state record,
// the first cycle's record, the auction's escrow bank, and the primary pool
// membership. Collectible auctions additionally register their master
// edition descriptor with the minting service. The caller becomes the
// auction owner and funds all rents.
func (e *Engine) InitializeAuction(caller gold.Address, now uint64, args *InitializeAuctionArgs) error {
	if !args.Id.IsValid() {
		return reverts.ErrAuctionIdNotAscii
	}
	if err := args.Config.Verify(); err != nil {
		return err
	}
	if err := args.Description.Verify(); err != nil {
		return err
	}
	if err := args.TokenConfig.Verify(); err != nil {
		return err
	}

	rootAddr := e.RootStateAddress(args.Id)
	if err := verifySuppliedAddress(args.RootState, rootAddr); err != nil {
		return err
	}
	exists, err := e.state.Exists(rootAddr)
	if err != nil {
		return err
	}
	if exists {
		return reverts.ErrAuctionAlreadyInitialized
	}

	startTime := args.StartTime
	if startTime == 0 {
		startTime = now
	}
	if startTime < now {
		return reverts.ErrInvalidStartTime
	}
	firstEndTime, ok := gold.CheckedAdd(startTime, args.Config.CyclePeriod)
	if !ok {
		return reverts.ErrArithmetic
	}

	root := auction.RootState{
		AuctionName: args.Id,
		Owner:       caller,
		Description: args.Description,
		Config:      args.Config,
		TokenConfig: args.TokenConfig,
		Status: auction.Status{
			CurrentAuctionCycle: 1,
		},
		StartTime: startTime,
	}
	if err := e.createRecord(rootAddr, caller, auction.RootStateMaxLen, &root); err != nil {
		return err
	}

	cycle := auction.CycleState{EndTime: firstEndTime}
	cycleAddr := e.CycleStateAddress(rootAddr, 1)
	if err := e.createRecord(cycleAddr, caller, auction.CycleStateMaxLen, &cycle); err != nil {
		return err
	}

	// the escrow bank carries no data payload, only balance
	bankAddr := e.BankAddress(args.Id)
	if err := e.state.SetOwner(bankAddr, e.program); err != nil {
		return err
	}
	if err := bank.Transfer(e.state, caller, bankAddr, gold.MinBalance(0)); err != nil {
		return err
	}

	primary, primaryAddr, err := e.loadPool(false)
	if err != nil {
		return err
	}
	if err := primary.Insert(args.Id); err != nil {
		return err
	}
	if err := e.storePool(primaryAddr, primary); err != nil {
		return err
	}

	if nft := args.TokenConfig.Nft; nft != nil {
		if err := e.minter.CreateMaster(nft.MasterEdition, args.Metadata); err != nil {
			return err
		}
	}

	metricAuctionsCreated().Add(1)
	logger.Info("auction initialized", "id", args.Id, "owner", caller, "start", startTime)
	return nil
}
