// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/goldxyz/auctiond/engine"
	"github.com/goldxyz/auctiond/gold"
	"github.com/goldxyz/auctiond/mint"
	"github.com/goldxyz/auctiond/state"
)

// withEngine opens the instance ledger, runs fn against a fresh engine and
// commits on success. One-shot commands are exactly one atomic invocation.
func withEngine(ctx *cli.Context, fn func(eng *engine.Engine, caller gold.Address) error) error {
	initLogger(ctx)

	caller, err := parseAddressFlag(ctx, callerFlag)
	if err != nil {
		return err
	}

	program := selectProgram(ctx)
	instanceDir := makeInstanceDir(ctx, program)
	mainDB := openMainDB(ctx, instanceDir)
	defer mainDB.Close()

	st := state.New(mainDB)
	eng := engine.New(program, st, mint.NewLedger(program, st))
	if err := fn(eng, caller); err != nil {
		return err
	}
	return st.Commit()
}

// execute signs and runs one instruction with the host clock.
func execute(eng *engine.Engine, caller gold.Address, args engine.Instruction) error {
	return eng.Execute(&engine.Call{
		Caller: caller,
		Signed: true,
		Now:    uint64(time.Now().Unix()),
		Args:   args,
	})
}

func createAuctionAction(ctx *cli.Context) error {
	specFile := ctx.String(specFileFlag.Name)
	if specFile == "" {
		return fmt.Errorf("-%s is required", specFileFlag.Name)
	}
	def, err := loadAuctionDefinition(specFile)
	if err != nil {
		return err
	}
	args, err := def.toArgs()
	if err != nil {
		return err
	}
	return withEngine(ctx, func(eng *engine.Engine, caller gold.Address) error {
		if err := execute(eng, caller, args); err != nil {
			return err
		}
		fmt.Printf("auction %v created, root record at %v\n", args.Id, eng.RootStateAddress(args.Id))
		return nil
	})
}

// deleteAuctionAction drives the resumable deletion protocol to completion,
// committing after each bounded call.
func deleteAuctionAction(ctx *cli.Context) error {
	id, err := parseAuctionIDFlag(ctx)
	if err != nil {
		return err
	}
	limit := ctx.Uint64(cycleLimitFlag.Name)

	return withEngine(ctx, func(eng *engine.Engine, caller gold.Address) error {
		calls := 0
		for {
			if err := execute(eng, caller, &engine.DeleteAuctionArgs{Id: id, CycleLimit: limit}); err != nil {
				return err
			}
			if err := eng.State().Commit(); err != nil {
				return err
			}
			calls++
			exists, err := eng.State().Exists(eng.RootStateAddress(id))
			if err != nil {
				return err
			}
			if !exists {
				fmt.Printf("auction %v deleted in %d call(s)\n", id, calls)
				return nil
			}
		}
	})
}

func freezeAuctionAction(ctx *cli.Context) error {
	id, err := parseAuctionIDFlag(ctx)
	if err != nil {
		return err
	}
	return withEngine(ctx, func(eng *engine.Engine, caller gold.Address) error {
		return execute(eng, caller, &engine.FreezeArgs{Id: id})
	})
}

func initContractAction(ctx *cli.Context) error {
	admin, err := parseAddressFlag(ctx, adminFlag)
	if err != nil {
		return err
	}
	authority, err := parseAddressFlag(ctx, withdrawAuthorityFlag)
	if err != nil {
		return err
	}
	return withEngine(ctx, func(eng *engine.Engine, caller gold.Address) error {
		args := engine.InitializeContractArgs{Admin: admin, WithdrawAuthority: authority}
		if err := execute(eng, caller, &args); err != nil {
			return err
		}
		fmt.Printf("contract initialized, bank record at %v\n", eng.ContractBankAddress())
		return nil
	})
}

func setFeeAction(ctx *cli.Context) error {
	bps := ctx.Uint64(feeBpsFlag.Name)
	if bps > uint64(gold.MaxProtocolFeeBps) {
		return fmt.Errorf("-%s exceeds the %d bps ceiling", feeBpsFlag.Name, gold.MaxProtocolFeeBps)
	}
	return withEngine(ctx, func(eng *engine.Engine, caller gold.Address) error {
		return execute(eng, caller, &engine.SetProtocolFeeArgs{FeeBps: uint16(bps)})
	})
}

func thawAuctionAction(ctx *cli.Context) error {
	id, err := parseAuctionIDFlag(ctx)
	if err != nil {
		return err
	}
	return withEngine(ctx, func(eng *engine.Engine, caller gold.Address) error {
		return execute(eng, caller, &engine.ThawArgs{Id: id})
	})
}

func filterAuctionAction(ctx *cli.Context) error {
	id, err := parseAuctionIDFlag(ctx)
	if err != nil {
		return err
	}
	return withEngine(ctx, func(eng *engine.Engine, caller gold.Address) error {
		return execute(eng, caller, &engine.FilterAuctionArgs{Id: id, Filter: ctx.Bool(filterFlag.Name)})
	})
}

func verifyAuctionAction(ctx *cli.Context) error {
	id, err := parseAuctionIDFlag(ctx)
	if err != nil {
		return err
	}
	return withEngine(ctx, func(eng *engine.Engine, caller gold.Address) error {
		return execute(eng, caller, &engine.VerifyAuctionArgs{Id: id})
	})
}

func adminWithdrawAction(ctx *cli.Context) error {
	return withEngine(ctx, func(eng *engine.Engine, caller gold.Address) error {
		return execute(eng, caller, &engine.AdminWithdrawArgs{Amount: ctx.Uint64(amountFlag.Name)})
	})
}

func adminReassignAction(ctx *cli.Context) error {
	authority, err := parseAddressFlag(ctx, newAuthorityFlag)
	if err != nil {
		return err
	}
	return withEngine(ctx, func(eng *engine.Engine, caller gold.Address) error {
		return execute(eng, caller, &engine.AdminWithdrawReassignArgs{NewAuthority: authority})
	})
}

func reallocatePoolAction(ctx *cli.Context) error {
	return withEngine(ctx, func(eng *engine.Engine, caller gold.Address) error {
		return execute(eng, caller, &engine.ReallocatePoolArgs{
			Secondary: ctx.Bool(secondaryPoolFlag.Name),
			NewMaxLen: uint32(ctx.Uint64(poolCapacityFlag.Name)),
		})
	})
}

func poolCleanupAction(ctx *cli.Context) error {
	return withEngine(ctx, func(eng *engine.Engine, caller gold.Address) error {
		return execute(eng, caller, &engine.PoolCleanupArgs{})
	})
}
