// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/goldxyz/auctiond/engine"
	"github.com/goldxyz/auctiond/engine/auction"
	"github.com/goldxyz/auctiond/gold"
	"github.com/goldxyz/auctiond/mint"
)

// auctionDefinition is the yaml form of a new auction, consumed by the
// `auction create` command.
type auctionDefinition struct {
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	Socials        []string `yaml:"socials"`
	GoalTreasury   *uint64  `yaml:"goalTreasury"`
	CyclePeriod    uint64   `yaml:"cyclePeriod"`
	EncorePeriod   uint64   `yaml:"encorePeriod"`
	NumberOfCycles *uint64  `yaml:"numberOfCycles"`
	MinimumBid     uint64   `yaml:"minimumBid"`
	StartTime      uint64   `yaml:"startTime"`
	Reward         struct {
		Kind           string `yaml:"kind"` // nft | token
		MasterEdition  string `yaml:"masterEdition"`
		IsRepeating    bool   `yaml:"isRepeating"`
		Mint           string `yaml:"mint"`
		PerCycleAmount uint64 `yaml:"perCycleAmount"`
		Metadata       struct {
			Name   string `yaml:"name"`
			Symbol string `yaml:"symbol"`
			URI    string `yaml:"uri"`
		} `yaml:"metadata"`
	} `yaml:"reward"`
}

func loadAuctionDefinition(path string) (*auctionDefinition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read auction definition")
	}
	var def auctionDefinition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, errors.Wrap(err, "parse auction definition")
	}
	return &def, nil
}

// toArgs converts the definition into the engine's instruction payload. The
// engine re-verifies everything, this only shapes the data.
func (d *auctionDefinition) toArgs() (*engine.InitializeAuctionArgs, error) {
	id, err := gold.NewAuctionID(d.Name)
	if err != nil {
		return nil, err
	}

	args := engine.InitializeAuctionArgs{
		Id: id,
		Config: auction.Config{
			CyclePeriod:      d.CyclePeriod,
			EncorePeriod:     d.EncorePeriod,
			NumberOfCycles:   d.NumberOfCycles,
			MinimumBidAmount: d.MinimumBid,
		},
		Description: auction.Description{
			Description:        d.Description,
			Socials:            d.Socials,
			GoalTreasuryAmount: d.GoalTreasury,
		},
		StartTime: d.StartTime,
	}

	switch d.Reward.Kind {
	case "nft":
		master, err := gold.ParseAddress(d.Reward.MasterEdition)
		if err != nil {
			return nil, errors.Wrap(err, "parse reward.masterEdition")
		}
		args.TokenConfig.Nft = &auction.NftData{
			MasterEdition: *master,
			IsRepeating:   d.Reward.IsRepeating,
		}
		args.Metadata = mint.Metadata{
			Name:   d.Reward.Metadata.Name,
			Symbol: d.Reward.Metadata.Symbol,
			URI:    d.Reward.Metadata.URI,
		}
	case "token":
		mintAddr, err := gold.ParseAddress(d.Reward.Mint)
		if err != nil {
			return nil, errors.Wrap(err, "parse reward.mint")
		}
		args.TokenConfig.Token = &auction.TokenData{
			Mint:           *mintAddr,
			PerCycleAmount: d.Reward.PerCycleAmount,
		}
	default:
		return nil, errors.Errorf("unknown reward kind %q", d.Reward.Kind)
	}
	return &args, nil
}
