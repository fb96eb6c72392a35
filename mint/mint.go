// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package mint is the boundary to the external minting and metadata service.
// The engine invokes it synchronously within the same atomic call: a failure
// aborts the whole call, a success is final and has no compensating action.
package mint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goldxyz/auctiond/engine/reverts"
	"github.com/goldxyz/auctiond/gold"
)

// Metadata describes a collectible master edition. The URI's final path
// segment embeds the edition counter ("<prefix>/<n>.json"); 0 is the base
// marker showing the collection-level descriptor.
type Metadata struct {
	Name   string
	Symbol string
	URI    string
}

// Minter mints cycle rewards and maintains master edition descriptors.
type Minter interface {
	// CreateMaster registers the master edition descriptor of a collectible
	// auction. It fails if a master already exists at the address.
	CreateMaster(master gold.Address, meta Metadata) error

	// MintEdition mints the numbered child edition derived from master to
	// the winner, creating the winner's holding record on first use.
	MintEdition(master gold.Address, edition uint64, to gold.Address) error

	// MintTokens mints a fungible amount to the winner, creating the
	// winner's holding record on first use.
	MintTokens(mintAddr gold.Address, to gold.Address, amount uint64) error

	// Repoint rewrites the edition counter embedded in the master
	// descriptor's URI. A nil next resets it to the base marker.
	Repoint(master gold.Address, next *uint64) error
}

// EditionURI returns the descriptor locator of the given edition.
func EditionURI(prefix string, edition uint64) string {
	return fmt.Sprintf("%s/%d.json", prefix, edition)
}

// SwapEditionInURI replaces the edition counter embedded in uri.
// It fails if uri does not end in "/<n>.json".
func SwapEditionInURI(uri string, next uint64) (string, error) {
	slash := strings.LastIndexByte(uri, '/')
	if slash < 0 || !strings.HasSuffix(uri, ".json") {
		return "", reverts.ErrMetadataManipulationError
	}
	counter := uri[slash+1 : len(uri)-len(".json")]
	if _, err := strconv.ParseUint(counter, 10, 64); err != nil {
		return "", reverts.ErrMetadataManipulationError
	}
	return EditionURI(uri[:slash], next), nil
}
