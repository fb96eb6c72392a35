// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gold

import (
	"bytes"
	"encoding/json"
	"errors"
)

// AuctionIDLength length of an auction identifier in bytes.
const AuctionIDLength = 32

// AuctionID identifies an auction by its name, right-padded with zero bytes.
// Only printable ascii names are valid, which keeps identifiers cheap to
// display and makes the derived record addresses reproducible from the
// human-readable name alone.
type AuctionID [AuctionIDLength]byte

var (
	_ json.Marshaler   = (*AuctionID)(nil)
	_ json.Unmarshaler = (*AuctionID)(nil)
)

// NewAuctionID builds an identifier from a human readable name.
func NewAuctionID(name string) (AuctionID, error) {
	var id AuctionID
	if len(name) == 0 || len(name) > AuctionIDLength {
		return AuctionID{}, errors.New("auction name length out of range")
	}
	for i := 0; i < len(name); i++ {
		if name[i] < 0x20 || name[i] > 0x7e {
			return AuctionID{}, errors.New("auction name not printable ascii")
		}
	}
	copy(id[:], name)
	return id, nil
}

// IsValid reports whether the identifier is a zero-padded printable ascii name.
func (id AuctionID) IsValid() bool {
	trimmed := bytes.TrimRight(id[:], "\x00")
	if len(trimmed) == 0 {
		return false
	}
	for _, c := range trimmed {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	// no embedded zero bytes before the padding
	return !bytes.ContainsRune(trimmed, 0)
}

// String implements the stringer interface.
func (id AuctionID) String() string {
	return string(bytes.TrimRight(id[:], "\x00"))
}

// Bytes returns byte slice form of the identifier.
func (id AuctionID) Bytes() []byte {
	return id[:]
}

// IsZero returns if the identifier has all zero bytes.
func (id AuctionID) IsZero() bool {
	return id == AuctionID{}
}

// Compare lexically compares two identifiers, returning -1, 0 or 1.
func (id AuctionID) Compare(other AuctionID) int {
	return bytes.Compare(id[:], other[:])
}

// MarshalJSON implements json.Marshaler.
func (id *AuctionID) MarshalJSON() ([]byte, error) {
	if id == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(id.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *AuctionID) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := NewAuctionID(name)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
