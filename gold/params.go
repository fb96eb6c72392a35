// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gold

// Protocol-wide constants. These bound every auction on the platform and are
// not per-auction configuration.
const (
	// MinCyclePeriod shortest allowed cycle duration, in seconds.
	MinCyclePeriod uint64 = 60
	// MaxCyclePeriod longest allowed cycle duration (one year), in seconds.
	MaxCyclePeriod uint64 = 31_536_000

	// UniversalBidFloor the smallest minimum-bid any auction may configure.
	UniversalBidFloor uint64 = 1_000

	// BidHistoryLength capacity of a cycle's bid ring.
	BidHistoryLength = 10

	// AllowedConsecutiveIdleCycles idle cycles tolerated before an auction
	// is moved to the secondary pool.
	AllowedConsecutiveIdleCycles uint32 = 5
	// AllowedIdlePeriod cumulative idle duration tolerated before an
	// auction is moved to the secondary pool, in seconds.
	AllowedIdlePeriod uint64 = 604_800

	// MaxCycleRemovalPerCall upper bound on cycle records a single
	// DeleteAuction call may unwind.
	MaxCycleRemovalPerCall uint64 = 30

	// DefaultProtocolFeeBps fee applied when no fee record exists yet.
	DefaultProtocolFeeBps uint16 = 500
	// MaxProtocolFeeBps ceiling on the configurable protocol fee.
	MaxProtocolFeeBps uint16 = 1_000

	// InitialPoolCapacity capacity the membership pools are created with.
	InitialPoolCapacity uint32 = 128

	// MaxDescriptionLength bound on an auction's description string.
	MaxDescriptionLength = 200
	// MaxSocials bound on the number of social links.
	MaxSocials = 5
	// MaxSocialLength bound on a single social link.
	MaxSocialLength = 100
)

// Rent model of the hosting storage: a record must keep a minimum balance
// proportional to its size to remain stored indefinitely.
const (
	rentPerByte            uint64 = 6_960
	recordStorageOverhead  uint64 = 128
)

// MinBalance returns the rent-exempt minimum balance for a record of the
// given data length.
func MinBalance(dataLen int) uint64 {
	return (recordStorageOverhead + uint64(dataLen)) * rentPerByte
}
