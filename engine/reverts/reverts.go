// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import "errors"

// ErrRevert is a revert reason surfaced to callers. Every handler aborts with
// exactly one of the named kinds below, never a generic failure, so operator
// tooling can branch on cause.
type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// IsRevertErr reports whether err carries a revert reason.
func IsRevertErr(err error) bool {
	if err == nil {
		return false
	}
	var ve *ErrRevert
	return errors.As(err, &ve)
}

// Authorization.
var (
	ErrMissingSignature          = New("missing required signature")
	ErrAuctionOwnerMismatch      = New("auction owner mismatch")
	ErrContractAdminMismatch     = New("contract admin mismatch")
	ErrWithdrawAuthorityMismatch = New("withdraw authority mismatch")
	ErrTopBidderAccountMismatch  = New("top bidder account mismatch")
)

// State conflicts.
var (
	ErrAuctionFrozen              = New("auction is frozen")
	ErrAuctionEnded               = New("auction has ended")
	ErrAuctionIsInProgress        = New("auction cycle is in progress")
	ErrAuctionCycleEnded          = New("auction cycle has ended")
	ErrRewardAlreadyClaimed       = New("reward already claimed")
	ErrAuctionAlreadyInitialized  = New("auction already initialized")
	ErrContractAlreadyInitialized = New("contract already initialized")
	ErrAuctionNotInitialized      = New("auction not initialized")
)

// Validation.
var (
	ErrInvalidBidAmount        = New("invalid bid amount")
	ErrInvalidMinimumBidAmount = New("invalid minimum bid amount")
	ErrInvalidCyclePeriod      = New("invalid cycle period")
	ErrInvalidEncorePeriod     = New("invalid encore period")
	ErrInvalidProtocolFee      = New("invalid protocol fee")
	ErrInvalidStartTime        = New("invalid start time")
	ErrAuctionIdNotAscii       = New("auction id is not printable ascii")
	ErrDescriptionTooLong      = New("description too long")
	ErrSocialsTooLong          = New("social links too long")
	ErrInvalidCycleCount       = New("invalid number of cycles")
)

// Capacity.
var (
	ErrAuctionPoolFull           = New("auction pool is full")
	ErrAuctionIdNotUnique        = New("auction id is not unique")
	ErrShrinkingPoolIsNotAllowed = New("shrinking the pool is not allowed")
)

// Addressing.
var (
	ErrInvalidSeeds          = New("invalid seeds")
	ErrInvalidProgramAddress = New("invalid program address")
	ErrInvalidAccountOwner   = New("invalid account owner")
)

// Arithmetic.
var (
	ErrArithmetic = New("arithmetic overflow or underflow")
)

// Asset consistency.
var (
	ErrNftAlreadyExists            = New("nft already exists")
	ErrMasterEditionMismatch       = New("master edition mismatch")
	ErrChildEditionNumberMismatch  = New("child edition number mismatch")
	ErrTokenAuctionInconsistency   = New("token auction inconsistency")
	ErrMetadataManipulationError   = New("metadata manipulation error")
	ErrInsufficientFunds           = New("insufficient funds")
	ErrWithdrawBelowRentExemption  = New("withdrawal below rent exemption")
)
