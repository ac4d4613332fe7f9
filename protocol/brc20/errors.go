package brc20

import "github.com/brc20index/core/er"

// NonBlockingErr is the error type for every fault that reflects bad user
// data or a broken protocol precondition: these are logged at the handler
// boundary and never abort the enclosing block.
var NonBlockingErr = er.NewErrorType("brc20.NonBlockingErr")

// BlockingErr is the error type for storage faults in the BRC20 tables.
// The protocol package's own BlockingErr.Is classifies by error type, not
// package, so wrapping a kvdb failure in StorageErr here is what makes the
// manager's IsBlocking check treat it as blocking further up the stack.
var BlockingErr = er.NewErrorType("brc20.BlockingErr")

// StorageErr wraps a failure from the underlying key-value store.
var StorageErr = BlockingErr.CodeWithDetail("StorageErr", "storage error")

var (
	// Balance arithmetic (C2).
	ErrTransferExceedingTotalBalance = NonBlockingErr.CodeWithDetail(
		"ErrTransferExceedingTotalBalance",
		"inscribe-transfer amount exceeds total balance")
	ErrInvalidAvailableBalance = NonBlockingErr.CodeWithDetail(
		"ErrInvalidAvailableBalance",
		"transferable balance exceeds total balance")
	ErrExceedsMaxBalance = NonBlockingErr.CodeWithDetail(
		"ErrExceedsMaxBalance",
		"balance would exceed the token's supply cap")
	ErrBalanceOverflow = NonBlockingErr.CodeWithDetail(
		"ErrBalanceOverflow",
		"balance arithmetic overflowed")
	ErrBalanceUnderflow = NonBlockingErr.CodeWithDetail(
		"ErrBalanceUnderflow",
		"balance arithmetic underflowed")

	// Tracker precondition (C4).
	ErrTokenNotExists = NonBlockingErr.CodeWithDetail(
		"ErrTokenNotExists",
		"token does not exist")
	ErrDuplicatedTokenDeployment = NonBlockingErr.CodeWithDetail(
		"ErrDuplicatedTokenDeployment",
		"token already deployed")

	// Payload parser (C5).
	ErrInvalidTickLength = NonBlockingErr.CodeWithDetail(
		"ErrInvalidTickLength",
		"tick exceeds maximum length")
	ErrInvalidBalance = NonBlockingErr.CodeWithDetail(
		"ErrInvalidBalance",
		"amount field is not a valid unsigned decimal")
	ErrUnknownProtocol = NonBlockingErr.CodeWithDetail(
		"ErrUnknownProtocol",
		"unrecognized protocol tag")
	ErrInvalidInscriptionPayload = NonBlockingErr.CodeWithDetail(
		"ErrInvalidInscriptionPayload",
		"malformed inscription payload")
)
