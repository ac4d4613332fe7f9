package protocol

import "github.com/brc20index/core/er"

// NonBlockingErr is the type of every fault that represents bad user data:
// a malformed payload, a protocol precondition violated by the inscription
// stream, an arithmetic rule broken by a requested operation. These are
// logged and swallowed at the handler boundary; the block keeps processing.
var NonBlockingErr = er.NewErrorType("protocol.NonBlockingErr")

// BlockingErr is the type of every fault that represents an infrastructure
// problem: storage I/O, a missing outpoint the manager itself is supposed
// to have recorded, a script that doesn't decode to a valid address on the
// configured network. These abort the block.
var BlockingErr = er.NewErrorType("protocol.BlockingErr")

var (
	// ErrBug marks an invariant the caller believed unreachable, such as
	// an inscription id whose index has no corresponding envelope.
	ErrBug = NonBlockingErr.Code("ErrBug")

	// ErrStorage wraps a failure from the underlying key-value store.
	ErrStorage = BlockingErr.Code("ErrStorage")

	// ErrOutpointNotFound is returned when an outpoint expected to have
	// been recorded by a previous event could not be found.
	ErrOutpointNotFound = BlockingErr.Code("ErrOutpointNotFound")

	// ErrInvalidAddressNetwork is returned when a script does not decode
	// to a valid address under the configured network.
	ErrInvalidAddressNetwork = BlockingErr.Code("ErrInvalidAddressNetwork")

	// ErrHandlerRejected wraps a non-blocking error surfaced by a
	// registered protocol handler (a BRC20 business-rule violation, for
	// instance). The handler's own error code is preserved as the cause
	// so a caller that cares can still inspect it; the manager itself
	// only needs to know that it is not blocking.
	ErrHandlerRejected = NonBlockingErr.Code("ErrHandlerRejected")
)

// IsBlocking reports whether err should abort the enclosing block. A nil
// error is never blocking.
func IsBlocking(err er.R) bool {
	return BlockingErr.Is(err)
}
