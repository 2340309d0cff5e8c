package chain

import "errors"

var (
	// ErrTransactionFailed is returned when the program gateway rejects or
	// reverts a submitted transaction.
	ErrTransactionFailed = errors.New("chain: transaction failed")

	// ErrWrongNetwork is returned when the gateway reports that the signing
	// wallet is connected to a different cluster than the one this service
	// targets. The caller must switch networks before retrying.
	ErrWrongNetwork = errors.New("chain: wallet is on the wrong network")

	// ErrUnavailable is returned when the gateway cannot be reached.
	ErrUnavailable = errors.New("chain: gateway unavailable")

	// ErrInvalidResponse is returned when the gateway answers with a payload
	// the client cannot interpret.
	ErrInvalidResponse = errors.New("chain: invalid gateway response")
)
