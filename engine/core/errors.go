package core

import (
	"fmt"
)

// FetchResult classifies the outcome of a transport fetch.
type FetchResult int

const (
	FetchOK FetchResult = iota
	// FetchErrFormat: the target's format is unrecognized or cannot be
	// processed. Reported before any I/O when resolution fails.
	FetchErrFormat
	FetchErrNotFound
	FetchErrNet
	FetchErrInternal
)

func (r FetchResult) String() string {
	switch r {
	case FetchOK:
		return "ok"
	case FetchErrFormat:
		return "data processing error"
	case FetchErrNotFound:
		return "not found"
	case FetchErrNet:
		return "network error"
	case FetchErrInternal:
		return "internal error"
	}
	return "unknown"
}

// TransportError carries the transport's result classification alongside a
// human-readable message. Load error callbacks receive both.
type TransportError struct {
	Result  FetchResult
	Message string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s", e.Result, e.Message)
}
