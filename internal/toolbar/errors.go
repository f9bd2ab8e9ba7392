package toolbar

import "errors"

var (
	// ErrMissingToolbar is returned by New when no toolbar is supplied.
	ErrMissingToolbar = errors.New("toolbar is required")

	// ErrDuplicateIdentifier is returned when a pane identifier is already
	// registered. The first registration stays authoritative.
	ErrDuplicateIdentifier = errors.New("duplicate pane identifier")

	// ErrUnknownIdentifier is returned when a selection names no registered pane.
	ErrUnknownIdentifier = errors.New("unknown pane identifier")

	// ErrInvalidDelegateResponse marks a delegate hook that returned an
	// unusable value.
	ErrInvalidDelegateResponse = errors.New("invalid delegate response")

	// ErrInvalidPane is returned for panes without an identifier or content.
	ErrInvalidPane = errors.New("invalid pane")
)
