package logger

import (
	"errors"
	"fmt"
	"log/slog"
)

// WithError groups an error's message, type and cause under "error".
func WithError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	attrs := []any{
		slog.String("message", err.Error()),
		slog.String("type", fmt.Sprintf("%T", err)),
	}
	if cause := errors.Unwrap(err); cause != nil {
		attrs = append(attrs, slog.String("cause", cause.Error()))
	}
	return slog.Group("error", attrs...)
}

// ErrorChain lists every error in err's chain, outermost first.
func ErrorChain(err error) []string {
	var chain []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		chain = append(chain, e.Error())
	}
	return chain
}
