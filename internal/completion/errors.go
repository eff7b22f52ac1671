package completion

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrCancelled is returned by Analyzer.Run when the context is cancelled
// between catalog calls (spec §7). Callers are expected to ignore it and
// discard the (empty or partial) proposal list, per the caller contract.
var ErrCancelled = errors.New("completion: run cancelled")

// ErrUnknownDialect is returned when a dialect name has no registered
// keyword/quoting profile.
var ErrUnknownDialect = errors.New("completion: unknown dialect")

// logDebug records a non-fatal analyzer-internal failure at debug level;
// the caller always continues with a degraded (but non-aborted) result.
func logDebug(op string, err error) {
	if err == nil {
		return
	}
	logrus.WithFields(logrus.Fields{
		"component": "completion",
		"op":        op,
	}).Debug(err)
}
