package catalog

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrCancelled is returned when a catalog operation observes a cancelled
// context between I/O calls (spec §5).
var ErrCancelled = errors.New("catalog: operation cancelled")

// logCatalogError records a catalog-layer failure at debug level only;
// callers always continue with "no children" rather than aborting the
// analyzer run (spec §7).
func logCatalogError(op string, err error) {
	if err == nil {
		return
	}
	logrus.WithFields(logrus.Fields{
		"component": "catalog",
		"op":        op,
	}).Debug(err)
}
