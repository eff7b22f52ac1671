package completion

import (
	"strings"

	"github.com/sadopc/gotermsql/internal/dialect"
)

// BuildMask computes the structure-assistant search mask for prefix against
// container (spec §4.6). If prefix contains a separator ending with a
// separator, mask = "%"; if it contains a separator ending with a name,
// mask = unquoted last segment + "%"; otherwise mask = unquoted prefix +
// "%". When searchInsideNames, the mask is additionally wrapped in "%" on
// both sides (empty prefix -> "%" alone).
func BuildMask(prefix string, dlt *dialect.Dialect, searchInsideNames bool) string {
	var base string
	switch {
	case prefix == "":
		return "%"
	case dlt.ContainsSeparator(prefix):
		parts := dlt.SplitIdentifier(prefix)
		last := parts[len(parts)-1]
		if last == "" {
			base = "%"
			return base
		}
		base = dlt.RemoveQuotes(last) + "%"
	default:
		base = dlt.RemoveQuotes(prefix) + "%"
	}

	if !searchInsideNames {
		return base
	}
	if base == "" {
		return "%"
	}
	// Swap the trailing "%" for wrapping on both sides.
	inner := strings.TrimSuffix(base, "%")
	return "%" + inner + "%"
}
