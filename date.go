package mdexport

import (
	"time"

	"github.com/alnah/go-mdexport/internal/dateutil"
)

// ResolveDate expands "auto" date values for Document.Date.
//
//	auto           current date as YYYY-MM-DD
//	auto:FORMAT    current date in FORMAT, e.g. auto:DD/MM/YYYY
//	auto:PRESET    iso, european, us, long or full
//
// Other values are returned unchanged. now is injected for tests.
func ResolveDate(value string, now time.Time) (string, error) {
	return dateutil.Resolve(value, now)
}
