package acquisition

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"mdqctest/internal/core"
)

// RunName generates a realistic run name: prefix, timestamp, short random
// suffix (e.g. "QC_20260825_143005_A41F").
func RunName(prefix string, clock core.Clock) string {
	if clock == nil {
		clock = core.RealClock{}
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("%s_%s_%s", prefix, clock.Now().Format("20060102_150405"), suffix)
}
