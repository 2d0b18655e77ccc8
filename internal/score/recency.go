// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"time"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Recency maps paper age in days to a 0-100 step score. Fresh papers score
// highest; beyond two years the score decays linearly by one point per 30
// days, floored at zero. A paper with an unknown publication date scores
// the neutral 50.
func Recency(p types.Paper, now time.Time) float64 {
	days := p.AgeDays(now)
	switch {
	case days < 0:
		return 50
	case days <= 30:
		return 100
	case days <= 90:
		return 90
	case days <= 180:
		return 80
	case days <= 365:
		return 70
	case days <= 730:
		return 50
	default:
		return clamp(50-float64(days-730)/30, 0, 50)
	}
}
