package analyzer

import (
	"regexp"
	"strconv"
	"strings"
)

// Tier is a coarse experience level detected from text.
type Tier int

const (
	TierUnknown Tier = iota
	TierFresher
	TierMid
	TierExperienced
)

func (t Tier) String() string {
	switch t {
	case TierFresher:
		return "fresher"
	case TierMid:
		return "mid"
	case TierExperienced:
		return "experienced"
	default:
		return "unknown"
	}
}

var reYears = regexp.MustCompile(`(\d+)\s*\+?\s*(?:years?|yrs?)`)

var (
	seniorMarkers = []string{"senior", "lead", "principal", "staff engineer"}
	juniorMarkers = []string{"junior", "entry level", "entry-level", "fresher", "graduate", "intern"}
	midMarkers    = []string{"mid level", "mid-level", "middle"}
)

// TierFromYears maps declared years of experience to a tier: up to 2 years is
// fresher, up to 5 is mid, anything beyond is experienced.
func TierFromYears(years int) Tier {
	switch {
	case years < 0:
		return TierUnknown
	case years <= 2:
		return TierFresher
	case years <= 5:
		return TierMid
	default:
		return TierExperienced
	}
}

// DetectTier finds an experience tier in free text, preferring an explicit
// "N years" declaration and falling back to level keywords. Returns
// TierUnknown when nothing matches.
func DetectTier(text string) Tier {
	lower := strings.ToLower(text)

	if m := reYears.FindStringSubmatch(lower); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil {
			return TierFromYears(years)
		}
	}

	for _, marker := range seniorMarkers {
		if strings.Contains(lower, marker) {
			return TierExperienced
		}
	}
	for _, marker := range juniorMarkers {
		if strings.Contains(lower, marker) {
			return TierFresher
		}
	}
	for _, marker := range midMarkers {
		if strings.Contains(lower, marker) {
			return TierMid
		}
	}
	return TierUnknown
}

// tierMatchScore grades how well two detected tiers line up: identical tiers
// score 1.0 (including two undetected ones, where nothing contradicts),
// adjacent tiers 0.5, opposite ends 0.2. When exactly one side is undetected
// the score is a neutral 0.5.
func tierMatchScore(a, b Tier) float64 {
	if a == b {
		return 1.0
	}
	if a == TierUnknown || b == TierUnknown {
		return 0.5
	}
	distance := int(a) - int(b)
	if distance < 0 {
		distance = -distance
	}
	if distance == 1 {
		return 0.5
	}
	return 0.2
}
