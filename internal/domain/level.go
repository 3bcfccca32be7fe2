package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Tiers in promotion order. A user advances Beginner -> Intermediate ->
// Advanced; there is no tier after Advanced.
const (
	TierBeginner     = "Beginner"
	TierIntermediate = "Intermediate"
	TierAdvanced     = "Advanced"
)

// DefaultLevel is assigned to every profile at signup.
const DefaultLevel = "Beginner 0"

// MaxSubLevel is the clamp for the last tier, representing mastery.
const MaxSubLevel = 10

var tierOrder = []string{TierBeginner, TierIntermediate, TierAdvanced}

// Level is a parsed "<Tier> <SubLevel>" label.
type Level struct {
	Tier     string
	SubLevel int
}

// ParseLevel parses a stored level string. Tier matching is
// case-insensitive on read; String() writes it back title-cased.
func ParseLevel(s string) (Level, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Level{}, NewInvalidInputError(fmt.Sprintf("malformed level %q", s))
	}
	tier, ok := matchTier(parts[0])
	if !ok {
		return Level{}, NewInvalidInputError(fmt.Sprintf("unknown tier %q", parts[0]))
	}
	sub, err := strconv.Atoi(parts[1])
	if err != nil || sub < 0 || sub > MaxSubLevel {
		return Level{}, NewInvalidInputError(fmt.Sprintf("sub-level out of range in %q", s))
	}
	return Level{Tier: tier, SubLevel: sub}, nil
}

func (l Level) String() string {
	return fmt.Sprintf("%s %d", l.Tier, l.SubLevel)
}

// NextTier returns the tier after l's, or false when l is already at the
// last tier.
func (l Level) NextTier() (string, bool) {
	for i, tier := range tierOrder {
		if tier == l.Tier && i+1 < len(tierOrder) {
			return tierOrder[i+1], true
		}
	}
	return "", false
}

// SameTier reports whether courseLevel belongs to l's tier,
// case-insensitively.
func (l Level) SameTier(courseLevel string) bool {
	return strings.EqualFold(courseLevel, l.Tier)
}

func matchTier(s string) (string, bool) {
	for _, tier := range tierOrder {
		if strings.EqualFold(s, tier) {
			return tier, true
		}
	}
	return "", false
}
