// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

// Tier buckets a rank score for display. Higher is more prominent.
type Tier int

const (
	TierEmerging  Tier = 1 // 0-9
	TierNotable   Tier = 2 // 10-19
	TierCore      Tier = 3 // 20-49
	TierTop       Tier = 4 // 50-99
	TierAuthority Tier = 5 // 100+
)

// TierFor maps a rank score to its tier. Each tier includes its lower bound.
func TierFor(score int) Tier {
	switch {
	case score >= 100:
		return TierAuthority
	case score >= 50:
		return TierTop
	case score >= 20:
		return TierCore
	case score >= 10:
		return TierNotable
	default:
		return TierEmerging
	}
}

// Label returns the human-readable tier name.
func (t Tier) Label() string {
	switch t {
	case TierAuthority:
		return "World authority"
	case TierTop:
		return "Top researcher"
	case TierCore:
		return "Core researcher"
	case TierNotable:
		return "Notable researcher"
	default:
		return "Emerging researcher"
	}
}

// Emoji returns the tier badge.
func (t Tier) Emoji() string {
	switch t {
	case TierAuthority:
		return "🏆"
	case TierTop:
		return "🏅"
	case TierCore:
		return "🟢"
	case TierNotable:
		return "🔵"
	default:
		return "⚪"
	}
}

// Class returns the CSS class used by the HTML renderer.
func (t Tier) Class() string {
	switch t {
	case TierAuthority:
		return "score-s-plus"
	case TierTop:
		return "score-s"
	case TierCore:
		return "score-a"
	case TierNotable:
		return "score-b"
	default:
		return "score-c"
	}
}
