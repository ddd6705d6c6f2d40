package domain

import "math"

// Tier is a named score band with a display icon and description.
type Tier struct {
	Name        string `json:"name"`
	Range       [2]int `json:"range"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// Contains reports whether score falls inside the band (inclusive).
func (t Tier) Contains(score int) bool {
	return score >= t.Range[0] && score <= t.Range[1]
}

// Tiers is the ordered, exhaustive partition of [0, 15] used to rank a
// 15-question session.
var Tiers = []Tier{
	{
		Name:        "Recruit Detective",
		Range:       [2]int{0, 3},
		Icon:        "🎯",
		Description: "You're new to cartridge identification. Every expert started here - keep learning!",
	},
	{
		Name:        "Cartridge Spotter",
		Range:       [2]int{4, 6},
		Icon:        "🏅",
		Description: "You can identify some common cartridges. Your detective skills are developing!",
	},
	{
		Name:        "Ammunition Expert",
		Range:       [2]int{7, 9},
		Icon:        "⭐",
		Description: "Impressive knowledge! You can identify most cartridges and understand their history.",
	},
	{
		Name:        "Master Cartridge Detective",
		Range:       [2]int{10, 12},
		Icon:        "🎖️",
		Description: "Exceptional expertise! You have deep cartridge knowledge that rivals collectors.",
	},
	{
		Name:        "Arsenal Commander",
		Range:       [2]int{13, 15},
		Icon:        "👑",
		Description: "Elite cartridge authority! Your knowledge is comprehensive and you're among the top detectives.",
	},
}

// GetTier returns the first band containing score. Bands are exhaustive, so
// the lowest-band fallback should be unreachable; it exists so a bad score
// never panics.
func GetTier(score int) Tier {
	for _, tier := range Tiers {
		if tier.Contains(score) {
			return tier
		}
	}
	return Tiers[0]
}

// Achievement is a badge earned from the final score and streak.
type Achievement struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

// GetAchievements derives the badge set from the final score and max streak.
// Rules are independent; a session can earn several at once.
func GetAchievements(score, maxStreak, totalQuestions int) []Achievement {
	var achievements []Achievement

	if totalQuestions > 0 && score == totalQuestions {
		achievements = append(achievements, Achievement{Icon: "🎯", Text: "Perfect Detective!"})
	}
	if maxStreak >= 5 {
		achievements = append(achievements, Achievement{Icon: "🔥", Text: "Hot Streak!"})
	}
	if totalQuestions > 0 && score >= int(math.Ceil(float64(totalQuestions)*0.8)) {
		achievements = append(achievements, Achievement{Icon: "🏆", Text: "Expert Level"})
	}
	if maxStreak >= 3 {
		achievements = append(achievements, Achievement{Icon: "💪", Text: "Consistent Detective"})
	}

	return achievements
}
