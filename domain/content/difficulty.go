package content

import "strings"

// Keyword families used to classify concept difficulty from freeform
// text. Advanced markers are checked before intermediate ones, so text
// containing both classifies as advanced.
var (
	advancedKeywords     = []string{"advanced", "complex", "enterprise", "scalable", "optimization"}
	intermediateKeywords = []string{"intermediate", "moderate", "standard", "common"}
)

// DeriveDifficulty classifies freeform descriptive text (typically the
// concept name concatenated with its feature list) into a difficulty
// level. The rule is deterministic and case-insensitive: any advanced
// keyword wins, then any intermediate keyword, otherwise beginner.
func DeriveDifficulty(text string) Difficulty {
	lower := strings.ToLower(text)
	for _, kw := range advancedKeywords {
		if strings.Contains(lower, kw) {
			return DifficultyAdvanced
		}
	}
	for _, kw := range intermediateKeywords {
		if strings.Contains(lower, kw) {
			return DifficultyIntermediate
		}
	}
	return DifficultyBeginner
}

// EstimateTime maps a difficulty level to the study-time label shown in
// the admin panel. Unrecognized values get a middle-of-the-road default.
func EstimateTime(d Difficulty) string {
	switch d {
	case DifficultyBeginner:
		return "15 min"
	case DifficultyIntermediate:
		return "25 min"
	case DifficultyAdvanced:
		return "40 min"
	default:
		return "20 min"
	}
}
