package crypto

import (
	"math"
	"regexp"
	"strings"
)

// Strength is the coarse label assigned by Score.
type Strength string

const (
	VeryWeak   Strength = "Very Weak"
	Weak       Strength = "Weak"
	Medium     Strength = "Medium"
	Strong     Strength = "Strong"
	VeryStrong Strength = "Very Strong"
)

const (
	maxLengthPoints  = 40
	maxEntropyPoints = 40
	pointsPerChar    = 4
	pointsPerClass   = 10

	weakPatternPenalty = 10
	repeatPenalty      = 2
	sequencePenalty    = 5
)

// weakSubstrings are matched case-insensitively anywhere in the password.
var weakSubstrings = []string{
	"123", "abc", "qwe", "asd", "zxc",
	"password", "pass", "admin", "login", "welcome",
	"qwerty", "letmein", "access", "master",
}

// weakShapes catch common structures rather than literal text.
var weakShapes = []*regexp.Regexp{
	// a word followed by a short number, e.g. "summer2024"
	regexp.MustCompile(`^[A-Za-z]+[0-9]{1,4}$`),
}

// StrengthResult is the outcome of Score.
type StrengthResult struct {
	Label Strength `json:"strength"`
	Score float64  `json:"score"`
}

// Score rates a password with a linear point heuristic. It is a display aid,
// not a model of real attacker cost.
func Score(password string) StrengthResult {
	runes := []rune(password)
	n := len(runes)

	score := float64(min(n*pointsPerChar, maxLengthPoints))

	cats := ObservedCategories(password)
	score += float64(cats.Count() * pointsPerClass)
	score += math.Min(EntropyBits(password), maxEntropyPoints)

	lower := strings.ToLower(password)
	for _, s := range weakSubstrings {
		if strings.Contains(lower, s) {
			score -= weakPatternPenalty
		}
	}
	for _, re := range weakShapes {
		if re.MatchString(password) {
			score -= weakPatternPenalty
		}
	}

	for i := 0; i+1 < n; i++ {
		if runes[i] == runes[i+1] {
			score -= repeatPenalty
		}
	}
	for i := 0; i+2 < n; i++ {
		if runes[i+1] == runes[i]+1 && runes[i+2] == runes[i]+2 {
			score -= sequencePenalty
		}
	}

	return StrengthResult{Label: labelFor(score), Score: score}
}

func labelFor(score float64) Strength {
	switch {
	case score < 40:
		return VeryWeak
	case score < 60:
		return Weak
	case score < 80:
		return Medium
	case score < 100:
		return Strong
	default:
		return VeryStrong
	}
}
