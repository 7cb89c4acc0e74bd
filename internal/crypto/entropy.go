package crypto

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// GuessesPerSecond is the assumed offline attack rate (a high-end GPU rig).
const GuessesPerSecond = 1e11

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
	secondsPerYear   = 31536000
)

// EntropyBits estimates len * log2(pool) where pool is built from the
// classes actually observed in password, not from the policy that produced it.
func EntropyBits(password string) float64 {
	pool := ObservedCategories(password).PoolSize()
	if pool == 0 {
		return 0
	}
	return float64(utf8.RuneCountInString(password)) * math.Log2(float64(pool))
}

// CrackEstimate is a brute-force time estimate.
type CrackEstimate struct {
	Seconds float64 `json:"seconds"`
	Display string  `json:"display"`
}

// CrackTime converts entropy bits into the time to exhaust the keyspace at
// GuessesPerSecond. Seconds saturates at math.MaxFloat64 so it stays
// encodable as JSON.
func CrackTime(bits float64) CrackEstimate {
	seconds := math.Exp2(bits) / GuessesPerSecond
	if math.IsInf(seconds, 1) || math.IsNaN(seconds) {
		seconds = math.MaxFloat64
	}
	return CrackEstimate{Seconds: seconds, Display: formatDuration(seconds)}
}

func formatDuration(seconds float64) string {
	switch {
	case seconds < 1:
		return "Instantly"
	case seconds < secondsPerMinute:
		return fmt.Sprintf("%.1f seconds", seconds)
	case seconds < secondsPerHour:
		return fmt.Sprintf("%.1f minutes", seconds/secondsPerMinute)
	case seconds < secondsPerDay:
		return fmt.Sprintf("%.1f hours", seconds/secondsPerHour)
	case seconds < secondsPerYear:
		return fmt.Sprintf("%.1f days", seconds/secondsPerDay)
	case seconds < secondsPerYear*1e3:
		return fmt.Sprintf("%.1f years", seconds/secondsPerYear)
	default:
		return "Billions of years"
	}
}
