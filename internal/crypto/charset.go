package crypto

import (
	"strings"
	"unicode"
)

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	similarChars   = "il1Lo0O"
	ambiguousChars = "{}[]()/\\\"'`~,;.<>"

	alphanumericChars = uppercaseChars + lowercaseChars + numberChars
)

// Category is a character class recognised by the generator and the estimators.
type Category int

const (
	CategoryUpper Category = iota
	CategoryLower
	CategoryDigit
	CategorySymbol
)

var categoryChars = map[Category]string{
	CategoryUpper:  uppercaseChars,
	CategoryLower:  lowercaseChars,
	CategoryDigit:  numberChars,
	CategorySymbol: symbolChars,
}

// Categories reports which character classes occur in s.
type Categories struct {
	Upper  bool `json:"uppercase"`
	Lower  bool `json:"lowercase"`
	Digit  bool `json:"numbers"`
	Symbol bool `json:"symbols"`
}

// Count returns the number of classes present.
func (c Categories) Count() int {
	n := 0
	for _, ok := range []bool{c.Upper, c.Lower, c.Digit, c.Symbol} {
		if ok {
			n++
		}
	}
	return n
}

// PoolSize sums the fixed class sizes of the present classes.
func (c Categories) PoolSize() int {
	size := 0
	if c.Upper {
		size += len(uppercaseChars)
	}
	if c.Lower {
		size += len(lowercaseChars)
	}
	if c.Digit {
		size += len(numberChars)
	}
	if c.Symbol {
		size += len(symbolChars)
	}
	return size
}

// Has reports whether the given class is present.
func (c Categories) Has(cat Category) bool {
	switch cat {
	case CategoryUpper:
		return c.Upper
	case CategoryLower:
		return c.Lower
	case CategoryDigit:
		return c.Digit
	case CategorySymbol:
		return c.Symbol
	}
	return false
}

// ObservedCategories scans s for the four character classes.
func ObservedCategories(s string) Categories {
	var c Categories
	for _, r := range s {
		switch categoryOf(r) {
		case CategoryUpper:
			c.Upper = true
		case CategoryLower:
			c.Lower = true
		case CategoryDigit:
			c.Digit = true
		case CategorySymbol:
			c.Symbol = true
		}
	}
	return c
}

// categoryOf classifies r, returning -1 for runes outside every class.
// Symbols only count when they belong to the fixed symbol set.
func categoryOf(r rune) Category {
	switch {
	case unicode.IsUpper(r):
		return CategoryUpper
	case unicode.IsLower(r):
		return CategoryLower
	case unicode.IsDigit(r):
		return CategoryDigit
	case strings.ContainsRune(symbolChars, r):
		return CategorySymbol
	}
	return -1
}

// buildPool resolves the policy into the deduplicated set of eligible runes.
func buildPool(p Policy) []rune {
	var source string
	if p.CustomCharset != "" {
		source = removeChars(p.CustomCharset, p.ExcludeChars)
	} else {
		var sb strings.Builder
		if p.UseUpper {
			sb.WriteString(uppercaseChars)
		}
		if p.UseLower {
			sb.WriteString(lowercaseChars)
		}
		if p.UseDigits {
			sb.WriteString(numberChars)
		}
		if p.UseSymbols {
			sb.WriteString(symbolChars)
		}
		source = sb.String()
		if p.ExcludeSimilar {
			source = removeChars(source, similarChars)
		}
		if p.ExcludeAmbiguous {
			source = removeChars(source, ambiguousChars)
		}
		source = removeChars(source, p.ExcludeChars)
	}

	pool := dedupe(source)
	if len(pool) == 0 {
		return []rune(alphanumericChars)
	}
	return pool
}

// categoryPool returns the characters of cat that survive the policy's
// exclusions, or the whole class when exclusions leave nothing.
func categoryPool(p Policy, cat Category) []rune {
	chars := categoryChars[cat]
	filtered := chars
	if p.ExcludeSimilar {
		filtered = removeChars(filtered, similarChars)
	}
	if p.ExcludeAmbiguous {
		filtered = removeChars(filtered, ambiguousChars)
	}
	filtered = removeChars(filtered, p.ExcludeChars)
	if filtered == "" {
		return []rune(chars)
	}
	return []rune(filtered)
}

func removeChars(s, drop string) string {
	if drop == "" {
		return s
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(drop, r) {
			return -1
		}
		return r
	}, s)
}

func dedupe(s string) []rune {
	seen := make(map[rune]struct{}, len(s))
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
