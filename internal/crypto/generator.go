package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mode selects the draw algorithm used by Generate.
type Mode string

const (
	ModeRandom        Mode = "random"
	ModePronounceable Mode = "pronounceable"
	ModePassphrase    Mode = "passphrase"
)

const (
	syllableConsonants = "bcdfghjklmnpqrstvwxyz"
	syllableVowels     = "aeiouy"

	minPassphraseWords = 3
	maxPassphraseWords = 10
)

var ErrInvalidPolicy = errors.New("password length must be at least 1")

// randReader is the entropy source for every draw. Tests swap it to
// exercise failure paths; it must stay a CSPRNG otherwise.
var randReader io.Reader = rand.Reader

// Policy is the full set of generation constraints.
type Policy struct {
	Length int
	Mode   Mode

	UseUpper   bool
	UseLower   bool
	UseDigits  bool
	UseSymbols bool

	ExcludeSimilar   bool
	ExcludeAmbiguous bool
	CustomCharset    string
	ExcludeChars     string

	MinLength     int
	RequireUpper  bool
	RequireLower  bool
	RequireDigit  bool
	RequireSymbol bool
}

// DefaultPolicy returns 16 random characters drawn from all four classes.
func DefaultPolicy() Policy {
	return Policy{
		Length:     16,
		Mode:       ModeRandom,
		UseUpper:   true,
		UseLower:   true,
		UseDigits:  true,
		UseSymbols: true,
		MinLength:  8,
	}
}

// ParseMode maps a user supplied name onto a Mode. The empty string is random.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeRandom:
		return ModeRandom, true
	case ModePronounceable:
		return ModePronounceable, true
	case ModePassphrase:
		return ModePassphrase, true
	}
	return "", false
}

func (p Policy) requiredCategories() []Category {
	var cats []Category
	if p.RequireUpper {
		cats = append(cats, CategoryUpper)
	}
	if p.RequireLower {
		cats = append(cats, CategoryLower)
	}
	if p.RequireDigit {
		cats = append(cats, CategoryDigit)
	}
	if p.RequireSymbol {
		cats = append(cats, CategorySymbol)
	}
	return cats
}

// Generate draws a password under the policy using crypto/rand.
//
// The result may be longer than p.Length when p.MinLength is larger;
// callers should read back the length of the returned string.
func Generate(p Policy) (string, error) {
	if p.Length < 1 {
		return "", ErrInvalidPolicy
	}

	var (
		chars []rune
		err   error
	)
	switch p.Mode {
	case ModePronounceable:
		chars, err = drawPronounceable(p)
	case ModePassphrase:
		chars, err = drawPassphrase(p)
	default:
		chars, err = drawRandom(p)
	}
	if err != nil {
		return "", err
	}

	chars, err = applyPolicy(p, chars)
	if err != nil {
		return "", err
	}
	return string(chars), nil
}

func drawRandom(p Policy) ([]rune, error) {
	pool := buildPool(p)
	out := make([]rune, p.Length)
	for i := range out {
		r, err := randRune(pool)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func drawPronounceable(p Policy) ([]rune, error) {
	var sb strings.Builder
	for sb.Len() < p.Length {
		c, err := randInt(len(syllableConsonants))
		if err != nil {
			return nil, err
		}
		v, err := randInt(len(syllableVowels))
		if err != nil {
			return nil, err
		}
		sb.WriteByte(syllableConsonants[c])
		sb.WriteByte(syllableVowels[v])
	}

	out := []rune(sb.String()[:p.Length])
	for i := 0; i < len(out); i += 3 {
		if unicode.IsLetter(out[i]) {
			out[i] = unicode.ToUpper(out[i])
		}
	}

	if len(out) > 3 {
		if p.UseDigits {
			if err := overwriteInterior(out, []rune(numberChars)); err != nil {
				return nil, err
			}
		}
		if p.UseSymbols {
			if err := overwriteInterior(out, []rune(symbolChars)); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// overwriteInterior replaces one position in [1, len-2] with a rune from set.
func overwriteInterior(out []rune, set []rune) error {
	pos, err := randInt(len(out) - 2)
	if err != nil {
		return err
	}
	r, err := randRune(set)
	if err != nil {
		return err
	}
	out[pos+1] = r
	return nil
}

func drawPassphrase(p Policy) ([]rune, error) {
	n := min(max(p.Length/4, minPassphraseWords), maxPassphraseWords)

	caser := cases.Title(language.English)
	words := make([]string, n)
	for i := range words {
		idx, err := randInt(len(passphraseWords))
		if err != nil {
			return nil, err
		}
		words[i] = caser.String(passphraseWords[idx])
	}
	phrase := strings.Join(words, " ")

	if p.UseDigits {
		d, err := randInt(100)
		if err != nil {
			return nil, err
		}
		phrase += fmt.Sprintf("%02d", d)
	}
	if p.UseSymbols {
		r, err := randRune([]rune(symbolChars))
		if err != nil {
			return nil, err
		}
		phrase += string(r)
	}
	return []rune(phrase), nil
}

// applyPolicy pads to MinLength with alphanumerics and then patches in any
// required class that the draw missed. Each patch overwrites one position,
// so short outputs carry a small bias toward the patched classes.
func applyPolicy(p Policy, chars []rune) ([]rune, error) {
	alnum := []rune(alphanumericChars)
	for len(chars) < p.MinLength {
		r, err := randRune(alnum)
		if err != nil {
			return nil, err
		}
		chars = append(chars, r)
	}

	required := p.requiredCategories()
	patched := make(map[int]bool, len(required))
	for _, cat := range required {
		if ObservedCategories(string(chars)).Has(cat) {
			continue
		}
		pos, err := patchPosition(chars, required, patched)
		if err != nil {
			return nil, err
		}
		r, err := randRune(categoryPool(p, cat))
		if err != nil {
			return nil, err
		}
		chars[pos] = r
		patched[pos] = true
	}
	return chars, nil
}

// patchPosition picks a position to overwrite, preferring ones that are
// neither already patched nor the only carrier of a required class.
func patchPosition(chars []rune, required []Category, patched map[int]bool) (int, error) {
	counts := make(map[Category]int, 4)
	for _, r := range chars {
		counts[categoryOf(r)]++
	}
	isRequired := make(map[Category]bool, len(required))
	for _, c := range required {
		isRequired[c] = true
	}

	var safe, unpatched []int
	for i, r := range chars {
		if patched[i] {
			continue
		}
		unpatched = append(unpatched, i)
		cat := categoryOf(r)
		if isRequired[cat] && counts[cat] == 1 {
			continue
		}
		safe = append(safe, i)
	}

	candidates := safe
	if len(candidates) == 0 {
		candidates = unpatched
	}
	if len(candidates) == 0 {
		return randInt(len(chars))
	}
	idx, err := randInt(len(candidates))
	if err != nil {
		return 0, err
	}
	return candidates[idx], nil
}

// randInt returns a uniform int in [0, n) from randReader.
func randInt(n int) (int, error) {
	v, err := rand.Int(randReader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return int(v.Int64()), nil
}

func randRune(pool []rune) (rune, error) {
	i, err := randInt(len(pool))
	if err != nil {
		return 0, err
	}
	return pool[i], nil
}
