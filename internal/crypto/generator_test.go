package crypto

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"unicode"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		wantLen int
		wantErr error
	}{
		{
			name:    "default policy",
			policy:  DefaultPolicy(),
			wantLen: 16,
		},
		{
			name:    "single character",
			policy:  Policy{Length: 1, UseLower: true},
			wantLen: 1,
		},
		{
			name:    "long password",
			policy:  Policy{Length: 128, UseUpper: true, UseLower: true},
			wantLen: 128,
		},
		{
			name:    "min length pads past requested length",
			policy:  Policy{Length: 4, UseDigits: true, MinLength: 12},
			wantLen: 12,
		},
		{
			name:    "pronounceable",
			policy:  Policy{Length: 11, Mode: ModePronounceable},
			wantLen: 11,
		},
		{
			name:    "unknown mode falls back to random",
			policy:  Policy{Length: 9, Mode: Mode("weird"), UseLower: true},
			wantLen: 9,
		},
		{
			name:    "zero length",
			policy:  Policy{Length: 0, UseLower: true},
			wantErr: ErrInvalidPolicy,
		},
		{
			name:    "negative length",
			policy:  Policy{Length: -3},
			wantErr: ErrInvalidPolicy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.policy)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
				}
				if got != "" {
					t.Error("Generate() should return empty string on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if n := len([]rune(got)); n != tt.wantLen {
				t.Errorf("Generate() length = %d, want %d (%q)", n, tt.wantLen, got)
			}
		})
	}
}

func TestGenerateAllCategoriesUsesOnlyKnownCharacters(t *testing.T) {
	allowed := uppercaseChars + lowercaseChars + numberChars + symbolChars
	policy := Policy{Length: 16, UseUpper: true, UseLower: true, UseDigits: true, UseSymbols: true}

	for i := 0; i < 50; i++ {
		password, err := Generate(policy)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if len(password) != 16 {
			t.Fatalf("Generate() length = %d, want 16", len(password))
		}
		for _, ch := range password {
			if !strings.ContainsRune(allowed, ch) {
				t.Errorf("password %q contains unexpected character %q", password, ch)
			}
		}
	}
}

func TestGenerateLengthAtLeastMaxOfLengthAndMinLength(t *testing.T) {
	cases := []Policy{
		{Length: 1, MinLength: 0, UseLower: true},
		{Length: 5, MinLength: 20, UseSymbols: true},
		{Length: 30, MinLength: 8, UseUpper: true, RequireDigit: true},
		{Length: 3, MinLength: 9, Mode: ModePronounceable, UseDigits: true},
		{Length: 8, MinLength: 80, Mode: ModePassphrase},
	}
	for _, p := range cases {
		got, err := Generate(p)
		if err != nil {
			t.Fatalf("Generate(%+v) unexpected error: %v", p, err)
		}
		want := max(p.Length, p.MinLength)
		if p.Mode == ModePassphrase {
			want = p.MinLength
		}
		if n := len([]rune(got)); n < want {
			t.Errorf("Generate(%+v) length = %d, want >= %d", p, n, want)
		}
	}
}

func TestGenerateNoCategoriesFallsBackToAlphanumeric(t *testing.T) {
	policy := Policy{Length: 64}

	password, err := Generate(policy)
	if err != nil {
		t.Fatalf("Generate() with no categories should not fail: %v", err)
	}
	for _, ch := range password {
		if !strings.ContainsRune(alphanumericChars, ch) {
			t.Errorf("fallback password contains non-alphanumeric %q", ch)
		}
	}
}

func TestGenerateExclusionsEmptyingPoolFallBack(t *testing.T) {
	policy := Policy{Length: 20, UseDigits: true, ExcludeChars: numberChars}

	password, err := Generate(policy)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if len(password) != 20 {
		t.Errorf("Generate() length = %d, want 20", len(password))
	}
}

func TestGenerateRespectsExclusions(t *testing.T) {
	tests := []struct {
		name      string
		policy    Policy
		forbidden string
	}{
		{
			name:      "similar",
			policy:    Policy{Length: 200, UseUpper: true, UseLower: true, UseDigits: true, ExcludeSimilar: true},
			forbidden: similarChars,
		},
		{
			name:      "ambiguous",
			policy:    Policy{Length: 200, UseSymbols: true, ExcludeAmbiguous: true},
			forbidden: ambiguousChars,
		},
		{
			name:      "explicit exclude",
			policy:    Policy{Length: 200, UseLower: true, ExcludeChars: "aeiou"},
			forbidden: "aeiou",
		},
		{
			name:      "custom charset minus exclude",
			policy:    Policy{Length: 50, CustomCharset: "xyz", ExcludeChars: "y"},
			forbidden: "y" + uppercaseChars + numberChars,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			password, err := Generate(tt.policy)
			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if strings.ContainsAny(password, tt.forbidden) {
				t.Errorf("password %q contains a character from %q", password, tt.forbidden)
			}
		})
	}
}

func TestBuildPool(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		want   string
	}{
		{"custom deduplicated", Policy{CustomCharset: "aabbca"}, "abc"},
		{"custom overrides categories", Policy{CustomCharset: "xy", UseUpper: true}, "xy"},
		{"custom ignores similar flag", Policy{CustomCharset: "l1O", ExcludeSimilar: true}, "l1O"},
		{"digits without similar", Policy{UseDigits: true, ExcludeSimilar: true}, "23456789"},
		{"nothing enabled", Policy{}, alphanumericChars},
		{"everything excluded", Policy{CustomCharset: "ab", ExcludeChars: "ba"}, alphanumericChars},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(buildPool(tt.policy)); got != tt.want {
				t.Errorf("buildPool() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateRequiredCategories(t *testing.T) {
	checks := map[string]func(rune) bool{
		"uppercase": unicode.IsUpper,
		"lowercase": unicode.IsLower,
		"digit":     unicode.IsDigit,
		"symbol":    func(r rune) bool { return strings.ContainsRune(symbolChars, r) },
	}

	// Only lowercase is drawn; everything else has to be patched in.
	policy := Policy{
		Length:        4,
		UseLower:      true,
		RequireUpper:  true,
		RequireLower:  true,
		RequireDigit:  true,
		RequireSymbol: true,
	}

	for i := 0; i < 200; i++ {
		password, err := Generate(policy)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		for name, check := range checks {
			if !strings.ContainsFunc(password, check) {
				t.Errorf("password %q missing required %s", password, name)
			}
		}
	}
}

func TestGenerateRequiredCategoryInEveryMode(t *testing.T) {
	for _, mode := range []Mode{ModeRandom, ModePronounceable, ModePassphrase} {
		policy := Policy{Length: 12, Mode: mode, UseLower: true, RequireDigit: true, RequireSymbol: true}
		for i := 0; i < 50; i++ {
			password, err := Generate(policy)
			if err != nil {
				t.Fatalf("Generate(%s) unexpected error: %v", mode, err)
			}
			if !strings.ContainsAny(password, numberChars) {
				t.Errorf("%s password %q missing digit", mode, password)
			}
			if !strings.ContainsAny(password, symbolChars) {
				t.Errorf("%s password %q missing symbol", mode, password)
			}
		}
	}
}

func TestGeneratePronounceable(t *testing.T) {
	policy := Policy{Length: 13, Mode: ModePronounceable}

	for i := 0; i < 50; i++ {
		password, err := Generate(policy)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		for j, ch := range password {
			if !unicode.IsLetter(ch) {
				t.Fatalf("password %q has non-letter %q without digits or symbols enabled", password, ch)
			}
			if j%3 == 0 && !unicode.IsUpper(ch) {
				t.Errorf("password %q: position %d should be upper case", password, j)
			}
			if j%3 != 0 && !unicode.IsLower(ch) {
				t.Errorf("password %q: position %d should be lower case", password, j)
			}
		}
	}
}

func TestGeneratePronounceableInteriorDigitsAndSymbols(t *testing.T) {
	policy := Policy{Length: 10, Mode: ModePronounceable, UseDigits: true, UseSymbols: true}

	for i := 0; i < 50; i++ {
		password, err := Generate(policy)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		runes := []rune(password)
		if !unicode.IsLetter(runes[0]) || !unicode.IsLetter(runes[len(runes)-1]) {
			t.Errorf("password %q: first and last characters must stay letters", password)
		}
		if !strings.ContainsAny(password, symbolChars) {
			t.Errorf("password %q missing interior symbol", password)
		}
	}
}

func TestGeneratePassphrase(t *testing.T) {
	tests := []struct {
		length    int
		wantWords int
	}{
		{length: 4, wantWords: 3},
		{length: 16, wantWords: 4},
		{length: 28, wantWords: 7},
		{length: 200, wantWords: 10},
	}

	for _, tt := range tests {
		password, err := Generate(Policy{Length: tt.length, Mode: ModePassphrase})
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		words := strings.Split(password, " ")
		if len(words) != tt.wantWords {
			t.Errorf("length %d: got %d words in %q, want %d", tt.length, len(words), password, tt.wantWords)
		}
		for _, w := range words {
			if !unicode.IsUpper([]rune(w)[0]) {
				t.Errorf("word %q is not capitalised", w)
			}
			if !slices.Contains(passphraseWords, strings.ToLower(w)) {
				t.Errorf("word %q is not in the dictionary", w)
			}
		}
	}
}

func TestGeneratePassphraseSuffix(t *testing.T) {
	password, err := Generate(Policy{Length: 12, Mode: ModePassphrase, UseDigits: true, UseSymbols: true})
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	runes := []rune(password)
	n := len(runes)
	if !strings.ContainsRune(symbolChars, runes[n-1]) {
		t.Errorf("passphrase %q should end with a symbol", password)
	}
	if !unicode.IsDigit(runes[n-2]) || !unicode.IsDigit(runes[n-3]) {
		t.Errorf("passphrase %q should carry a two digit number before the symbol", password)
	}
}

func TestGenerateProducesUniquePasswords(t *testing.T) {
	policy := DefaultPolicy()
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		password, err := Generate(policy)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		seen[password] = true
	}
	if len(seen) < 99 {
		t.Errorf("expected at least 99 distinct passwords out of 100, got %d", len(seen))
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestGenerateRandomSourceFailure(t *testing.T) {
	orig := randReader
	randReader = failingReader{}
	t.Cleanup(func() { randReader = orig })

	for _, mode := range []Mode{ModeRandom, ModePronounceable, ModePassphrase} {
		if _, err := Generate(Policy{Length: 8, Mode: mode, UseLower: true}); err == nil {
			t.Errorf("Generate(%s) expected error from failing random source", mode)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"", ModeRandom, true},
		{"random", ModeRandom, true},
		{" Pronounceable ", ModePronounceable, true},
		{"PASSPHRASE", ModePassphrase, true},
		{"diceware", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMode(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
