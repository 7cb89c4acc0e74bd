package model

// Settings is the persisted option set. Keys missing from the stored JSON
// keep the values from DefaultSettings.
type Settings struct {
	Length           int    `json:"length"`
	Uppercase        bool   `json:"uppercase"`
	Lowercase        bool   `json:"lowercase"`
	Numbers          bool   `json:"numbers"`
	Symbols          bool   `json:"symbols"`
	ExcludeSimilar   bool   `json:"exclude_similar"`
	ExcludeAmbiguous bool   `json:"exclude_ambiguous"`
	CustomChars      string `json:"custom_chars"`
	ExcludeChars     string `json:"exclude_chars"`
	Quantity         int    `json:"quantity"`
	Pronounceable    bool   `json:"pronounceable"`
	Passphrase       bool   `json:"passphrase"`

	MinLength        int  `json:"min_length"`
	RequireUppercase bool `json:"require_uppercase"`
	RequireLowercase bool `json:"require_lowercase"`
	RequireNumbers   bool `json:"require_numbers"`
	RequireSymbols   bool `json:"require_symbols"`

	Theme             string `json:"theme"`
	StrengthIndicator bool   `json:"strength_indicator"`
	CopyOnGenerate    bool   `json:"copy_on_generate"`
	AutoSave          bool   `json:"auto_save"`
	SaveHistory       bool   `json:"save_history"`
	MaxHistory        int    `json:"max_history"`
}

// DefaultSettings returns the first-run option set.
func DefaultSettings() Settings {
	return Settings{
		Length:            16,
		Uppercase:         true,
		Lowercase:         true,
		Numbers:           true,
		Symbols:           true,
		Quantity:          1,
		MinLength:         8,
		Theme:             "dark",
		StrengthIndicator: true,
		SaveHistory:       true,
		MaxHistory:        20,
	}
}
