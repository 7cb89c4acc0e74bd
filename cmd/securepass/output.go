package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/securepass/securepass-go/internal/model"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderPasswords(w io.Writer, passwords []model.GeneratedPassword) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Password", "Length", "Strength", "Entropy", "Crack time"})
	for i, p := range passwords {
		t.AppendRow(table.Row{i + 1, p.Password, p.Length, p.Strength, fmt.Sprintf("%.2f bits", p.EntropyBits), p.CrackTime})
	}
	t.Render()
}

func renderStrength(w io.Writer, s model.StrengthResponse) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Property", "Value"})
	t.AppendRows([]table.Row{
		{"Length", s.Length},
		{"Strength", s.Strength},
		{"Score", fmt.Sprintf("%.1f", s.Score)},
		{"Entropy", fmt.Sprintf("%.2f bits", s.EntropyBits)},
		{"Crack time", s.CrackTime},
		{"Uppercase", yesNo(s.CharacterTypes.Uppercase)},
		{"Lowercase", yesNo(s.CharacterTypes.Lowercase)},
		{"Numbers", yesNo(s.CharacterTypes.Numbers)},
		{"Symbols", yesNo(s.CharacterTypes.Symbols)},
	})
	t.Render()
}

func renderHistory(w io.Writer, entries []model.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history yet")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Date", "Password", "Length", "Strength"})
	// Newest first, as the history list is displayed.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		t.AppendRow(table.Row{e.Date, e.Password, e.Length, e.Strength})
	}
	t.Render()
}

func renderSettings(w io.Writer, s model.Settings) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Setting", "Value"})
	t.AppendRows([]table.Row{
		{"length", s.Length},
		{"min_length", s.MinLength},
		{"quantity", s.Quantity},
		{"uppercase", s.Uppercase},
		{"lowercase", s.Lowercase},
		{"numbers", s.Numbers},
		{"symbols", s.Symbols},
		{"exclude_similar", s.ExcludeSimilar},
		{"exclude_ambiguous", s.ExcludeAmbiguous},
		{"custom_chars", s.CustomChars},
		{"exclude_chars", s.ExcludeChars},
		{"require_uppercase", s.RequireUppercase},
		{"require_lowercase", s.RequireLowercase},
		{"require_numbers", s.RequireNumbers},
		{"require_symbols", s.RequireSymbols},
		{"pronounceable", s.Pronounceable},
		{"passphrase", s.Passphrase},
		{"save_history", s.SaveHistory},
		{"max_history", s.MaxHistory},
		{"theme", s.Theme},
		{"strength_indicator", s.StrengthIndicator},
		{"copy_on_generate", s.CopyOnGenerate},
		{"auto_save", s.AutoSave},
	})
	t.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
