package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/securepass/securepass-go/internal/crypto"
	"github.com/securepass/securepass-go/internal/model"
	"github.com/securepass/securepass-go/internal/repository"
)

var errUsage = errors.New("invalid arguments, run securepass help")

func (a *app) generate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	length := fs.Int("length", 0, "password length")
	mode := fs.String("mode", "", "random, pronounceable or passphrase")
	quantity := fs.Int("quantity", 0, "number of passwords (1-50)")
	upper := fs.Bool("upper", true, "include uppercase letters")
	lower := fs.Bool("lower", true, "include lowercase letters")
	digits := fs.Bool("digits", true, "include digits")
	symbols := fs.Bool("symbols", true, "include symbols")
	similar := fs.Bool("exclude-similar", false, "exclude il1Lo0O")
	ambiguous := fs.Bool("exclude-ambiguous", false, "exclude brackets, quotes and punctuation")
	custom := fs.String("custom", "", "draw only from these characters")
	exclude := fs.String("exclude", "", "never use these characters")
	minLength := fs.Int("min-length", 0, "pad shorter passwords to this length")
	reqUpper := fs.Bool("require-upper", false, "require an uppercase letter")
	reqLower := fs.Bool("require-lower", false, "require a lowercase letter")
	reqDigit := fs.Bool("require-digit", false, "require a digit")
	reqSymbol := fs.Bool("require-symbol", false, "require a symbol")
	saveTo := fs.String("save", "", "also write a report of the passwords to this file")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	// Only flags given on the command line override the stored settings.
	req := model.GenerateRequest{Length: *length, Mode: *mode, Quantity: *quantity}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "upper":
			req.Uppercase = upper
		case "lower":
			req.Lowercase = lower
		case "digits":
			req.Numbers = digits
		case "symbols":
			req.Symbols = symbols
		case "exclude-similar":
			req.ExcludeSimilar = similar
		case "exclude-ambiguous":
			req.ExcludeAmbiguous = ambiguous
		case "custom":
			req.CustomChars = custom
		case "exclude":
			req.ExcludeChars = exclude
		case "min-length":
			req.MinLength = minLength
		case "require-upper":
			req.RequireUppercase = reqUpper
		case "require-lower":
			req.RequireLowercase = reqLower
		case "require-digit":
			req.RequireNumbers = reqDigit
		case "require-symbol":
			req.RequireSymbols = reqSymbol
		}
	})

	resp, err := a.generator.GenerateBatch(ctx, req)
	if err != nil {
		return err
	}
	renderPasswords(a.stdout, resp.Passwords)

	if *saveTo != "" {
		return savePasswordReport(*saveTo, resp.Passwords)
	}
	return nil
}

func savePasswordReport(path string, passwords []model.GeneratedPassword) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer f.Close()

	for i, p := range passwords {
		if i > 0 {
			fmt.Fprintln(f)
		}
		if err := repository.WritePasswordReport(f, p); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return f.Close()
}

func (a *app) score(args []string) error {
	var password string
	switch len(args) {
	case 0:
		line, err := readLine(a.stdin)
		if err != nil {
			return err
		}
		password = line
	case 1:
		password = args[0]
	default:
		return errUsage
	}

	resp, err := a.generator.Assess(model.StrengthRequest{Password: password})
	if err != nil {
		return err
	}
	renderStrength(a.stdout, resp)
	return nil
}

func (a *app) historyCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		renderHistory(a.stdout, a.history.List())
		return nil
	case "clear":
		a.history.Clear(ctx)
		fmt.Fprintln(a.stdout, "History cleared")
		return nil
	case "export":
		fs := flag.NewFlagSet("history export", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		out := fs.String("o", "", "write CSV to this file instead of stdout")
		if err := fs.Parse(args[1:]); err != nil {
			return fmt.Errorf("history export: %w", err)
		}
		if *out == "" {
			return a.history.ExportCSV(a.stdout)
		}
		return a.exportHistoryFile(*out)
	}
	return errUsage
}

func (a *app) exportHistoryFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating export: %w", err)
	}
	defer f.Close()

	if err := a.history.ExportCSV(f); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "History exported to %s\n", path)
	return nil
}

func (a *app) settingsCmd(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "show" {
		renderSettings(a.stdout, a.settings.Get())
		return nil
	}
	if args[0] != "set" || len(args) < 2 {
		return errUsage
	}

	err := a.settings.Patch(ctx, func(cur *model.Settings) error {
		updated, err := applyAssignments(*cur, args[1:])
		if err != nil {
			return err
		}
		*cur = updated
		return nil
	})
	if err != nil {
		return err
	}
	renderSettings(a.stdout, a.settings.Get())
	return nil
}

// applyAssignments sets key=value pairs on s using its JSON key names. The
// value is parsed according to the type the key already holds.
func applyAssignments(s model.Settings, assignments []string) (model.Settings, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return s, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return s, err
	}

	for _, as := range assignments {
		key, value, ok := strings.Cut(as, "=")
		if !ok {
			return s, fmt.Errorf("expected key=value, got %q", as)
		}
		current, known := fields[key]
		if !known {
			return s, fmt.Errorf("unknown setting %q", key)
		}

		switch current.(type) {
		case bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return s, fmt.Errorf("setting %s: %w", key, err)
			}
			fields[key] = b
		case float64:
			n, err := strconv.Atoi(value)
			if err != nil {
				return s, fmt.Errorf("setting %s: %w", key, err)
			}
			fields[key] = n
		default:
			fields[key] = value
		}
	}

	raw, err = json.Marshal(fields)
	if err != nil {
		return s, err
	}
	var out model.Settings
	if err := json.Unmarshal(raw, &out); err != nil {
		return s, err
	}
	return out, nil
}

func hashPassphrase(stdin io.Reader, stdout io.Writer) error {
	passphrase, err := readLine(stdin)
	if err != nil {
		return err
	}
	if passphrase == "" {
		return errors.New("passphrase is required")
	}

	hash, err := crypto.HashPassphrase(passphrase)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, hash)
	return nil
}

func readLine(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", nil
	}
	return strings.TrimRight(sc.Text(), "\r"), nil
}
