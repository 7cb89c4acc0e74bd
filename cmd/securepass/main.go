// Command securepass generates and scores passwords from the terminal,
// sharing settings and history with the HTTP server.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/securepass/securepass-go/internal/config"
	"github.com/securepass/securepass-go/internal/model"
	"github.com/securepass/securepass-go/internal/repository"
	"github.com/securepass/securepass-go/internal/service"
)

const usage = `usage: securepass <command> [flags]

commands:
  generate         generate passwords using the stored settings
  score            rate a password (reads stdin when no argument is given)
  history          list | clear | export [-o file]
  settings         show | set key=value...
  hash-passphrase  print the Argon2id hash of a passphrase read from stdin
`

type app struct {
	settings  *service.SettingsService
	history   *service.HistoryService
	generator service.PasswordService

	stdin  io.Reader
	stdout io.Writer
	close  func() error
}

func main() {
	_ = godotenv.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cmd, rest := args[0], args[1:]
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		fmt.Fprint(stdout, usage)
		return 0
	}
	if cmd == "hash-passphrase" {
		if err := hashPassphrase(stdin, stdout); err != nil {
			fmt.Fprintf(stderr, "securepass: %v\n", err)
			return 1
		}
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "securepass: %v\n", err)
		return 1
	}
	a := newApp(ctx, cfg, stdin, stdout)
	defer a.close()

	var cmdErr error
	switch cmd {
	case "generate":
		cmdErr = a.generate(ctx, rest)
	case "score":
		cmdErr = a.score(rest)
	case "history":
		cmdErr = a.historyCmd(ctx, rest)
	case "settings":
		cmdErr = a.settingsCmd(ctx, rest)
	default:
		fmt.Fprintf(stderr, "securepass: unknown command %q\n\n%s", cmd, usage)
		return 2
	}

	if cmdErr != nil {
		fmt.Fprintf(stderr, "securepass: %v\n", cmdErr)
		return 1
	}
	return 0
}

func newApp(ctx context.Context, cfg config.Config, stdin io.Reader, stdout io.Writer) *app {
	historyStore, closeHistory := repository.OpenHistoryStore(ctx, cfg)

	settings := service.NewSettingsService(ctx, repository.NewSettingsFile(cfg.SettingsPath))
	history := service.NewHistoryService(ctx, historyStore, settings.Get().MaxHistory)
	settings.OnUpdate(func(ctx context.Context, s model.Settings) {
		history.SetMax(ctx, s.MaxHistory)
	})

	return &app{
		settings:  settings,
		history:   history,
		generator: service.NewGeneratorService(settings, history),
		stdin:     stdin,
		stdout:    stdout,
		close:     closeHistory,
	}
}
