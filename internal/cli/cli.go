// Package cli parses the command line, runs the fetch pipeline and maps
// failures to exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"derrclan.com/ayah/internal/alquran"
	"derrclan.com/ayah/internal/config"
	"derrclan.com/ayah/internal/logging"
	"derrclan.com/ayah/internal/output"
	"derrclan.com/ayah/internal/verse"
)

// EnvFile is read from the working directory when present.
const EnvFile = ".env"

// CLI is the kong grammar for the ayah command.
type CLI struct {
	Reference string `arg:"" optional:"" help:"Verse in chapter:verse form, e.g. 2:255."`

	Translation      string        `short:"t" placeholder:"NAME" help:"Translation to include: ${translations}, or an edition identifier such as en.hilali."`
	Format           string        `short:"f" placeholder:"FORMAT" help:"Output format: arabic, translation or both (default both)."`
	ArabicOnly       bool          `help:"Print only the Arabic text."`
	TranslationOnly  bool          `help:"Print only the translation."`
	Output           string        `short:"o" placeholder:"PATH" help:"Save the verse to a file instead of printing it."`
	Timeout          time.Duration `placeholder:"DURATION" help:"Timeout for each HTTP attempt, e.g. 5s."`
	Retries          *int          `placeholder:"N" help:"Retries after a network failure."`
	ListTranslations bool          `help:"List available translations and exit."`
	LogLevel         string        `placeholder:"LEVEL" help:"Diagnostic log level: debug, info, warn or error."`
	NoColor          bool          `help:"Disable coloured messages."`
}

// Run executes the ayah command and returns the process exit code.
func Run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	var cli CLI
	exitCode := -1

	parser, err := kong.New(&cli,
		kong.Name("ayah"),
		kong.Description("Fetch a Quranic verse from AlQuran.cloud using chapter:verse format."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) {
			if exitCode < 0 {
				exitCode = code
			}
		}),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"translations": strings.Join(alquran.TranslationNames(), ", "),
		},
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return ExitFailure
	}

	_, err = parser.Parse(args)
	if exitCode >= 0 {
		// --help was handled by kong.
		return exitCode
	}

	r := newReporter(stderr, cli.NoColor)
	if err != nil {
		err = &usageError{msg: err.Error()}
	} else {
		err = run(ctx, &cli, getenv, stdout, r)
	}
	if err != nil {
		r.failure(err)
		return exitCodeFor(err)
	}
	return ExitOK
}

func run(ctx context.Context, cli *CLI, getenv func(string) string, stdout io.Writer, r *reporter) error {
	cfg, err := config.Load(getenv, EnvFile)
	if err != nil {
		return &usageError{msg: fmt.Sprintf("configuration: %s", err)}
	}
	if err := applyFlags(cfg, cli); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return &usageError{msg: err.Error()}
	}
	logger := slog.New(logging.NewTerminalHandler(r.w, level, cli.NoColor))

	if cli.ListTranslations {
		return listTranslations(stdout)
	}

	if cli.Reference == "" {
		return &usageError{msg: "missing verse reference, e.g. 'ayah 2:255'"}
	}
	ref, err := verse.ParseReference(cli.Reference)
	if err != nil {
		return err
	}

	mode, err := resolveMode(cli)
	if err != nil {
		return err
	}

	req := alquran.Request{Key: ref.String()}
	if mode.WantsArabic() {
		req.ArabicEdition = cfg.ArabicEdition
	}
	if mode.WantsTranslation() {
		edition, err := alquran.ResolveEdition(cfg.Translation)
		if err != nil {
			return err
		}
		req.TranslationEdition = edition
	}

	r.notice("Fetching verse %s...", ref)
	logger.Debug("fetching verse",
		"reference", ref.String(),
		"mode", mode.String(),
		"arabic_edition", req.ArabicEdition,
		"translation_edition", req.TranslationEdition,
		"base_url", cfg.BaseURL)

	client := alquran.NewClient(cfg.BaseURL,
		alquran.WithTimeout(cfg.Timeout),
		alquran.WithRetries(cfg.Retries, cfg.RetryDelay),
		alquran.WithLogger(logger),
	)
	payload, err := client.Fetch(ctx, req)
	if err != nil {
		return err
	}

	result, err := verse.Decode(ref, payload, mode)
	if err != nil {
		return err
	}
	text := verse.Format(result, mode)

	if err := output.Write(stdout, cli.Output, text); err != nil {
		return err
	}
	if cli.Output != "" {
		r.notice("Verse saved to '%s'", cli.Output)
	}

	logger.Info("verse delivered", "reference", ref.String(), "mode", mode.String())
	return nil
}

// applyFlags overrides cfg with the flags that were given.
func applyFlags(cfg *config.Config, cli *CLI) error {
	if cli.Translation != "" {
		cfg.Translation = cli.Translation
	}
	if cli.Timeout < 0 {
		return &usageError{msg: fmt.Sprintf("--timeout must be positive, got %s", cli.Timeout)}
	}
	if cli.Timeout > 0 {
		cfg.Timeout = cli.Timeout
	}
	if cli.Retries != nil {
		if *cli.Retries < 0 {
			return &usageError{msg: fmt.Sprintf("--retries must not be negative, got %d", *cli.Retries)}
		}
		cfg.Retries = *cli.Retries
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(cli.LogLevel)
	}
	return nil
}

// resolveMode combines --format, --arabic-only and --translation-only.
// At most one of them may be given.
func resolveMode(cli *CLI) (verse.Mode, error) {
	given := 0
	for _, set := range []bool{cli.Format != "", cli.ArabicOnly, cli.TranslationOnly} {
		if set {
			given++
		}
	}
	if given > 1 {
		return verse.ModeBoth, &usageError{msg: "--format, --arabic-only and --translation-only can't be used together"}
	}

	switch {
	case cli.ArabicOnly:
		return verse.ModeArabic, nil
	case cli.TranslationOnly:
		return verse.ModeTranslation, nil
	}

	mode, err := verse.ParseMode(strings.ToLower(cli.Format))
	if err != nil {
		return verse.ModeBoth, &usageError{msg: err.Error()}
	}
	return mode, nil
}

func listTranslations(w io.Writer) error {
	var b strings.Builder
	b.WriteString("Available translations:\n")
	for _, name := range alquran.TranslationNames() {
		fmt.Fprintf(&b, "  - %s (%s)\n", name, alquran.Translations[name])
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("%w: failed to write to stdout: %w", output.ErrIO, err)
	}
	return nil
}

type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func isUsage(err error) bool {
	var u *usageError
	return errors.As(err, &u)
}
