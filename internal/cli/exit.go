package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"derrclan.com/ayah/internal/alquran"
	"derrclan.com/ayah/internal/logging"
	"derrclan.com/ayah/internal/output"
	"derrclan.com/ayah/internal/verse"
)

// Exit codes, one per failure kind.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitNetwork  = 3
	ExitHTTP     = 4
	ExitResponse = 5
	ExitIO       = 6
)

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case isUsage(err),
		errors.Is(err, verse.ErrInvalidFormat),
		errors.Is(err, verse.ErrChapterOutOfRange),
		errors.Is(err, verse.ErrVerseOutOfRange),
		errors.Is(err, alquran.ErrUnknownEdition):
		return ExitUsage
	case errors.Is(err, alquran.ErrNetwork):
		return ExitNetwork
	case errors.Is(err, alquran.ErrHTTP):
		return ExitHTTP
	case errors.Is(err, alquran.ErrMalformedResponse),
		errors.Is(err, verse.ErrMissingField):
		return ExitResponse
	case errors.Is(err, output.ErrIO):
		return ExitIO
	}
	return ExitFailure
}

// reporter writes user-facing messages to the error stream.
type reporter struct {
	w     io.Writer
	red   *color.Color
	faint *color.Color
}

func newReporter(w io.Writer, noColor bool) *reporter {
	r := &reporter{
		w:     w,
		red:   color.New(color.FgRed, color.Bold),
		faint: color.New(color.FgHiBlack),
	}
	if !logging.UseColor(w, noColor) {
		r.red.DisableColor()
		r.faint.DisableColor()
	} else {
		r.red.EnableColor()
		r.faint.EnableColor()
	}
	return r
}

func (r *reporter) notice(format string, args ...any) {
	r.faint.Fprintf(r.w, format+"\n", args...)
}

func (r *reporter) failure(err error) {
	title, hint := describe(err)
	r.red.Fprintf(r.w, "%s: ", title)
	fmt.Fprintln(r.w, err)
	if hint != "" {
		fmt.Fprintln(r.w, hint)
	}
}

func describe(err error) (title, hint string) {
	switch exitCodeFor(err) {
	case ExitUsage:
		return "Input Error", "Use --help for usage information."
	case ExitNetwork:
		return "Network Error", "Please check your internet connection and try again."
	case ExitHTTP:
		return "API Error", ""
	case ExitResponse:
		return "Response Error", "The API returned an unexpected response, please try again later."
	case ExitIO:
		return "Output Error", ""
	}
	if errors.Is(err, context.Canceled) {
		return "Cancelled", "Operation cancelled by user."
	}
	return "Error", ""
}
