package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	pubsection "github.com/alnah/go-pubsection"
	"github.com/alnah/go-pubsection/internal/config"
	"github.com/alnah/go-pubsection/internal/fileutil"
	"github.com/alnah/go-pubsection/internal/hints"
)

// runSectionCommand runs update, check, render or watch and returns the exit code.
func runSectionCommand(ctx context.Context, cmd string, args []string, env *Environment) int {
	flags, err := parseFlags(cmd, args, env.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		reportError(env.Stderr, err, nil, "")
		printCommandUsage(env.Stderr, cmd)
		return exitCodeFor(err)
	}

	cfg, cfgName, err := resolveConfig(flags, loadEnvConfig())
	if err != nil {
		reportError(env.Stderr, err, nil, cfgName)
		return exitCodeFor(err)
	}

	logger := newLogger(env.Stderr, cfg.Log, flags.common)
	warnUnknownEnvVars(logger)
	logger.Debug("configuration resolved",
		"config", cfgName,
		"data", cfg.DataPath(),
		"target", cfg.TargetPath(),
		"allowDuplicateMarkers", cfg.Markers.AllowDuplicates,
	)

	svc := pubsection.New(
		pubsection.WithLogger(logger),
		pubsection.WithMarkers(pubsection.Markers{Start: cfg.Markers.Start, End: cfg.Markers.End}),
		pubsection.WithAllowDuplicateMarkers(cfg.Markers.AllowDuplicates),
	)
	req := pubsection.UpdateRequest{DataPath: cfg.DataPath(), DocumentPath: cfg.TargetPath()}
	out := output{w: env.Stdout, now: env.Now, quiet: flags.common.quiet, verbose: flags.common.verbose}

	switch cmd {
	case cmdRender:
		err = runRender(ctx, svc, req.DataPath, env.Stdout)
	case cmdWatch:
		err = runWatch(ctx, svc, req, logger, out, env.WatchDebounce)
	case cmdCheck:
		req.Mode = pubsection.ModeCheck
		err = runUpdate(ctx, svc, req, out)
	default:
		if flags.dryRun {
			req.Mode = pubsection.ModeDryRun
		}
		err = runUpdate(ctx, svc, req, out)
	}

	if err != nil {
		reportError(env.Stderr, err, cfg, cfgName)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// output prints user-facing result lines.
type output struct {
	w       io.Writer
	now     func() time.Time
	quiet   bool
	verbose bool
}

// runUpdate performs one update and prints its outcome.
func runUpdate(ctx context.Context, svc *pubsection.Service, req pubsection.UpdateRequest, out output) error {
	start := out.now()
	result, err := svc.Update(ctx, req)
	if err != nil {
		return err
	}
	out.result(req, result, out.now().Sub(start))
	return nil
}

// result prints one line describing what an update did.
func (o output) result(req pubsection.UpdateRequest, r *pubsection.UpdateResult, elapsed time.Duration) {
	if o.quiet {
		return
	}

	var line string
	switch {
	case r.Written:
		line = "Updated " + req.DocumentPath
	case r.Changed && req.Mode == pubsection.ModeDryRun:
		line = "Would update " + req.DocumentPath
	default:
		line = req.DocumentPath + " is up to date"
	}
	line += " (" + pluralEntries(r.Entries) + ")"
	if o.verbose {
		line += " in " + elapsed.Round(time.Millisecond).String()
	}

	fmt.Fprintln(o.w, line)
}

// pluralEntries formats an entry count.
func pluralEntries(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}

// runRender prints the rendered section for the data file at dataPath.
func runRender(ctx context.Context, svc *pubsection.Service, dataPath string, w io.Writer) error {
	set, err := pubsection.LoadPublicationSet(dataPath)
	if err != nil {
		return err
	}
	section, err := svc.Render(ctx, set)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, section)
	return err
}

// newLogger builds the diagnostic logger on w.
// --verbose forces debug and --quiet forces error, over log.level.
func newLogger(w io.Writer, cfg config.LogConfig, common commonFlags) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case config.LogLevelDebug:
		level = slog.LevelDebug
	case config.LogLevelWarn:
		level = slog.LevelWarn
	case config.LogLevelError:
		level = slog.LevelError
	}
	if common.verbose {
		level = slog.LevelDebug
	}
	if common.quiet {
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.Format) == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// reportError prints err with an actionable hint when one applies.
func reportError(w io.Writer, err error, cfg *config.Config, cfgName string) {
	fmt.Fprintf(w, "error: %v%s\n", err, hintFor(err, cfg, cfgName))
}

// hintFor picks the hint matching err. cfg may be nil before config resolves.
func hintFor(err error, cfg *config.Config, cfgName string) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		var searched []string
		if cfgName != "" && !fileutil.IsFilePath(cfgName) {
			searched = config.SearchPaths(cfgName)
		}
		return hints.ForConfigNotFound(searched)
	case errors.Is(err, pubsection.ErrOutOfDate):
		return hints.ForOutOfDate()
	case errors.Is(err, pubsection.ErrMarkersNotFound):
		if cfg == nil {
			cfg = config.DefaultConfig()
		}
		return hints.ForMarkersNotFound(cfg.Markers.Start, cfg.Markers.End)
	case errors.Is(err, pubsection.ErrDuplicateMarkers):
		return hints.ForDuplicateMarkers()
	case errors.Is(err, pubsection.ErrReadData) && errors.Is(err, os.ErrNotExist):
		return hints.ForDataNotFound()
	case errors.Is(err, pubsection.ErrMissingField), errors.Is(err, pubsection.ErrInvalidField):
		return hints.ForSchema()
	case errors.Is(err, pubsection.ErrWriteDocument):
		return hints.ForWriteDocument()
	}
	return ""
}
