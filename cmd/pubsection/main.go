package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdUpdate  = "update"
	cmdCheck   = "check"
	cmdRender  = "render"
	cmdWatch   = "watch"
	cmdVersion = "version"
	cmdHelp    = "help"
)

// ErrUnknownCommand is returned for a first argument that names no command.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	env := DefaultEnv()

	if err := loadDotEnv(dotEnvFile); err != nil {
		fmt.Fprintf(env.Stderr, "warning: loading %s: %v\n", dotEnvFile, err)
	}

	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	setMaxProcs(hasVerboseFlag(os.Args[1:]), env.Stderr)

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, env)
	stop()

	os.Exit(code)
}

// setMaxProcs aligns GOMAXPROCS with the container CPU quota.
func setMaxProcs(verbose bool, w io.Writer) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
}

// hasVerboseFlag scans raw arguments before flag parsing.
func hasVerboseFlag(args []string) bool {
	return slices.Contains(args, "-v") || slices.Contains(args, "--verbose")
}

// notifyContext returns a context that is canceled when an interrupt
// or termination signal is received. Call stop() to release resources.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// isCommand reports whether s names a command.
func isCommand(s string) bool {
	switch s {
	case cmdUpdate, cmdCheck, cmdRender, cmdWatch, cmdVersion, cmdHelp:
		return true
	}
	return false
}

// splitCommand separates the command name from its arguments.
// No arguments, or a leading flag, means update.
func splitCommand(args []string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return cmdUpdate, args
	}
	return args[0], args[1:]
}

// runMain dispatches args (including the program name) and returns the exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}
	cmd, cmdArgs := splitCommand(rest)

	if !isCommand(cmd) {
		fmt.Fprintf(env.Stderr, "error: %v: %s\n", ErrUnknownCommand, cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch cmd {
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "pubsection %s\n", Version)
		return ExitSuccess
	case cmdHelp:
		return runHelp(cmdArgs, env)
	default:
		return runSectionCommand(ctx, cmd, cmdArgs, env)
	}
}
