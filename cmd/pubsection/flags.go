package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks command-line mistakes: bad flags or unexpected arguments.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pathFlags locate the site files.
type pathFlags struct {
	root   string
	data   string
	target string
}

// markerFlags override the sentinel comments.
type markerFlags struct {
	start           string
	end             string
	allowDuplicates bool
}

// cliFlags holds all flags for the update, check, render and watch commands.
type cliFlags struct {
	common  commonFlags
	paths   pathFlags
	markers markerFlags
	dryRun  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addPathFlags adds file location flags to a FlagSet.
func addPathFlags(fs *flag.FlagSet, f *pathFlags) {
	fs.StringVarP(&f.root, "root", "r", "", "site root for relative paths (default \".\")")
	fs.StringVarP(&f.data, "data", "d", "", "publications data file (.json, .yaml)")
	fs.StringVarP(&f.target, "target", "t", "", "HTML document to patch")
}

// addMarkerFlags adds sentinel comment flags to a FlagSet.
func addMarkerFlags(fs *flag.FlagSet, f *markerFlags) {
	fs.StringVar(&f.start, "start-marker", "", "comment opening the generated region")
	fs.StringVar(&f.end, "end-marker", "", "comment closing the generated region")
	fs.BoolVar(&f.allowDuplicates, "allow-duplicate-markers", false, "patch only the first region when markers repeat")
}

// parseFlags parses flags for cmd and rejects positional arguments.
// A request for help returns flag.ErrHelp unwrapped.
func parseFlags(cmd string, args []string, usage io.Writer) (*cliFlags, error) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &cliFlags{}

	addCommonFlags(fs, &f.common)
	addPathFlags(fs, &f.paths)
	addMarkerFlags(fs, &f.markers)
	if cmd == cmdUpdate {
		fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "report what would change without writing")
	}

	fs.Usage = func() { printCommandUsage(usage, cmd) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}

	return f, nil
}
