package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pubsection [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Keep the Featured Publications section of a page in sync with a data file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  update     Render the data file and patch the page (default)")
	fmt.Fprintln(w, "  check      Exit 6 if the page is out of date, without writing")
	fmt.Fprintln(w, "  render     Print the rendered section to stdout")
	fmt.Fprintln(w, "  watch      Update the page whenever the data file changes")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pubsection help <command>' for details on a specific command.")
}

// printCommandUsage prints usage for one of the section commands.
func printCommandUsage(w io.Writer, cmd string) {
	switch cmd {
	case cmdUpdate:
		fmt.Fprintln(w, "Usage: pubsection update [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Render the data file and replace the marked region of the target page.")
		fmt.Fprintln(w, "The page is rewritten atomically, and only when its content changes.")
	case cmdCheck:
		fmt.Fprintln(w, "Usage: pubsection check [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Verify the target page matches the data file. Never writes.")
		fmt.Fprintln(w, "Exits 6 when an update would change the page.")
	case cmdRender:
		fmt.Fprintln(w, "Usage: pubsection render [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Print the rendered section, markers included, to stdout.")
		fmt.Fprintln(w, "The target page is not read.")
	case cmdWatch:
		fmt.Fprintln(w, "Usage: pubsection watch [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Update once, then again after every change to the data file.")
		fmt.Fprintln(w, "Errors are reported and watching continues. Stop with Ctrl-C.")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Files:")
	fmt.Fprintln(w, "  -r, --root <dir>          Site root for relative paths (default \".\")")
	fmt.Fprintln(w, "  -d, --data <path>         Data file (default data/featured_publications.json)")
	fmt.Fprintln(w, "  -t, --target <path>       Page to patch (default index.html)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markers:")
	fmt.Fprintln(w, "      --start-marker <s>    Region start (default \"<!-- Publications start -->\")")
	fmt.Fprintln(w, "      --end-marker <s>      Region end (default \"<!-- Publications end -->\")")
	fmt.Fprintln(w, "      --allow-duplicate-markers")
	fmt.Fprintln(w, "                            Patch the first region when markers repeat")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	if cmd == cmdUpdate {
		fmt.Fprintln(w, "  -n, --dry-run             Report what would change without writing")
	}
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  PUBSECTION_CONFIG, PUBSECTION_ROOT, PUBSECTION_DATA, PUBSECTION_TARGET")
	fmt.Fprintln(w, "  A .env file in the working directory is loaded first.")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case cmdUpdate, cmdCheck, cmdRender, cmdWatch:
		printCommandUsage(env.Stdout, args[0])
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: pubsection version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: pubsection help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
