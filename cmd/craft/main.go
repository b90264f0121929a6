package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	cerrors "github.com/vango-dev/craft/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┬─┐┌─┐┌─┐┌┬┐
  │  ├┬┘├─┤├┤  │
  └─┘┴└─┴ ┴└   ┴
`

func main() {
	printer := cerrors.NewPrinter(os.Stderr)
	if err := newRootCmd(printer).Execute(); err != nil {
		printer.Print(err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Command errors are left to the
// caller, which reports them through printer; the --no-color flag and the
// configured log format shape that output.
func newRootCmd(printer *cerrors.Printer) *cobra.Command {
	flags := &globalFlags{printer: printer}

	rootCmd := &cobra.Command{
		Use:   "craft",
		Short: "Paint UI components from templates",
		Long: `craft builds HTML from registered components and templates.

Templates mix native tags with component names:

  <Dialog open>
    <.Title>Delete file?</.Title>
    <.Actions><Button variant="danger">Delete</Button></.Actions>
  </Dialog>

Commands paint templates to stdout, list the registered components,
serve a live preview, and publish painted pages to S3.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			printer.SetColor(useColor(flags.noColor, os.Stderr))
		},
	}
	flags.bind(rootCmd)

	rootCmd.AddCommand(
		initCmd(),
		paintCmd(flags),
		componentsCmd(flags),
		serveCmd(flags),
		publishCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

// useColor reports whether diagnostics on f get ANSI colors: only on a
// terminal, and never with --no-color or NO_COLOR set.
func useColor(noColor bool, f *os.File) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
