package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appsworld/go-joosym"
)

type parityOptions struct {
	command string
	cwd     string
	emitGo  bool
}

func main() {
	var opts parityOptions
	rootCmd := &cobra.Command{
		Use:           "jsymparity",
		Short:         "Check that every Joos symbol a toolchain command prints decodes and re-encodes unchanged",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParity(cmd.OutOrStdout(), opts)
		},
	}
	rootCmd.Flags().StringVar(&opts.command, "cmd", "nm -P output/*.o", "command whose output lists compiled symbols")
	rootCmd.Flags().StringVar(&opts.cwd, "cwd", ".", "working directory where the command should run")
	rootCmd.Flags().BoolVar(&opts.emitGo, "emit-go", true, "print Go test case entries for failing symbols")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runParity(w io.Writer, opts parityOptions) error {
	fmt.Fprintf(w, "Running %q in %s\n", opts.command, opts.cwd)
	output, err := runCommand(opts.command, opts.cwd)
	if err != nil {
		return fmt.Errorf("command failed: %w\n%s", err, output)
	}

	symbols := extractSymbols(output)
	fmt.Fprintf(w, "Found %d Joos symbols\n", len(symbols))

	failures := checkSymbols(symbols)
	fmt.Fprintf(w, "Failing symbols (%d):\n", len(failures))
	for _, f := range failures {
		fmt.Fprintf(w, "   %s: %s\n", f.symbol, f.reason)
	}

	if opts.emitGo && len(failures) > 0 {
		fmt.Fprintln(w, "\nGo test cases:")
		for _, f := range failures {
			fmt.Fprintf(w, "\t\t{%q, false},\n", f.symbol)
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d of %d symbols failed", len(failures), len(symbols))
	}
	return nil
}

func runCommand(command, cwd string) (string, error) {
	cmd := exec.Command("bash", "-lc", command)
	cmd.Dir = cwd
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return buf.String(), err
}

// extractSymbols returns the distinct Joos symbols appearing as whitespace
// separated fields of output, in first-seen order.
func extractSymbols(output string) []string {
	seen := make(map[string]bool)
	var result []string
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		for _, field := range strings.Fields(scanner.Text()) {
			sym := strings.TrimRight(field, ":,")
			if !joosym.IsMangled(sym) || seen[sym] {
				continue
			}
			seen[sym] = true
			result = append(result, sym)
		}
	}
	return result
}

type failure struct {
	symbol string
	reason string
}

func checkSymbols(symbols []string) []failure {
	var failures []failure
	for _, sym := range symbols {
		e, err := joosym.DemangleSymbol(sym)
		if err != nil {
			failures = append(failures, failure{sym, err.Error()})
			continue
		}
		back, err := joosym.Mangle(e)
		if err != nil {
			failures = append(failures, failure{sym, "re-encode: " + err.Error()})
			continue
		}
		if back != sym {
			failures = append(failures, failure{sym, fmt.Sprintf("re-encoded as %s", back)})
		}
	}
	return failures
}
