package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/appsworld/go-joosym"
)

func newDemangleCmd() *cobra.Command {
	var simple bool
	cmd := &cobra.Command{
		Use:   "demangle SYMBOL...",
		Short: "Print the readable form of each symbol",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, sym := range args {
				text, err := demangle(sym, simple)
				if err != nil {
					// Unreadable symbols are shown as-is.
					fmt.Fprintln(cmd.OutOrStdout(), sym)
					fmt.Fprintf(cmd.ErrOrStderr(), "jsym: %v\n", err)
					failed++
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d symbols failed to demangle", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&simple, "simple", "s", false, "Omit the static qualifier and return type of methods")
	return cmd
}

func demangle(sym string, simple bool) (string, error) {
	if simple {
		return joosym.DemangleSimple(sym)
	}
	return joosym.Demangle(sym)
}

func newFiltCmd() *cobra.Command {
	var simple bool
	cmd := &cobra.Command{
		Use:   "filt [FILE]",
		Short: "Copy FILE (or stdin) to stdout, demangling every Joos symbol found",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("error opening file %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
			}
			return filter(in, cmd.OutOrStdout(), simple)
		},
	}
	cmd.Flags().BoolVarP(&simple, "simple", "s", false, "Omit the static qualifier and return type of methods")
	return cmd
}

func filter(r io.Reader, w io.Writer, simple bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	out := bufio.NewWriter(w)
	for scanner.Scan() {
		line := scanner.Text()
		if simple {
			line = joosym.DemangleSimpleBlob(line)
		} else {
			line = joosym.DemangleBlob(line)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return out.Flush()
}
