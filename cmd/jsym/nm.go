package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/appsworld/go-joosym"
	"github.com/appsworld/go-joosym/types/joos"
)

type nmOptions struct {
	all   bool
	dwarf bool
	json  bool
}

type nmEntry struct {
	Address   uint64 `json:"address"`
	Name      string `json:"name"`
	Kind      string `json:"kind,omitempty"`
	Demangled string `json:"demangled,omitempty"`
	Error     string `json:"error,omitempty"`
}

func newNmCmd() *cobra.Command {
	var opts nmOptions
	cmd := &cobra.Command{
		Use:   "nm [flags] OBJECT",
		Short: "List the Joos symbols of an ELF or Mach-O object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := joosym.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			entries := []nmEntry{}
			if opts.dwarf {
				funcs, err := f.Functions()
				if err != nil {
					return err
				}
				for _, fn := range funcs {
					entries = append(entries, newNmEntry(fn.LowPC, fn.Name, fn.Entity, fn.Err))
				}
			} else {
				syms, err := f.Symbols()
				if err != nil {
					return err
				}
				for _, s := range syms {
					entries = append(entries, newNmEntry(s.Value, s.Name, s.Entity, s.Err))
				}
			}
			if !opts.all {
				entries = joosOnly(entries)
			}
			if opts.json {
				return printNmJSON(cmd.OutOrStdout(), entries)
			}
			return printNm(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "Include symbols that are not Joos symbols")
	cmd.Flags().BoolVar(&opts.dwarf, "dwarf", false, "List DWARF subprograms instead of the symbol table")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print JSON")
	return cmd
}

func newNmEntry(addr uint64, name string, e joos.Entity, err error) nmEntry {
	entry := nmEntry{Address: addr, Name: name}
	switch {
	case e != nil:
		entry.Kind = e.Kind().String()
		entry.Demangled = e.String()
	case err != nil:
		entry.Kind = "invalid"
		entry.Error = err.Error()
	}
	return entry
}

func joosOnly(entries []nmEntry) []nmEntry {
	out := []nmEntry{}
	for _, e := range entries {
		if e.Kind != "" {
			out = append(out, e)
		}
	}
	return out
}

// printNmJSON always writes an array, even for an object with no symbols.
func printNmJSON(w io.Writer, entries []nmEntry) error {
	if entries == nil {
		entries = []nmEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func printNm(w io.Writer, entries []nmEntry) error {
	for _, e := range entries {
		kind := e.Kind
		if kind == "" {
			kind = "-"
		}
		display := e.Name
		if e.Demangled != "" {
			display = e.Demangled
		}
		if _, err := fmt.Fprintf(w, "%016x %-11s %s\n", e.Address, kind, display); err != nil {
			return err
		}
	}
	return nil
}
