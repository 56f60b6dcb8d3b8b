package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appsworld/go-joosym"
	"github.com/appsworld/go-joosym/types/joos"
)

type mangleOptions struct {
	signature  string
	static     bool
	returnType string
	params     []string
	global     string
	class      bool
	vtable     bool
	vtableCtor bool
}

func newMangleCmd() *cobra.Command {
	var opts mangleOptions
	cmd := &cobra.Command{
		Use:   "mangle [flags] NAME",
		Short: "Print the symbol for a method, static field, class or vtable",
		Example: `  jsym mangle --static --return int --param boolean Foo.bar
  jsym mangle --signature "static int Foo.bar(boolean)"
  jsym mangle --global "int[]" Foo.table
  jsym mangle --vtable java.util.Vector`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.signature != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, err := opts.entity(args)
			if err != nil {
				return err
			}
			sym, err := joosym.Mangle(entity)
			if err != nil {
				return fmt.Errorf("cannot mangle %s: %w", entity, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), sym)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.signature, "signature", "", "Readable method signature, e.g. \"static int Foo.bar(boolean)\"")
	flags.BoolVar(&opts.static, "static", false, "Method is static")
	flags.StringVarP(&opts.returnType, "return", "r", "void", "Method return type")
	flags.StringArrayVarP(&opts.params, "param", "p", nil, "Method parameter type (repeatable, in order)")
	flags.StringVar(&opts.global, "global", "", "Mangle a static field of the given type")
	flags.BoolVar(&opts.class, "class", false, "Mangle a class symbol")
	flags.BoolVar(&opts.vtable, "vtable", false, "Mangle a vtable symbol")
	flags.BoolVar(&opts.vtableCtor, "vtable-ctor", false, "Mangle a vtable constructor symbol")
	cmd.MarkFlagsMutuallyExclusive("signature", "global", "class", "vtable", "vtable-ctor")
	return cmd
}

func (o *mangleOptions) entity(args []string) (joos.Entity, error) {
	if o.signature != "" {
		sig, err := joos.ParseSignature(o.signature)
		if err != nil {
			return nil, err
		}
		return sig, nil
	}
	name := joos.ParseQualifiedName(args[0])
	switch {
	case o.class:
		return &joos.Class{Name: name}, nil
	case o.vtable:
		return &joos.VTable{Name: name}, nil
	case o.vtableCtor:
		return &joos.VTableCtor{Name: name}, nil
	case o.global != "":
		typ, err := joos.ParseType(o.global)
		if err != nil {
			return nil, err
		}
		return &joos.Global{Name: name, Type: typ}, nil
	}
	ret, err := joos.ParseType(o.returnType)
	if err != nil {
		return nil, fmt.Errorf("return type: %w", err)
	}
	sig := &joos.Signature{Name: name, Static: o.static, Return: ret}
	for _, p := range o.params {
		typ, err := joos.ParseType(p)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", p, err)
		}
		sig.Params = append(sig.Params, typ)
	}
	return sig, nil
}
