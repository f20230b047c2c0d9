package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	launchcast "github.com/reoring/launchcast"
	"github.com/reoring/launchcast/spacex"
)

func newValidateCmd(a *app) *cobra.Command {
	var model, schema string
	var printDoc bool
	cmd := &cobra.Command{
		Use:   "validate <file|->",
		Short: "Validate a JSON document against a launch schema",
		Long:  `Reads a JSON document from a file (or stdin with "-") and checks it against a schema of the chosen model. With --print the normalized document is written to stdout.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := lookupModel(model)
			if err != nil {
				return err
			}
			if _, ok := reg.Lookup(schema); !ok {
				return fmt.Errorf("unknown schema %q in %s, want one of %s", schema, reg.Name(), strings.Join(reg.Names(), ", "))
			}
			dup, err := a.cfg.API.DuplicateKeySeverity()
			if err != nil {
				return err
			}
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			opt := launchcast.ParseOpt{
				MaxBytes:       a.cfg.API.MaxBytes,
				OnDuplicateKey: dup,
				OnWarn: func(path, msg string) {
					a.logger.Warn().Str("path", path).Msg(msg)
				},
			}
			v, err := launchcast.ParseReader(reg, schema, r, opt)
			if err != nil {
				return err
			}
			if printDoc {
				b, err := launchcast.EncodeJSON(reg, schema, v)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", b)
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "valid %s %s\n", reg.Name(), schema)
			return err
		},
	}
	cmd.Flags().StringVar(&model, "model", spacex.ModelV5, "Model: "+strings.Join(spacex.ModelNames(), " or "))
	cmd.Flags().StringVar(&schema, "schema", spacex.SchemaLaunch, "Schema name within the model")
	cmd.Flags().BoolVar(&printDoc, "print", false, "Print the normalized document")
	return cmd
}

func newSchemaCmd(a *app) *cobra.Command {
	var model string
	cmd := &cobra.Command{
		Use:   "schema <name>",
		Short: "Print a schema as JSON Schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := lookupModel(model)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				for _, n := range reg.Names() {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			}
			s, err := reg.JSONSchema(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), s)
		},
	}
	cmd.Flags().StringVar(&model, "model", spacex.ModelV5, "Model: "+strings.Join(spacex.ModelNames(), " or "))
	return cmd
}

func lookupModel(name string) (*launchcast.Registry, error) {
	reg, ok := spacex.Model(name)
	if !ok {
		return nil, fmt.Errorf("unknown model %q, want one of %s", name, strings.Join(spacex.ModelNames(), ", "))
	}
	return reg, nil
}
