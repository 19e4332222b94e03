package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/llehouerou/go-mcd/introspection"
	"github.com/llehouerou/go-mcd/schema"
)

var errBreakingDrift = errors.New("live schema has breaking changes")

func newSchemaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect the schema the client is built against",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "print",
			Short: "Print the embedded schema SDL",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := io.WriteString(a.out, schema.SDL())
				return err
			},
		},
		&cobra.Command{
			Use:   "validate [FILE]",
			Short: "Validate a GraphQL document against the embedded schema",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				doc, err := a.readDocument(args)
				if err != nil {
					return err
				}
				if err := schema.ValidateOperation(doc); err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.out, "ok")
				return err
			},
		},
		newSchemaDiffCmd(a),
	)
	return cmd
}

func newSchemaDiffCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare the embedded schema with the live API",
		Long: `Fetch the live schema by introspection and list where it differs from
the embedded one. Fails when a difference is breaking.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			local, err := schema.Load()
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			live, err := introspection.Fetch(cmd.Context(), c)
			if err != nil {
				return err
			}

			drifts := introspection.Diff(local, live)
			out := make([]string, 0, len(drifts))
			for _, d := range drifts {
				if all || d.Severity == introspection.SeverityBreaking {
					out = append(out, d.String())
				}
			}
			if err := a.print(out); err != nil {
				return err
			}
			if introspection.Breaking(drifts) {
				return errBreakingDrift
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "also list what only the live schema has")
	return cmd
}
