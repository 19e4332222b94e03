package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llehouerou/go-mcd/schema"
)

func newQueryCmd(a *app) *cobra.Command {
	var (
		vars     []string
		validate bool
	)
	cmd := &cobra.Command{
		Use:   "query [FILE]",
		Short: "Run a GraphQL document",
		Long: `Run the GraphQL document read from FILE, or from stdin when FILE is
omitted or "-", and print the data of the response.

Variables are given as --var name=value. A value that parses as JSON is sent
as is; anything else is sent as a string.`,
		Example: `  mcd query --var mcon=MCON++a++b++table++orders get_table.graphql
  echo '{ getUser { email } }' | mcd query`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.readDocument(args)
			if err != nil {
				return err
			}
			variables, err := parseVars(vars)
			if err != nil {
				return err
			}
			if validate {
				if err := schema.ValidateOperation(doc); err != nil {
					return err
				}
			}

			c, err := a.client()
			if err != nil {
				return err
			}
			data, err := c.ExecRaw(cmd.Context(), doc, variables)
			if err != nil {
				return err
			}
			return a.printJSON(data)
		},
	}
	cmd.Flags().StringArrayVar(&vars, "var", nil, "variable as name=value, repeatable")
	cmd.Flags().BoolVar(&validate, "validate", true, "validate the document against the embedded schema first")
	return cmd
}

// readDocument reads the file named by args[0], or stdin.
func (a *app) readDocument(args []string) (string, error) {
	var (
		b   []byte
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		b, err = io.ReadAll(a.in)
	} else {
		b, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	doc := strings.TrimSpace(string(b))
	if doc == "" {
		return "", fmt.Errorf("empty document")
	}
	return doc, nil
}

func parseVars(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	vars := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid variable %q, want name=value", pair)
		}
		var v any
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			v = value
		}
		vars[name] = v
	}
	return vars, nil
}
