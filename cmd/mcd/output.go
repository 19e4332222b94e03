package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// print writes v in the selected output format.
func (a *app) print(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return a.printJSON(b)
}

// printJSON writes an encoded JSON document in the selected output format.
// YAML keeps the key order of the document.
func (a *app) printJSON(b []byte) error {
	if a.output == outputYAML {
		var doc yaml.Node
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return fmt.Errorf("convert output: %w", err)
		}
		blockStyle(&doc)
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(&doc); err != nil {
			return err
		}
		return enc.Close()
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return fmt.Errorf("decode output: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(a.out)
	return err
}

// blockStyle clears the flow and quoting styles JSON input decodes with.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
