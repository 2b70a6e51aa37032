package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sibaiper/tidy-tree/pkg/dsl"
	"github.com/sibaiper/tidy-tree/pkg/treefile"
)

// parseCommand creates the parse command for converting tree documents.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		output    string
		outFormat string
		inFormat  string
		name      string
	)

	cmd := &cobra.Command{
		Use:   "parse [input]",
		Short: "Parse a tree document and convert it between formats",
		Long: `Parse a tree document and convert it between formats.

The input may be JSON, YAML, or the tree DSL; the format is detected from
the file extension and content unless --input-format is given. The parsed
document is re-emitted in the requested output format with node sizes
resolved, producing a canonical document other commands can consume.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outFormat != "json" && outFormat != "yaml" && outFormat != "dsl" {
				return fmt.Errorf("invalid output format: %q (must be 'json', 'yaml', or 'dsl')", outFormat)
			}
			return c.runParse(cmd, args[0], output, outFormat, inFormat, name)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&outFormat, "format", "f", "json", "output format: json (default), yaml, dsl")
	cmd.Flags().StringVar(&inFormat, "input-format", "", "input format: json, yaml, dsl (default: detect)")
	cmd.Flags().StringVar(&name, "name", "", "override the document name")

	return cmd
}

func (c *CLI) runParse(cmd *cobra.Command, input, output, outFormat, inFormat, name string) error {
	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.baseOptions()
	opts.Input = input
	opts.Format = inFormat
	opts.Name = name

	tr, doc, err := runner.Parse(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}

	var data []byte
	switch outFormat {
	case "json":
		data, err = treefile.Marshal(doc)
	case "yaml":
		data, err = treefile.MarshalYAML(doc)
	case "dsl":
		data = []byte(dsl.Format(doc))
	}
	if err != nil {
		return fmt.Errorf("serialize document: %w", err)
	}

	if output == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Parsed %s", input)
	printFile(output)
	printStats(tr.Len(), tr.Depth(), false)
	printNewline()
	printNextStep("Layout", appName+" layout "+output)

	return nil
}
