package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/semsnip/reader"
	"github.com/c360studio/semsnip/writer"
)

func exportCmd() *cobra.Command {
	var (
		format string
		base   string
		to     string
	)

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a document's structured data as RDF",
		Long: `Export parses the structured data in a document and serializes the
resulting graph as Turtle or N-Triples. Reads from stdin when no file (or
"-") is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}

			g, err := reader.Parse(data, format, base)
			if err != nil {
				return err
			}

			out, err := writer.Write(g, writer.Format(to))
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "auto", "Markup format (auto, jsonld, microdata, rdfa)")
	cmd.Flags().StringVarP(&base, "base", "b", "", "Base IRI for relative references")
	cmd.Flags().StringVarP(&to, "to", "t", "turtle", "Output serialization (turtle, ntriples)")

	return cmd
}
