package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/semsnip/service"
)

func lintCmd() *cobra.Command {
	var (
		format string
		base   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "lint [file]",
		Short: "Check a document's markup against known vocabularies",
		Long: `Lint parses the structured data in a document and reports unknown
types, unknown properties and missing recommended properties. Reads from
stdin when no file (or "-") is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}

			engine, err := service.NewEngine("", slog.Default())
			if err != nil {
				return err
			}

			messages, err := engine.Lint(data, format, base)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(messages)
			}

			for _, m := range messages {
				if m.Property != "" {
					fmt.Printf("%s: %s %s: %s\n", m.Severity, m.Resource, m.Property, m.Text)
				} else {
					fmt.Printf("%s: %s: %s\n", m.Severity, m.Resource, m.Text)
				}
			}
			if len(messages) == 0 {
				fmt.Println("no findings")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "auto", "Markup format (auto, jsonld, microdata, rdfa)")
	cmd.Flags().StringVarP(&base, "base", "b", "", "Base IRI for relative references")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print findings as JSON")

	return cmd
}
