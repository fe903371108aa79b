package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/spf13/cobra"

	"github.com/c360studio/semsnip/service"
)

func renderCmd() *cobra.Command {
	var (
		format     string
		base       string
		rulesDir   string
		asJSON     bool
		asMarkdown bool
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a snippet from a document",
		Long: `Render parses the structured data in a document and prints the
snippet for its primary entity. Reads from stdin when no file (or "-") is
given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}

			engine, err := service.NewEngine(rulesDir, slog.Default())
			if err != nil {
				return err
			}

			resp, err := engine.Render(data, format, base)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			if asMarkdown {
				markdown, err := md.NewConverter("", true, nil).ConvertString(resp.HTML)
				if err != nil {
					return fmt.Errorf("markdown conversion: %w", err)
				}
				fmt.Println(markdown)
				return nil
			}
			fmt.Println(resp.HTML)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "auto", "Markup format (auto, jsonld, microdata, rdfa)")
	cmd.Flags().StringVarP(&base, "base", "b", "", "Base IRI for relative references")
	cmd.Flags().StringVar(&rulesDir, "rules", "", "Directory of YAML rule files layered over the built-ins")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON (html, matched keys)")
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "Convert the snippet to markdown before printing")

	return cmd
}
