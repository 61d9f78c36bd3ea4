package main

import (
	"fmt"
	"os"

	"attendance-ingest/internal/diagnostic"
	"attendance-ingest/internal/domain"
	"attendance-ingest/internal/gateway"
	"attendance-ingest/internal/gateway/xlsx"
	"attendance-ingest/internal/parser"

	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var file, workbook string
	var maxChars int

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Dry run: print the punches an export file yields without touching the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := gateway.NewTextFileReader(maxChars).ReadText(cmd.Context(), file)
			if err != nil {
				return err
			}

			result := parser.Parse(text)
			if workbook != "" {
				if err := writeWorkbook(workbook, result); err != nil {
					return err
				}
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to the extracted export text (required)")
	cmd.Flags().StringVar(&workbook, "xlsx", "", "Also write the punches and parse errors to this .xlsx file")
	cmd.Flags().IntVar(&maxChars, "max-chars", domain.MaxTextChars, "Reject files longer than this many characters")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newDiagnoseCmd() *cobra.Command {
	var file string
	var maxChars int

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Print token counts and a format guess for an export file",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := gateway.NewTextFileReader(maxChars).ReadText(cmd.Context(), file)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), diagnostic.Analyze(text))
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to the extracted export text (required)")
	cmd.Flags().IntVar(&maxChars, "max-chars", domain.MaxTextChars, "Reject files longer than this many characters")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func writeWorkbook(path string, result domain.ParseResult) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create workbook %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close workbook %s: %w", path, cerr)
		}
	}()
	return xlsx.WriteParseResult(out, result)
}
