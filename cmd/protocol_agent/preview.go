package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/fire-protocols/internal/rendering"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a protocol as Markdown or HTML without writing a .docx",
	RunE:  runPreview,
}

var (
	previewInputFile  string
	previewOutputFile string
	previewHTML       bool
)

func init() {
	previewCmd.Flags().StringVarP(&previewInputFile, "in", "i", "", "Path to report input JSON file (required)")
	previewCmd.Flags().StringVarP(&previewOutputFile, "out", "o", "", "Write the preview to this file instead of stdout")
	previewCmd.Flags().BoolVar(&previewHTML, "html", false, "Render HTML instead of Markdown")

	if err := previewCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark flag as required: %v", err))
	}

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	in, err := readInputFile(previewInputFile)
	if err != nil {
		return err
	}

	_, doc, err := newGenerator("", nil).Prepare(in)
	if err != nil {
		return err
	}

	text := rendering.Markdown(doc)
	if previewHTML {
		if text, err = rendering.HTML(doc); err != nil {
			return err
		}
	}

	if previewOutputFile == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(previewOutputFile, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write preview file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Preview written to %s\n", previewOutputFile)
	return nil
}
