package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/fire-protocols/internal/pipeline"
	"github.com/jonathan/fire-protocols/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an inspection protocol from a JSON input",
	Long: "Validates the report input, computes the load table and writes the protocol .docx into the reports directory. " +
		"The input is recorded in the history and optionally e-mailed.",
	RunE: runGenerate,
}

var (
	generateInputFile   string
	generateOutDir      string
	generateAutoWeather bool
	generateEmail       bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateInputFile, "in", "i", "", "Path to report input JSON file (required)")
	generateCmd.Flags().StringVarP(&generateOutDir, "out-dir", "o", "", "Directory for the .docx (default: reports_dir from config)")
	generateCmd.Flags().BoolVar(&generateAutoWeather, "auto-weather", false, "Fill blank temperature and wind speed with current conditions")
	generateCmd.Flags().BoolVar(&generateEmail, "email", false, "E-mail the protocol after it is written")

	if err := generateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark flag as required: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	in, err := readInputFile(generateInputFile)
	if err != nil {
		return err
	}

	gen := newGenerator(generateOutDir, printer(cmd))
	res, err := gen.Generate(cmd.Context(), in, pipeline.Options{
		AutoWeather: generateAutoWeather,
		SendEmail:   generateEmail,
		OnProgress: func(ev pipeline.ProgressEvent) {
			if verbose {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", ev.Step, ev.Message)
			}
		},
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Протокол сохранён: %s\n", res.Path)
	if res.Email != nil {
		_, _ = fmt.Fprintln(out, res.Email.Message)
	}
	return nil
}

func readInputFile(path string) (types.ReportInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.ReportInput{}, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return pipeline.ReadInput(f)
}
