package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/fire-protocols/internal/calc"
	"github.com/jonathan/fire-protocols/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a report input without generating anything",
	Long:  "Runs the schema check and the validation rules on a report input and lists every problem found.",
	RunE:  runValidate,
}

var validateInputFile string

func init() {
	validateCmd.Flags().StringVarP(&validateInputFile, "in", "i", "", "Path to report input JSON file (required)")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	in, err := readInputFile(validateInputFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := validation.New().Validate(in); err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			for _, fe := range verr.Errors {
				_, _ = fmt.Fprintf(out, "  %s: %s\n", fe.Field, fe.Message)
			}
		}
		return err
	}

	_, _ = fmt.Fprintln(out, "Данные корректны")
	if p := printer(cmd); p != nil {
		rows, err := calc.Rows(in.Report)
		if err != nil {
			return err
		}
		p.PrintLoadTable(in.Protocol(), rows)
	}
	return nil
}
