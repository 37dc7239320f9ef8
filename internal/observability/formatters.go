// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/fire-protocols/internal/contracts"
	"github.com/jonathan/fire-protocols/internal/types"
	"github.com/jonathan/fire-protocols/internal/weather"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	timeLayout     = "02.01.2006 15:04:05"
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// PrintLoadTable outputs the computed load table rows.
func (p *Printer) PrintLoadTable(protocol types.ProtocolType, rows []types.LoadTableRow) {
	if len(rows) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Protocol: %s\n\n", protocol))
	for i, row := range rows {
		sb.WriteString(fmt.Sprintf("%d. %s\n", row.SequenceNo, row.ElementName))
		points := row.PointsText()
		if points == "" {
			points = "-"
		}
		sb.WriteString(fmt.Sprintf("   points: %s", points))
		if row.HasLoad {
			sb.WriteString(fmt.Sprintf("  load: %s", row.LoadText()))
		}
		if i < len(rows)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("LOAD TABLE", sb.String())
}

// PrintScanSummary outputs the counters of a contracts directory scan.
func (p *Printer) PrintScanSummary(dir string, stats contracts.ScanStats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Directory: %s\n", dir))
	sb.WriteString(fmt.Sprintf("Files:     %d\n", stats.Files))
	sb.WriteString(fmt.Sprintf("Extracted: %d\n", stats.Extracted))
	sb.WriteString(fmt.Sprintf("Skipped:   %d\n", stats.Skipped))
	sb.WriteString(fmt.Sprintf("Failed:    %d", stats.Failed))

	p.printBox("CONTRACT SCAN", sb.String())
}

// PrintContractStats outputs the cache statistics and a few customers.
func (p *Printer) PrintContractStats(stats types.ContractStats, customers []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Contracts: %d\n", stats.TotalContracts))
	sb.WriteString(fmt.Sprintf("Customers: %d\n", stats.UniqueCustomers))
	updated := "never"
	if stats.LastUpdated != nil {
		updated = stats.LastUpdated.Local().Format(timeLayout)
	}
	sb.WriteString(fmt.Sprintf("Updated:   %s", updated))

	if len(customers) > 0 {
		sb.WriteString("\n\n")
		count := min(len(customers), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s", customers[i]))
			if i < count-1 {
				sb.WriteString("\n")
			}
		}
		if len(customers) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("\n  ... and %d more", len(customers)-maxItemsToShow))
		}
	}

	p.printBox("CONTRACT CACHE", sb.String())
}

// PrintWeather outputs the current conditions.
func (p *Printer) PrintWeather(cond weather.Conditions) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Temperature: %.1f °C\n", cond.Temperature))
	sb.WriteString(fmt.Sprintf("Wind:        %.1f m/s\n", cond.WindSpeed))
	if cond.Description != "" {
		sb.WriteString(fmt.Sprintf("Conditions:  %s\n", cond.Description))
	}
	sb.WriteString(fmt.Sprintf("Source:      %s", cond.Source))

	p.printBox("WEATHER", sb.String())
}

// PrintHistory outputs history entries in the given order.
func (p *Printer) PrintHistory(entries []types.HistoryEntry) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	for i, e := range entries {
		customer, object := "", ""
		if e.Data.Report != nil {
			customer = e.Data.Report.Base().Customer
			object = e.Data.Report.Base().ObjectDescription
		}
		sb.WriteString(fmt.Sprintf("%s  [%s]\n", e.Timestamp.Local().Format(timeLayout), e.Data.Protocol()))
		sb.WriteString(fmt.Sprintf("  %s\n", customer))
		sb.WriteString(fmt.Sprintf("  %s", object))
		if i < len(entries)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("HISTORY", sb.String())
}
