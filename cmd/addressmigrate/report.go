package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"homiio/internal/usecase"
	"homiio/internal/util"
)

func printStatus(out io.Writer, status *usecase.MigrationStatus, asJSON bool) error {
	if asJSON {
		return writeJSON(out, status)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	writeStatus(w, status)

	return w.Flush()
}

func printReport(out io.Writer, report *usecase.MigrationReport, asJSON bool) error {
	if asJSON {
		return writeJSON(out, report)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	title := "Migration"
	if report.DryRun {
		title = "Migration (dry run, nothing written)"
	}
	fmt.Fprintln(w, title)
	fmt.Fprintf(w, "  batches\t%d\n", report.Batches)
	fmt.Fprintf(w, "  scanned\t%d\n", report.Scanned)
	fmt.Fprintf(w, "  migrated\t%d\n", report.Migrated)
	fmt.Fprintf(w, "  skipped\t%d\n", report.Skipped)
	fmt.Fprintf(w, "  addresses created\t%d\n", report.AddressesCreated)
	fmt.Fprintf(w, "  addresses reused\t%d\n", report.AddressesReused)
	fmt.Fprintf(w, "  failures\t%d\n", len(report.Failures))
	fmt.Fprintf(w, "  duration\t%s\n", util.FormatDuration(report.Duration))

	for _, failure := range report.Failures {
		code, details := "", ""
		if failure.Error != nil {
			code = failure.Error.Code
			if failure.Error.Details != nil {
				details = fmt.Sprint(failure.Error.Details)
			}
		}
		fmt.Fprintf(w, "  - %s\t%s\t%s\n", failure.PropertyID, code, details)
	}

	if report.Status != nil {
		writeStatus(w, report.Status)
	}

	return w.Flush()
}

func writeStatus(w io.Writer, status *usecase.MigrationStatus) {
	fmt.Fprintln(w, "Status")
	fmt.Fprintf(w, "  properties\t%d\n", status.Properties)
	fmt.Fprintf(w, "  embedded\t%d\n", status.Embedded)
	fmt.Fprintf(w, "  referenced\t%d\n", status.Referenced)
	fmt.Fprintf(w, "  invalid (both shapes)\t%d\n", status.Invalid)
	fmt.Fprintf(w, "  without address\t%d\n", status.WithoutAddress)
	fmt.Fprintf(w, "  canonical addresses\t%d\n", status.Addresses)
	fmt.Fprintf(w, "  fully migrated\t%t\n", status.FullyMigrated)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
