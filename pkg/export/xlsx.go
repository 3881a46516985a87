package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kubev2v/migration-discovery/internal/models"
)

const (
	SheetSummary    = "Summary"
	SheetResources  = "Resources"
	SheetUnits      = "Units"
	SheetUnitErrors = "Unit Errors"
)

var resourceHeader = []any{
	"ID", "Provider", "Kind", "Name", "Location", "Size Class", "State", "OS",
	"CPUs", "Memory (MB)", "IP Addresses", "Disks", "Disk Capacity (GB)", "Tags",
}

// WriteXLSX writes a workbook with one sheet for the summary, resources,
// unit summaries and unit errors of the catalog.
func WriteXLSX(w io.Writer, c *models.Catalog) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}
	for _, sheet := range []string{SheetResources, SheetUnits, SheetUnitErrors} {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetSummary, summaryRows(c)},
		{SheetResources, resourceRows(c.Resources)},
		{SheetUnits, unitRows(c.Units)},
		{SheetUnitErrors, unitErrorRows(c.UnitErrors)},
	}

	for _, s := range sheets {
		if err := writeRows(f, s.name, s.rows); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", s.name, err)
		}
		if s.name == SheetSummary {
			continue
		}
		last, err := excelize.CoordinatesToCellName(len(s.rows[0]), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(s.name, "A1", last, bold); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func summaryRows(c *models.Catalog) [][]any {
	return [][]any{
		{"Catalog ID", c.ID},
		{"Source", c.Source},
		{"Scan Start", c.ScanStartTime.UTC().Format(time.RFC3339)},
		{"Scan End", c.ScanEndTime.UTC().Format(time.RFC3339)},
		{"Resources", c.ResourceCount()},
		{"Units", len(c.Units)},
		{"Unit Errors", len(c.UnitErrors)},
		{"Dropped Records", c.DroppedRecords},
	}
}

func resourceRows(resources []models.Resource) [][]any {
	rows := make([][]any, 0, len(resources)+1)
	rows = append(rows, resourceHeader)

	for _, r := range resources {
		var capacityKB int64
		for _, d := range r.Disks {
			capacityKB += d.CapacityKB
		}

		rows = append(rows, []any{
			r.ID,
			string(r.Provider),
			r.Kind,
			r.Name,
			r.Location,
			r.SizeClass,
			r.State,
			r.OS,
			optional(int64(r.CPUCount)),
			optional(r.MemoryMB),
			strings.Join(addresses(r.Network), ", "),
			len(r.Disks),
			optional(capacityKB / (1024 * 1024)),
			formatTags(r.Tags),
		})
	}
	return rows
}

func unitRows(units []models.UnitSummary) [][]any {
	rows := [][]any{{"Unit", "Status", "Resources", "Dropped Records", "Duration (ms)"}}
	for _, u := range units {
		rows = append(rows, []any{u.Unit, string(u.Status), u.ResourceCount, u.DroppedRecords, u.DurationMs})
	}
	return rows
}

func unitErrorRows(errs []models.UnitError) [][]any {
	rows := [][]any{{"Unit", "Kind", "Error"}}
	for _, e := range errs {
		rows = append(rows, []any{e.Unit.String(), string(e.Kind), e.Message})
	}
	return rows
}

func addresses(nics []models.NetworkInterface) []string {
	var out []string
	for _, n := range nics {
		if n.IPAddress != "" {
			out = append(out, n.IPAddress)
		}
	}
	return out
}

// formatTags renders tags as sorted key=value pairs.
func formatTags(tags map[string]string) string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+tags[k])
	}
	return strings.Join(pairs, ", ")
}

// optional leaves the cell empty for values the provider did not report.
func optional(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}
