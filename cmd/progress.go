package cmd

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/kubev2v/migration-discovery/internal/models"
)

// progressPrinter writes one line per finished unit and a summary once the run ends.
type progressPrinter struct {
	w  io.Writer
	mu sync.Mutex
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{w: w}
}

func (p *progressPrinter) UnitStarted(unit models.ScanUnit) {}

func (p *progressPrinter) UnitFinished(result models.ScanResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	duration := result.Duration.Round(time.Millisecond)
	switch {
	case result.Err == nil:
		fmt.Fprintf(p.w, "%s %s: %d resources (%s)\n", color.GreenString("✓"), result.Unit, len(result.Resources), duration)
	case result.Err.Kind == models.UnitErrorCancelled:
		fmt.Fprintf(p.w, "%s %s: cancelled\n", color.YellowString("-"), result.Unit)
	default:
		fmt.Fprintf(p.w, "%s %s: %s\n", color.RedString("✗"), result.Unit, result.Err.Message)
	}
}

func (p *progressPrinter) RunFinished(catalog *models.Catalog) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var succeeded, failed, cancelled int
	for _, u := range catalog.Units {
		switch u.Status {
		case models.UnitStatusSucceeded:
			succeeded++
		case models.UnitStatusCancelled:
			cancelled++
		default:
			failed++
		}
	}

	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(p.w, "\n%s %s (%s)\n", bold("Catalog"), catalog.ID, catalog.Source)
	fmt.Fprintf(p.w, "  resources: %d, dropped records: %d\n", catalog.ResourceCount(), catalog.DroppedRecords)
	fmt.Fprintf(p.w, "  units: %s succeeded, %s failed, %s cancelled\n",
		color.GreenString("%d", succeeded),
		color.RedString("%d", failed),
		color.YellowString("%d", cancelled),
	)
	fmt.Fprintf(p.w, "  duration: %s\n", catalog.ScanEndTime.Sub(catalog.ScanStartTime).Round(time.Millisecond))
}
