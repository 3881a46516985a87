package models

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// Catalog is the complete output of one discovery invocation.
// It accounts for every enumerated unit, either through its resources or
// through an entry in UnitErrors.
type Catalog struct {
	ID             string
	Source         string
	ScanStartTime  time.Time
	ScanEndTime    time.Time
	Resources      []Resource
	UnitErrors     []UnitError
	Units          []UnitSummary
	DroppedRecords int
}

// ResourceCount is derived from the resource list and never stored.
func (c *Catalog) ResourceCount() int {
	return len(c.Resources)
}

// SourceLabel joins the providers of a run into a label such as "aws+vmware".
// Providers are ordered as in Providers and deduplicated.
func SourceLabel(providers []Provider) string {
	seen := make(map[Provider]bool, len(providers))
	for _, p := range providers {
		seen[p] = true
	}

	labels := make([]string, 0, len(seen))
	for _, p := range Providers {
		if seen[p] {
			labels = append(labels, string(p))
			delete(seen, p)
		}
	}

	rest := make([]string, 0, len(seen))
	for p := range seen {
		rest = append(rest, string(p))
	}
	sort.Strings(rest)

	return strings.Join(append(labels, rest...), "+")
}

type unitErrorDocument struct {
	Unit  string        `json:"unit"`
	Kind  UnitErrorKind `json:"kind"`
	Error string        `json:"error"`
}

type catalogDocument struct {
	ID             string              `json:"id"`
	Source         string              `json:"source"`
	ScanTime       time.Time           `json:"scanTime"`
	ScanEndTime    time.Time           `json:"scanEndTime"`
	ResourceCount  int                 `json:"resourceCount"`
	DroppedRecords int                 `json:"droppedRecords"`
	Resources      []Resource          `json:"resources"`
	UnitErrors     []unitErrorDocument `json:"unitErrors"`
	Units          []UnitSummary       `json:"units"`
}

func (c Catalog) MarshalJSON() ([]byte, error) {
	doc := catalogDocument{
		ID:             c.ID,
		Source:         c.Source,
		ScanTime:       c.ScanStartTime.UTC(),
		ScanEndTime:    c.ScanEndTime.UTC(),
		ResourceCount:  c.ResourceCount(),
		DroppedRecords: c.DroppedRecords,
		Resources:      c.Resources,
		UnitErrors:     make([]unitErrorDocument, 0, len(c.UnitErrors)),
		Units:          c.Units,
	}

	if doc.Resources == nil {
		doc.Resources = []Resource{}
	}
	if doc.Units == nil {
		doc.Units = []UnitSummary{}
	}

	for _, e := range c.UnitErrors {
		doc.UnitErrors = append(doc.UnitErrors, unitErrorDocument{
			Unit:  e.Unit.String(),
			Kind:  e.Kind,
			Error: e.Message,
		})
	}

	return json.Marshal(doc)
}

// UnmarshalJSON reads back a stored catalog document. Raw records come back
// as generic JSON values since their native type is lost on serialization.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	*c = Catalog{
		ID:             doc.ID,
		Source:         doc.Source,
		ScanStartTime:  doc.ScanTime,
		ScanEndTime:    doc.ScanEndTime,
		Resources:      doc.Resources,
		Units:          doc.Units,
		DroppedRecords: doc.DroppedRecords,
	}

	for _, e := range doc.UnitErrors {
		c.UnitErrors = append(c.UnitErrors, UnitError{
			Unit:    parseUnit(e.Unit),
			Kind:    e.Kind,
			Message: e.Error,
		})
	}

	return nil
}

func parseUnit(s string) ScanUnit {
	provider, name, found := strings.Cut(s, "/")
	if !found {
		return ScanUnit{Name: s}
	}
	return ScanUnit{Provider: Provider(provider), Name: name}
}

// CatalogSummary is the listing view of a stored catalog.
type CatalogSummary struct {
	ID             string
	Source         string
	ScanStartTime  time.Time
	ScanEndTime    time.Time
	ResourceCount  int
	UnitErrorCount int
	DroppedRecords int
}

func NewCatalogSummary(c *Catalog) CatalogSummary {
	return CatalogSummary{
		ID:             c.ID,
		Source:         c.Source,
		ScanStartTime:  c.ScanStartTime,
		ScanEndTime:    c.ScanEndTime,
		ResourceCount:  c.ResourceCount(),
		UnitErrorCount: len(c.UnitErrors),
		DroppedRecords: c.DroppedRecords,
	}
}
