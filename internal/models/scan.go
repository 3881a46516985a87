package models

import (
	"fmt"
	"time"
)

// ScanUnit is one independently executable slice of discovery work:
// an AWS region, an Azure subscription or a vCenter endpoint.
type ScanUnit struct {
	Provider Provider `json:"provider"`
	Name     string   `json:"name"`
}

func NewScanUnit(provider Provider, name string) ScanUnit {
	return ScanUnit{Provider: provider, Name: name}
}

func (u ScanUnit) String() string {
	return fmt.Sprintf("%s/%s", u.Provider, u.Name)
}

// UnitErrorKind tells why a unit contributed no resources.
type UnitErrorKind string

const (
	UnitErrorProvider  UnitErrorKind = "provider"
	UnitErrorCancelled UnitErrorKind = "cancelled"
)

type UnitError struct {
	Unit    ScanUnit
	Kind    UnitErrorKind
	Message string
}

func (e UnitError) Error() string {
	return fmt.Sprintf("%s: %s", e.Unit, e.Message)
}

// ScanResult is the outcome of one unit. Either Err is nil, or Resources is empty.
type ScanResult struct {
	Unit      ScanUnit
	Resources []Resource
	// Dropped counts native records that could not be normalized.
	Dropped   int
	Err       *UnitError
	StartedAt time.Time
	Duration  time.Duration
}

func (r ScanResult) Failed() bool {
	return r.Err != nil
}

// UnitStatus is the per-unit outcome reported in the catalog.
type UnitStatus string

const (
	UnitStatusSucceeded UnitStatus = "succeeded"
	UnitStatusFailed    UnitStatus = "failed"
	UnitStatusCancelled UnitStatus = "cancelled"
)

type UnitSummary struct {
	Unit           string     `json:"unit"`
	Status         UnitStatus `json:"status"`
	ResourceCount  int        `json:"resourceCount"`
	DroppedRecords int        `json:"droppedRecords"`
	DurationMs     int64      `json:"durationMs"`
}

func NewUnitSummary(r ScanResult) UnitSummary {
	s := UnitSummary{
		Unit:           r.Unit.String(),
		Status:         UnitStatusSucceeded,
		ResourceCount:  len(r.Resources),
		DroppedRecords: r.Dropped,
		DurationMs:     r.Duration.Milliseconds(),
	}

	if r.Err != nil {
		switch r.Err.Kind {
		case UnitErrorCancelled:
			s.Status = UnitStatusCancelled
		default:
			s.Status = UnitStatusFailed
		}
	}

	return s
}
