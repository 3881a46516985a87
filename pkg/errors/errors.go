package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ProviderError indicates an adapter failed to list the records of one scan unit.
type ProviderError struct {
	Unit  string
	Cause error
}

func NewProviderError(unit string, cause error) *ProviderError {
	return &ProviderError{Unit: unit, Cause: cause}
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error on %s: %v", e.Unit, e.Cause)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// IsProviderError checks if the error is a ProviderError.
func IsProviderError(err error) bool {
	var e *ProviderError
	return errors.As(err, &e)
}

// NormalizationError indicates one native record could not be mapped to a resource.
// Record holds the offending record, never the whole batch.
type NormalizationError struct {
	Provider string
	Record   any
	Reason   string
}

func NewNormalizationError(provider string, record any, reason string) *NormalizationError {
	return &NormalizationError{Provider: provider, Record: record, Reason: reason}
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("failed to normalize %s record: %s", e.Provider, e.Reason)
}

func IsNormalizationError(err error) bool {
	var e *NormalizationError
	return errors.As(err, &e)
}

// CancelledError indicates a scan unit was abandoned because the run was cancelled or timed out.
type CancelledError struct {
	Unit string
}

func NewCancelledError(unit string) *CancelledError {
	return &CancelledError{Unit: unit}
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("scan of %s cancelled", e.Unit)
}

func IsCancelledError(err error) bool {
	var e *CancelledError
	return errors.As(err, &e)
}

// InvalidConfigurationError indicates a discovery request cannot start.
type InvalidConfigurationError struct {
	Reason string
}

func NewInvalidConfigurationError(format string, args ...any) *InvalidConfigurationError {
	return &InvalidConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid discovery configuration: %s", e.Reason)
}

func IsInvalidConfigurationError(err error) bool {
	var e *InvalidConfigurationError
	return errors.As(err, &e)
}

// ResourceNotFoundError indicates a resource was not found.
type ResourceNotFoundError struct {
	Kind string
	ID   string
}

func NewResourceNotFoundError(kind, id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{Kind: kind, ID: id}
}

func NewCatalogNotFoundError(id string) *ResourceNotFoundError {
	return NewResourceNotFoundError("catalog", id)
}

func NewCredentialsNotFoundError() *ResourceNotFoundError {
	return NewResourceNotFoundError("credentials", "")
}

func (e *ResourceNotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// DiscoveryInProgressError indicates a discovery is already running.
type DiscoveryInProgressError struct{}

func NewDiscoveryInProgressError() *DiscoveryInProgressError {
	return &DiscoveryInProgressError{}
}

func (e *DiscoveryInProgressError) Error() string {
	return "discovery already in progress"
}

func IsDiscoveryInProgressError(err error) bool {
	var e *DiscoveryInProgressError
	return errors.As(err, &e)
}

// PublishError wraps an HTTP 4xx answer of the catalog publishing endpoint.
type PublishError struct {
	StatusCode int
	Message    string
}

func NewPublishError(statusCode int, message string) *PublishError {
	return &PublishError{StatusCode: statusCode, Message: message}
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish failed with status %d: %s", e.StatusCode, e.Message)
}

func IsPublishError(err error) bool {
	var e *PublishError
	return errors.As(err, &e)
}

func NewVCenterError(err error) *VCenterError {
	vErr := &VCenterError{msg: "unknown error", cause: err}
	if strings.Contains(err.Error(), "Login failure") ||
		(strings.Contains(err.Error(), "incorrect") && strings.Contains(err.Error(), "password")) {
		vErr.msg = "invalid credentials"
	} else {
		vErr.msg = err.Error()
	}
	return vErr
}

// VCenterError indicates a vCenter connection or login failure.
type VCenterError struct {
	msg   string
	cause error
}

func (e *VCenterError) Error() string {
	return e.msg
}

func (e *VCenterError) Unwrap() error {
	return e.cause
}

func IsVCenterError(err error) bool {
	var e *VCenterError
	return errors.As(err, &e)
}
