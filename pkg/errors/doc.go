// Package errors provides custom error types for the discovery engine and agent.
//
// Each error type includes a constructor, Error() method, and a type-checking
// helper using errors.As for proper error unwrapping.
//
// # Error Types Overview
//
//	┌───────────────────────────┬────────┬──────────────────────────────────────┐
//	│ Error Type                │ HTTP   │ Description                          │
//	├───────────────────────────┼────────┼──────────────────────────────────────┤
//	│ ProviderError             │ -      │ Adapter failure, scoped to one unit  │
//	│ NormalizationError        │ -      │ Malformed native record, one record  │
//	│ CancelledError            │ -      │ Unit abandoned on cancel/timeout     │
//	│ InvalidConfigurationError │ 400    │ Discovery request cannot start       │
//	│ ResourceNotFoundError     │ 404    │ Requested resource doesn't exist     │
//	│ DiscoveryInProgressError  │ 409    │ Discovery already running            │
//	│ VCenterError              │ -      │ vCenter connection/auth failure      │
//	│ PublishError              │ 4xx    │ HTTP error from the publish endpoint │
//	└───────────────────────────┴────────┴──────────────────────────────────────┘
//
// # Propagation
//
// NormalizationError never leaves the scan unit executor: the record is
// dropped, counted and logged. ProviderError and CancelledError end up as
// unit errors inside the catalog; the discovery call itself still succeeds.
// InvalidConfigurationError is the only error returned by the orchestrator
// and it is returned before any unit starts.
//
// # ProviderError
//
// Carries the scan unit and the underlying cause. Unwrap returns the cause so
// SDK errors can still be inspected:
//
//	var apiErr smithy.APIError
//	if errors.As(err, &apiErr) {
//	    // apiErr.ErrorCode()
//	}
//
// # NormalizationError
//
// Carries the provider, the offending native record and a reason.
//
// Constructor:
//   - NewNormalizationError(provider string, record any, reason string)
//
// # VCenterError
//
// Wraps errors from vCenter connections with user-friendly messages.
// Automatically detects login failures and credential issues.
//
// Error detection:
//   - "Login failure" or "incorrect password" → "invalid credentials"
//   - Other errors → Original error message
//
// # PublishError
//
// Wraps HTTP 4xx errors from the catalog publishing endpoint. They are not
// retried.
//
// # Handler Error Mapping
//
// Handlers typically map errors to HTTP status codes:
//
//	switch {
//	case errors.IsResourceNotFoundError(err):
//	    c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
//	case errors.IsDiscoveryInProgressError(err):
//	    c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
//	case errors.IsInvalidConfigurationError(err):
//	    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
//	default:
//	    c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
//	}
package errors
