// Package handlers implements the HTTP API of the discovery agent.
//
// Handlers validate requests, convert between API and domain types and map
// service errors to status codes. Discovery and catalog logic lives in the
// services package; the handlers only see it through the DiscoveryService and
// CatalogService interfaces.
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Body and query validation                                    │
//	│  - Filter parsing                                               │
//	│  - Error mapping to HTTP status codes                           │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  Discovery │ Catalog                                            │
//	└─────────────────────────────────────────────────────────────────┘
//
// # API Endpoints
//
// The routes and their parameters are declared in api/v1/openapi.yaml. The
// Handler implements the generated v1.ServerInterface and Register mounts it
// under /api/v1 with v1.RegisterHandlersWithOptions, so query and path
// parameters arrive already bound to the generated params structs.
//
// Discovery (discovery.go):
//
//	┌────────┬────────────┬──────────────────────────────────────────┐
//	│ Method │ Endpoint   │ Description                              │
//	├────────┼────────────┼──────────────────────────────────────────┤
//	│ GET    │ /discovery │ Current discovery state                  │
//	│ POST   │ /discovery │ Start a discovery run (202)              │
//	│ DELETE │ /discovery │ Cancel the run, keep the partial catalog │
//	└────────┴────────────┴──────────────────────────────────────────┘
//
// Catalogs (catalogs.go, resources.go):
//
//	┌────────┬────────────────┬──────────────────────────────────────┐
//	│ Method │ Endpoint       │ Description                          │
//	├────────┼────────────────┼──────────────────────────────────────┤
//	│ GET    │ /catalogs      │ Stored catalogs, newest first        │
//	│ GET    │ /catalogs/:id  │ Catalog document ("latest" allowed)  │
//	│ GET    │ /resources     │ Filtered, paginated resources        │
//	└────────┴────────────────┴──────────────────────────────────────┘
//
// Credentials (credentials.go):
//
//	┌────────┬──────────────┬────────────────────────────────────────┐
//	│ Method │ Endpoint     │ Description                            │
//	├────────┼──────────────┼────────────────────────────────────────┤
//	│ GET    │ /credentials │ Whether provider credentials are saved │
//	│ PUT    │ /credentials │ Save provider credentials (204)        │
//	└────────┴──────────────┴────────────────────────────────────────┘
//
// # Error Mapping
//
//	┌──────────────────────────────┬─────────────┐
//	│ Error                        │ HTTP Status │
//	├──────────────────────────────┼─────────────┤
//	│ Bad body, query or filter    │ 400         │
//	│ InvalidConfigurationError    │ 400         │
//	│ CatalogNotFoundError         │ 404         │
//	│ DiscoveryInProgressError     │ 409         │
//	│ Anything else                │ 500         │
//	└──────────────────────────────┴─────────────┘
//
// Errors are returned as {"error": "<message>"}.
package handlers
