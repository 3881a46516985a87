// Package publisher sends finished catalogs to a downstream assessment service.
//
// The catalog document is PUT to <url>/api/v1/catalogs/<catalog id>. When a
// token is configured it is sent in the X-Agent-Token header.
package publisher
