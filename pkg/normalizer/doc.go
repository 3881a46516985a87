// Package normalizer maps provider-native records into the canonical
// models.Resource.
//
// There is one pure function per provider:
//
//	NormalizeAWS(AWSInstance) (models.Resource, error)
//	NormalizeAzure(AzureVirtualMachine) (models.Resource, error)
//	NormalizeVSphere(VSphereVM) (models.Resource, error)
//
// A normalizer never performs I/O and never retries. It fails with an
// errors.NormalizationError carrying the offending record when the primary
// identifier is missing. Every other source field is optional: a missing
// field leaves the canonical field empty, never a placeholder.
//
// The returned Resource keeps the native record in Raw. Normalizers read the
// record and never write to it, so Raw stays equal to what the adapter returned.
//
// # Power states
//
//	┌──────────┬────────────────────────────────────┬───────────┐
//	│ Provider │ Native                             │ Canonical │
//	├──────────┼────────────────────────────────────┼───────────┤
//	│ aws      │ running                            │ running   │
//	│ aws      │ stopped, terminated                │ stopped   │
//	│ aws      │ pending, stopping, shutting-down   │ unknown   │
//	│ azure    │ PowerState/running                 │ running   │
//	│ azure    │ PowerState/stopped, deallocated    │ stopped   │
//	│ azure    │ PowerState/starting, stopping, ... │ unknown   │
//	│ vmware   │ poweredOn                          │ running   │
//	│ vmware   │ poweredOff, suspended              │ stopped   │
//	└──────────┴────────────────────────────────────┴───────────┘
//
// Native states missing from the table are passed through verbatim.
package normalizer
