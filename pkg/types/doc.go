// Package types defines the shared data model for confsync: the host
// environment descriptor, the config catalog, resolution and deployment
// records, and the run report. It also declares the FS interface that the
// engine uses for all filesystem access so that components can be tested
// against fault-injecting implementations.
//
// Everything in this package is plain data. Entities are created, consumed,
// and discarded within a single deployment run; nothing here persists in
// memory across runs.
package types
