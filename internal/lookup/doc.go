// Package lookup wraps the offline phone-metadata libraries behind small,
// pure functions that return model category structs.
//
// All computation here is delegation: parsing and validation go to
// github.com/nyaruka/phonenumbers, country metadata to
// github.com/biter777/countries, and local-time resolution to the standard
// library with the embedded tzdata database. No function performs network
// I/O and every call is deterministic for a fixed reference time.
//
// Design decision: We keep library adaptation separate from the pipeline
// steps that orchestrate it so the placeholder policy and logging live in
// one place (the steps) while the library surface stays trivially testable.
package lookup
