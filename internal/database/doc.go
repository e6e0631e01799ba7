// Package database provides SQLite-backed storage for lookup history.
//
// Every completed analysis can be saved as a history record: the raw
// input, the normalized E.164 form, a few indexed summary columns, and the
// full report serialized as JSON. The history subcommand reads these
// records to list past lookups and to compare the two most recent lookups
// of the same number.
//
// Design decision: We store the full report as a JSON column rather than
// normalizing categories into tables because reports are read back whole
// and the schema would otherwise chase every category field.
package database
