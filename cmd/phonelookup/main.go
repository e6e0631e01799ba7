// Package main provides the entry point for the phonelookup CLI.
//
// phonelookup is an offline phone number analysis tool. It parses a phone
// number, validates it against numbering plan metadata, and reports its
// formats, geography, timezones, carrier, and dialing information.
//
// Usage:
//
//	phonelookup lookup <phone-number>
//	phonelookup lookup --batch <file>
//
// See --help for all available options.
package main

// main is the entry point for phonelookup.
func main() {
	Execute()
}
