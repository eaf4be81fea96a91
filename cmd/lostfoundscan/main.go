// Package main provides the entry point for the lostfoundscan CLI.
//
// lostfoundscan scrapes the Mumbai Police lost/found article listing,
// stores the records locally, and analyzes them offline.
//
// Usage:
//
//	lostfoundscan scrape --type lost --article "PAN Card"
//	lostfoundscan analyze
//
// See --help for all available options.
package main

// main is the entry point for lostfoundscan.
func main() {
	Execute()
}
