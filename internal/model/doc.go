// Package model defines the core data structures for lostfoundscan.
// It contains the search parameters accepted by the portal, the record
// type produced by extraction, and the transient page representation.
package model
