// Package config provides configuration structures and utilities for
// lostfoundscan. It defines the runtime options populated from CLI
// flags, the optional .lostfoundscan YAML file, and XDG directory
// helpers.
package config
