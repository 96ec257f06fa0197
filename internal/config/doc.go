// Package config loads and validates the YAML configuration shared by
// the data-plane commands. ${VAR} references in the file are expanded
// from the environment before parsing.
package config
