// Package config loads and persists the YAML configuration used by the
// roundtable CLI: provider selection, model settings, session limits and the
// optional custom team file. Programmatic users of the library do not need
// this package; it exists so the CLI and scripts share one on-disk format.
package config
