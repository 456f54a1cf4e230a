// Package profile holds the static agent profile store: the built-in
// four-role planning team plus YAML loading for custom teams. Profiles are
// pure data; all computation over them lives in the agent and engine
// packages.
package profile
