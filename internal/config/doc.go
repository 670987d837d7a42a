// Package config loads analyzer settings.
//
// Settings are layered: built-in defaults, then an optional config file, then
// BUILDLENS_* environment variables. Command-line flags are applied last by
// the CLI. The config file may be YAML (.yaml, .yml) or CUE (.cue):
//
//	format: json
//	show_empty: true
//	concurrency: 8
//	disabled_providers:
//	  - GarbageCollectionProvider
//	critical_path:
//	  max_entries: 10
package config
