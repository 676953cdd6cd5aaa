// Package config provides configuration for the quill editor.
//
// Settings come from three layers, applied in order:
//
//  1. Built-in defaults (Default)
//  2. A config file, TOML or YAML chosen by extension
//  3. QUILL_* environment variables
//
// A missing config file is not an error. Unknown keys in a file are.
//
// Usage:
//
//	cfg, err := config.NewLoader(config.DefaultPath()).Load()
//	if err != nil {
//	    return err
//	}
//	width := cfg.Editor.TabWidth
//
// Live reload: a Watcher reports changes to the config file without
// blocking, so the editor can poll it from its update tick and reload.
package config
