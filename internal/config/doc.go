// Package config loads the editor configuration.
//
// Configuration is layered, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment (PAPER_*)   │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. Config file             │  ← config.toml or config.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// A file only needs the keys it changes:
//
//	[editor]
//	default_type = "paragraph"
//
//	[keymap.bindings]
//	"Ctrl+J" = "editor.moveDown"
//	"Ctrl+L" = ""            # unbind
//
//	[[schema.types]]
//	type = "callout"
//	marker = "!"
//
//	[[document.blocks]]
//	type = "heading"
//	text = "Notes"
//
// The Manager keeps the current configuration, reloads it when the file
// changes and tells subscribers which sections changed.
//
// # Sub-packages
//
//   - loader: TOML, YAML and environment decoding
//   - watcher: fsnotify file watching with debounce
//   - notify: section change notifications
package config
