// Package config loads blotsync settings.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← BLOTSYNC_*
//	├─────────────────────────────┤
//	│  2. TOML file               │  ← -c path
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// The TOML file is decoded strictly: unknown keys are errors, so a typo in
// a setting name never goes unnoticed.
//
// # Example
//
//	[sync]
//	max_optimize_iterations = 100
//
//	[sync.observe]
//	attributes = true
//	character_data = true
//	character_data_old_value = true
//	child_list = true
//	subtree = true
//
//	[logging]
//	level = "debug"
//
//	[mirror]
//	debounce_ms = 50
//	block_tag = "p"
//
//	[script]
//	timeout_ms = 2000
package config
