// Package config loads designable.toml.
//
// Configuration is assembled from three layers, later layers winning:
//
//  1. built-in defaults (Default)
//  2. the TOML file and its @include files
//  3. DESIGNABLE_* environment variables
//
// The merged layers are decoded into Config and validated. A missing file is
// not an error; the defaults and environment still apply.
//
// Example designable.toml:
//
//	[log]
//	level = "debug"
//	file = "designable.log"
//
//	[designer]
//	screen = "Responsive"
//	workspaces = ["page", "dialog"]
//	effects = ["effects/select-new.lua"]
//
//	[[shortcuts]]
//	name = "delete"
//	keys = ["Delete"]
//
//	[document]
//	path = "page.yaml"
//	watch = true
package config
