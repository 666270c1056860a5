// Copyright 2026 The Vaulter Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for vaulter.
//
// A configuration file is optional. It is named by the --config flag
// or, failing that, the VAULTER_CONFIG environment variable; with
// neither, [Default] applies. There is no automatic file search.
//
// After the file is merged over the defaults, VAULTER_DB_PATH
// overrides database.path, and ${HOME} and ${VAR:-default} patterns in
// the path are expanded. No other environment variables override
// config values.
//
// Key exports:
//
//   - [Config] -- Database, Clipboard, and Log sections
//   - [Default] -- the built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.EnsureDatabaseDir] -- creates the store's directory
package config
