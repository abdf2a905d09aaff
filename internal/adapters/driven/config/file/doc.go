// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem under ~/.closet.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - Watcher: fsnotify-driven reload of the config file
package file
