// Package file provides file-based corpus adapters.
//
// Adapters:
//   - Loader: JSON chat-export parser producing corpus snapshots
//   - Watcher: fsnotify-based change reporting for live reloads
package file
