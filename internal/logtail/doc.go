// Package logtail manages butler's on-disk log file.
//
// # Overview
//
// The interactive UI owns the terminal, so runtime logging cannot go to
// stderr without tearing the frame. Instead butler appends structured log
// lines to a file under the XDG state directory and this package provides
// the pieces around that file: resolving its path, opening it for append,
// and reading its tail for the logs subcommand.
//
// # Reading the Tail
//
// Tail extracts the last N lines in a single sequential pass holding at most
// N lines in memory, so it stays cheap even when the log file has grown
// large. A missing file yields no lines and no error; before the first run
// there is simply nothing to show.
//
// # Error Handling
//
// Open wraps directory and file creation failures. Tail wraps I/O errors and
// treats absence as empty. Neither function retains global state.
package logtail
