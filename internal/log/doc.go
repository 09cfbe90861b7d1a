// Package log provides the slog setup for morguelib.
//
// Morgue files run to hundreds of lines, and attribute values that
// carry page or morgue text would otherwise flood the log. The
// TruncatingHandler caps every string attribute at a fixed length
// before handing the record to the underlying text or JSON handler.
package log
