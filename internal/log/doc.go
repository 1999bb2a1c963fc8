// Package log provides a slog handler wrapper that redacts
// patient-identifying attributes before they reach the underlying handler.
// Dataset files processed by starling often live alongside patient
// identifiers (file names, config entries); masking them at the logging
// boundary keeps identifiers out of terminals and log files regardless of
// which code path emits the record.
package log
