package application

import "log/slog"

// ResolveLogger falls back to the default logger when none is configured,
// so a zero-value Engine still logs somewhere sane.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
