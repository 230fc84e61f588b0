package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyCategory   = "category"
	KeyRef        = "ref"
	KeyRule       = "rule"
	KeySeverity   = "severity"
	KeyPath       = "path"
	KeyPlugin     = "plugin"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Category(label string) slog.Attr { return slog.String(KeyCategory, label) }
func Ref(ref string) slog.Attr        { return slog.String(KeyRef, ref) }
func Rule(name string) slog.Attr      { return slog.String(KeyRule, name) }
func Severity(s string) slog.Attr     { return slog.String(KeySeverity, s) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Plugin(name string) slog.Attr    { return slog.String(KeyPlugin, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
