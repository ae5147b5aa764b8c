// Package logfields holds the canonical slog attribute names used by the build pipeline.
package logfields

import "log/slog"

const (
	KeySource      = "source"
	KeyDestination = "destination"
	KeyAsset       = "asset"
	KeyDurationMS  = "duration_ms"
	KeyBytes       = "bytes"
	KeyCount       = "count"
	KeyPath        = "path"
	KeyError       = "error"
)

func Source(p string) slog.Attr       { return slog.String(KeySource, p) }
func Destination(p string) slog.Attr  { return slog.String(KeyDestination, p) }
func Asset(p string) slog.Attr        { return slog.String(KeyAsset, p) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Bytes(n int) slog.Attr           { return slog.Int(KeyBytes, n) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
