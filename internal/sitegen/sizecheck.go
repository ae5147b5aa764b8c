package sitegen

import (
	"bytes"
	"compress/gzip"
	"log/slog"

	"github.com/CiaranMcAleer/mdsite/internal/logfields"
)

// gzipSize returns the gzip-compressed length of data.
func gzipSize(data []byte) (int, error) {
	var gzBuf bytes.Buffer
	gz := gzip.NewWriter(&gzBuf)
	if _, err := gz.Write(data); err != nil {
		return 0, err
	}
	if err := gz.Close(); err != nil {
		return 0, err
	}
	return gzBuf.Len(), nil
}

// CheckGzipSize logs the compressed size of a written page and warns when it exceeds
// threshold. It reports whether the page is over. A threshold of 0 disables the check.
func CheckGzipSize(logger *slog.Logger, dest string, data []byte, threshold int) bool {
	if threshold <= 0 {
		return false
	}
	size, err := gzipSize(data)
	if err != nil {
		logger.Debug("Size check failed", logfields.Destination(dest), logfields.Error(err))
		return false
	}
	if size > threshold {
		logger.Warn("Compressed page exceeds size threshold",
			logfields.Destination(dest),
			logfields.Bytes(size),
			slog.Int("threshold", threshold))
		return true
	}
	logger.Debug("Compressed page size", logfields.Destination(dest), logfields.Bytes(size))
	return false
}
