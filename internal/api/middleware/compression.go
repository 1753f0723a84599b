package middleware

import (
	"compress/gzip"
	"strings"

	"github.com/gin-gonic/gin"
)

// CompressionConfig holds configuration for the compression middleware
type CompressionConfig struct {
	// Gzip compression level (1-9, higher = better compression but slower)
	Level int
}

// DefaultCompressionConfig returns the default compression configuration
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		Level: gzip.DefaultCompression,
	}
}

// gzipResponseWriter wraps the response writer with a gzip stream
type gzipResponseWriter struct {
	gin.ResponseWriter
	writer *gzip.Writer
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.writer.Write(data)
}

func (w *gzipResponseWriter) WriteString(s string) (int, error) {
	return w.writer.Write([]byte(s))
}

// Compression returns a middleware that gzip-compresses responses for
// clients that accept it. All API payloads are JSON, so there is no
// content-type exclusion list.
func Compression(cfg CompressionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.Request.Header.Get("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		gz, err := gzip.NewWriterLevel(c.Writer, cfg.Level)
		if err != nil {
			c.Next()
			return
		}

		c.Header("Content-Encoding", "gzip")
		c.Header("Vary", "Accept-Encoding")

		c.Writer = &gzipResponseWriter{ResponseWriter: c.Writer, writer: gz}

		defer func() {
			gz.Close()
			c.Header("Content-Length", "")
		}()

		c.Next()
	}
}
