package web

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	gmw "github.com/Laisky/gin-middlewares/v7"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Laisky/baseline-mcp/library"
	"github.com/Laisky/baseline-mcp/library/log"
)

const (
	// HeaderRequestID carries the per-request id on requests and responses.
	HeaderRequestID = "X-Request-Id"
	ctxKeyRequestID = "request_id"
)

// requestID propagates the caller's request id or assigns a new one.
func requestID(c *gin.Context) {
	id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
	if id == "" {
		id = uuid.NewString()
	}

	c.Set(ctxKeyRequestID, id)
	c.Header(HeaderRequestID, id)
	c.Next()
}

// logBodies logs request and response bodies at debug level, truncated to limit bytes.
func logBodies(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		startAt := time.Now()
		var logger logSDK.Logger = log.Logger.Named("http")
		if ctxLogger := gmw.GetLogger(c); ctxLogger != nil {
			logger = ctxLogger
		}
		logger = logger.With(zap.String("request_id", c.GetString(ctxKeyRequestID)))

		body, truncated, err := readAndRestoreRequestBody(c.Request, limit)
		if err != nil {
			logger.Error("read request body", zap.Error(err))
		}
		logger.Debug("incoming http request",
			zap.String("method", c.Request.Method),
			zap.String("url", c.Request.URL.String()),
			zap.String("body", body),
			zap.Bool("body_truncated", truncated),
			zap.String("remote_addr", c.Request.RemoteAddr),
		)

		lrw := newLoggingResponseWriter(c.Writer, limit)
		c.Writer = lrw
		c.Next()

		respBody, respTruncated := lrw.Body()
		logger.Debug("outgoing http response",
			zap.String("method", c.Request.Method),
			zap.String("url", c.Request.URL.String()),
			zap.Int("status", lrw.Status()),
			zap.String("body", respBody),
			zap.Bool("body_truncated", respTruncated),
			zap.Duration("cost", time.Since(startAt)),
		)
	}
}

func readAndRestoreRequestBody(r *http.Request, limit int) (string, bool, error) {
	if r.Body == nil {
		return "", false, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", false, err
	}
	if err := r.Body.Close(); err != nil {
		return "", false, err
	}

	r.Body = io.NopCloser(bytes.NewReader(data))
	truncatedBody, truncated := library.TruncateForLog(data, limit)
	return truncatedBody, truncated, nil
}

// loggingResponseWriter keeps a bounded copy of everything written to the client.
type loggingResponseWriter struct {
	gin.ResponseWriter
	buffer    bytes.Buffer
	truncated bool
	bodyLimit int
}

func newLoggingResponseWriter(w gin.ResponseWriter, limit int) *loggingResponseWriter {
	return &loggingResponseWriter{
		ResponseWriter: w,
		bodyLimit:      limit,
	}
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	lrw.capture(b)
	return lrw.ResponseWriter.Write(b)
}

func (lrw *loggingResponseWriter) WriteString(s string) (int, error) {
	lrw.capture([]byte(s))
	return lrw.ResponseWriter.WriteString(s)
}

func (lrw *loggingResponseWriter) capture(b []byte) {
	if lrw.buffer.Len() >= lrw.bodyLimit {
		lrw.truncated = lrw.truncated || len(b) > 0
		return
	}

	remaining := lrw.bodyLimit - lrw.buffer.Len()
	if len(b) > remaining {
		lrw.buffer.Write(b[:remaining])
		lrw.truncated = true
		return
	}
	lrw.buffer.Write(b)
}

func (lrw *loggingResponseWriter) Body() (string, bool) {
	return lrw.buffer.String(), lrw.truncated
}
