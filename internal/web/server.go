// Package web gin server hosting the stateless JSON-RPC adapter
package web

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/Laisky/baseline-mcp/internal/baseline"
	"github.com/Laisky/baseline-mcp/internal/mcp"
)

const (
	httpLogBodyLimit = 4096
	shutdownTimeout  = 5 * time.Second
)

// Adapter is the stateless protocol adapter served over HTTP.
type Adapter interface {
	Dispatch(ctx context.Context, body []byte) *mcp.Response
	Health() mcp.HealthDocument
}

type handler struct {
	adapter Adapter
}

// NewEngine builds the gin engine serving adapter on every path.
// GET returns the health document, POST dispatches a JSON-RPC envelope,
// OPTIONS is answered by the CORS middleware and anything else gets 405.
func NewEngine(adapter Adapter, logger logSDK.Logger) (*gin.Engine, error) {
	if adapter == nil {
		return nil, errors.New("adapter is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		requestID,
		gmw.NewLoggerMiddleware(
			gmw.WithLogger(logger.Named("gin")),
		),
		logBodies(httpLogBodyLimit),
		allowCORS,
	)

	h := &handler{adapter: adapter}
	engine.Any("/*path", h.serve)
	engine.NoRoute(h.serve)

	return engine, nil
}

// RunServer serves handler on addr until ctx is cancelled, then shuts down.
func RunServer(ctx context.Context, addr string, handler http.Handler, logger logSDK.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on http", zap.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "listen on %s", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down http server", zap.String("addr", addr))
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown http server")
	}
	return nil
}

func (h *handler) serve(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet:
		c.JSON(http.StatusOK, h.adapter.Health())
	case http.MethodPost:
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			gmw.GetLogger(c).Warn("read request body", zap.Error(err))
			body = nil
		}

		resp := h.adapter.Dispatch(c.Request.Context(), body)
		c.JSON(responseStatus(resp), resp)
	default:
		c.String(http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

// responseStatus maps a JSON-RPC response to its HTTP status code.
func responseStatus(resp *mcp.Response) int {
	switch {
	case resp == nil || resp.Error == nil:
		return http.StatusOK
	case resp.Error.Code == baseline.CodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func allowCORS(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	c.Header("Access-Control-Max-Age", "86400")

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	c.Next()
}
