package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"marquee/internal/register"
	"marquee/internal/system"
	appver "marquee/internal/version"
)

// HTTP accepts values over HTTP:
//
//	PUT|POST /text   body is the new value
//	DELETE   /text   pause
//	GET      /text   current value (204 when empty)
//	GET      /health liveness
type HTTP struct {
	Addr string
}

func (h *HTTP) Run(ctx context.Context, reg *register.Register) error {
	srv := &http.Server{Addr: h.Addr, Handler: Handler(reg), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	system.Logger.Info("input server listening", "addr", h.Addr)
	if err := srv.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("input server: %w", err)
	}
	return nil
}

// Handler returns the routes serving reg.
func Handler(reg *register.Register) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(requestLogger())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": appver.AppVersion})
	})
	r.GET("/text", func(c *gin.Context) {
		v, ok := reg.Load()
		if !ok || v == "" {
			c.Status(http.StatusNoContent)
			return
		}
		c.String(http.StatusOK, v)
	})
	r.PUT("/text", storeText(reg))
	r.POST("/text", storeText(reg))
	r.DELETE("/text", func(c *gin.Context) {
		reg.Store("")
		c.Status(http.StatusNoContent)
	})
	return r
}

func storeText(reg *register.Register) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := io.ReadAll(io.LimitReader(c.Request.Body, maxLine+1))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(b) > maxLine {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "value too large"})
			return
		}
		v := strings.TrimSuffix(strings.TrimSuffix(string(b), "\n"), "\r")
		if strings.ContainsAny(v, "\r\n") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "value must be a single line"})
			return
		}
		reg.Store(v)
		c.Status(http.StatusNoContent)
	}
}

// requestLogger routes access logs to the shared logger; gin's own logger
// writes to stdout, which carries the frames.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		system.Logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}
