package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authgate "github.com/MrEthical07/authgate"
	promexport "github.com/MrEthical07/authgate/metrics/export/prometheus"
)

// Options configures the HTTP surface.
type Options struct {
	// Logger receives request logs and server-side error detail. Defaults
	// to a no-op logger.
	Logger *zap.Logger
	// Production removes development-only routes. /dev/seed does not exist
	// in production; requests to it fall through to gin's 404.
	Production bool
	// HealthCheck is invoked by GET /healthz. Typically it pings Redis and
	// the credential database. Nil means the process itself is the check.
	HealthCheck func(ctx context.Context) error
}

// NewRouter builds the gin engine serving the gateway.
func NewRouter(gateway *authgate.Gateway, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &handlers{
		gateway: gateway,
		logger:  logger.Named("httpapi"),
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(h.logger))

	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/token", h.token)
	router.DELETE("/logout", h.logout)

	router.GET("/healthz", h.healthz(opts.HealthCheck))
	router.GET("/metrics", gin.WrapH(promexport.NewExporter(gateway).Handler()))

	if !opts.Production {
		router.POST("/dev/seed", h.seed)
	}

	return router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("request", fields...)
			return
		}
		logger.Info("request", fields...)
	}
}
