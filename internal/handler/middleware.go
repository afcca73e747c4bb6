package handler

import (
	"github.com/Depado/ginprom"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/unrolled/secure"
)

// RequestIDHeader carries the correlation id in both directions.
const RequestIDHeader = "X-Request-ID"

// MiddlewareOptions configures UseMiddleware.
type MiddlewareOptions struct {
	Logger      zerolog.Logger
	CorsOrigins []string
	// Development relaxes the security headers (no HSTS, no SSL checks).
	Development bool
	// Registry receives the HTTP and list metrics; nil disables /metrics.
	Registry *prometheus.Registry
}

// UseMiddleware installs recovery, request ids, security headers, CORS and,
// optionally, Prometheus instrumentation. Call it once per engine, before
// Register.
func UseMiddleware(engine *gin.Engine, opts MiddlewareOptions) error {
	engine.Use(gin.Recovery(), requestID(opts.Logger), secureHeaders(opts.Development))

	corsConfig := cors.DefaultConfig()
	if len(opts.CorsOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = opts.CorsOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, RequestIDHeader)
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	engine.Use(cors.New(corsConfig))

	if opts.Registry == nil {
		return nil
	}
	if err := opts.Registry.Register(listReads); err != nil {
		return err
	}
	prom := ginprom.New(
		ginprom.Engine(engine),
		ginprom.Registry(opts.Registry),
		ginprom.Namespace("listresult"),
		ginprom.Subsystem("http"),
		ginprom.Path("/metrics"),
	)
	engine.Use(prom.Instrument())
	return nil
}

// requestID tags every request with an id and puts a logger carrying it into
// the request context.
func requestID(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			if u, err := uuid.NewV4(); err == nil {
				id = u.String()
			}
		}
		c.Header(RequestIDHeader, id)

		l := base.With().Str("request_id", id).Logger()
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))
		c.Next()
	}
}

// secureHeaders sets the usual API hardening headers. The API serves JSON
// only, so the CSP allows nothing.
func secureHeaders(development bool) gin.HandlerFunc {
	mw := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		IsDevelopment:         development,
	})
	return func(c *gin.Context) {
		if err := mw.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		c.Next()
	}
}
