package resources

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// TracerMiddleware propagates and records spans for every route.
func TracerMiddleware(name string) gin.HandlerFunc {
	return otelgin.Middleware(name)
}

// MeterMiddleware records request counts and latencies.
func MeterMiddleware(name string) gin.HandlerFunc {
	return NewHTTPMetrics(name).Middleware()
}
