package restapi

import (
	"network_registry/internal/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RouterOptions holds the collaborators of the router besides the handler.
type RouterOptions struct {
	Logger       *zap.Logger
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer // defaults to prometheus.DefaultGatherer
	Limiter      *rate.Limiter       // nil disables rate limiting
	AllowOrigins []string            // empty allows all origins
}

// SetupRouter configures and returns the gin router.
func SetupRouter(handler *NetworkHandler, opts RouterOptions) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(opts.Logger.Named("HTTP")), RequestMetrics(opts.Metrics))

	corsConfig := cors.DefaultConfig()
	if len(opts.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = opts.AllowOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))

	// API v1
	v1 := router.Group("/api/v1")
	if opts.Limiter != nil {
		v1.Use(RateLimit(opts.Limiter))
	}
	{
		v1.GET("/networks", handler.ListNetworksHandler)
		v1.GET("/networks/:network", handler.GetNetworkHandler)
		v1.GET("/networks/:network/endpoints", handler.GetEndpointsHandler)
		v1.GET("/networks/:network/address-params", handler.GetAddressParamsHandler)
	}

	return router
}
