package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/kukypng/oliver/internal/audit/domain"
	"github.com/kukypng/oliver/internal/auditcontext"
	budgetdomain "github.com/kukypng/oliver/internal/budget/domain"
	"github.com/kukypng/oliver/internal/config"
	documentdomain "github.com/kukypng/oliver/internal/document/domain"
	"github.com/kukypng/oliver/internal/events"
	"github.com/kukypng/oliver/internal/observability/logger"
	"github.com/kukypng/oliver/internal/observability/metrics"
	shopdomain "github.com/kukypng/oliver/internal/shop/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	documentRateLimit  = 30
	documentRateWindow = time.Minute
)

type Server struct {
	cfg config.Config
	db  *gorm.DB
	log *zap.Logger

	budgetSvc   budgetdomain.Service
	shopSvc     shopdomain.Service
	documentSvc documentdomain.Service
	auditSvc    auditdomain.Service
	outbox      *events.Outbox

	documentLimiter *rateLimiter
}

type Param struct {
	fx.In

	Config      config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	BudgetSvc   budgetdomain.Service
	ShopSvc     shopdomain.Service
	DocumentSvc documentdomain.Service
	AuditSvc    auditdomain.Service
	Outbox      *events.Outbox
}

func New(p Param) *Server {
	return &Server{
		cfg: p.Config,
		db:  p.DB,
		log: p.Log.Named("server"),

		budgetSvc:   p.BudgetSvc,
		shopSvc:     p.ShopSvc,
		documentSvc: p.DocumentSvc,
		auditSvc:    p.AuditSvc,
		outbox:      p.Outbox,

		documentLimiter: newRateLimiter(documentRateLimit, documentRateWindow),
	}
}

// NewEngine builds the gin engine with middleware and all routes registered.
func NewEngine(s *Server, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if s.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	engine.Use(metrics.GinMiddleware(httpMetrics))
	engine.Use(auditContextMiddleware())

	s.registerRoutes(engine)
	return engine
}

func (s *Server) registerRoutes(engine *gin.Engine) {
	engine.GET("/healthz", s.Healthz)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/v1")

	budgets := v1.Group("/budgets")
	budgets.POST("", s.CreateBudget)
	budgets.GET("", s.ListBudgets)
	budgets.GET("/:id", s.GetBudget)
	budgets.PUT("/:id", s.UpdateBudget)
	budgets.DELETE("/:id", s.TrashBudget)

	documents := budgets.Group("/:id/document", s.documentRateLimit())
	documents.GET("", s.GetBudgetDocument)
	documents.GET("/image", s.GetBudgetDocumentImage)

	trash := v1.Group("/trash")
	trash.GET("", s.ListTrash)
	trash.POST("/:id/restore", s.RestoreBudget)
	trash.DELETE("/:id", s.PurgeBudget)

	v1.GET("/shop", s.GetShopProfile)
	v1.PUT("/shop", s.UpdateShopProfile)

	v1.GET("/audit", s.ListAuditLogs)
}

func (s *Server) Healthz(c *gin.Context) {
	if err := s.pingDB(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) pingDB(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Server) documentRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.documentLimiter.Allow(c.ClientIP()) {
			AbortWithError(c, rateLimitedError())
			return
		}
		c.Next()
	}
}

func auditContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ctx = auditcontext.WithRequestID(ctx, c.Writer.Header().Get("X-Request-Id"))
		ctx = auditcontext.WithIPAddress(ctx, c.ClientIP())
		ctx = auditcontext.WithUserAgent(ctx, c.Request.UserAgent())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Module wires the HTTP server into the application lifecycle.
var Module = fx.Module("server",
	fx.Provide(New),
	fx.Provide(NewEngine),
	fx.Invoke(RunHTTP),
)

func RunHTTP(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
