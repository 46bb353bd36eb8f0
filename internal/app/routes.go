package app

import (
	"log"
	"log/slog"

	"Planner/internal/cache"
	"Planner/internal/config"
	"Planner/internal/handlers"
	"Planner/internal/repo"
	"Planner/internal/service"
	"Planner/internal/summary"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler())
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	todoRepo := repo.NewPGTodoRepo(db)
	var todoCache *cache.TodoCache
	if rdb != nil {
		todoCache = cache.NewTodoCache(rdb, cfg.Redis.DefaultTTL.Duration())
	}
	todoSvc := service.NewTodoService(todoRepo, todoCache)

	var gen summary.Generator
	if g, err := summary.NewOpenAIGenerator(cfg.AI); err != nil {
		// Summary degrades to its fallback string; everything else still works.
		log.Printf("summary generator disabled: %v", err)
	} else {
		gen = g
	}
	sumSvc := summary.NewService(gen, slog.Default())

	todoHandler := handlers.NewTodoHandler(todoSvc, sumSvc)
	RegisterTodoRoutes(r, todoHandler)
}

// rootHandler is the liveness signal.
func rootHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"Hello": "World"})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"detail": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

// RegisterTodoRoutes binds the todo endpoints. Exported so tests can run the
// exact production route table against a fake-backed handler.
func RegisterTodoRoutes(r gin.IRouter, h *handlers.TodoHandler) {
	r.POST("/todos", h.Create)
	r.GET("/todos", h.List)
	// Static route; takes priority over /todos/:id below.
	r.GET("/todos/summary", h.Summary)
	r.GET("/todos/:id", h.GetByID)
	r.PUT("/todos/:id", h.Update)
	r.DELETE("/todos/:id", h.Delete)
}
