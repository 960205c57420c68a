package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (app *application) routes() http.Handler {
	if app.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// simple logger middleware that uses zap
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Sugar().Infow("http", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "duration", time.Since(start))
	})

	r.Use(app.CORSMiddleware())

	r.GET("/healthz", app.healthz)

	v1 := r.Group("/api/v1")

	protected := v1.Group("/")
	protected.Use(app.AuthMiddleware())
	{
		protected.POST("/interviews/generate", app.Handler.GenerateInterview)
		protected.GET("/interviews/:id", app.Handler.GetInterview)
		protected.POST("/interviews/list", app.Handler.ListInterviews)
		protected.DELETE("/interviews/:id", app.Handler.DeleteInterview)
	}

	return r
}

func (app *application) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := app.DB.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "database": err.Error()})
		return
	}

	status := gin.H{"status": "ok"}
	if app.Redis != nil {
		if err := app.Redis.Ping(ctx).Err(); err != nil {
			status["cache"] = "down"
		} else {
			status["cache"] = "ok"
		}
	}

	c.JSON(http.StatusOK, status)
}
