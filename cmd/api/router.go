package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"course-library-backend/internal/shared/middleware"
	"course-library-backend/internal/shared/response"
	"course-library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
	)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		if c.JWTManager != nil {
			api.Use(middleware.WriteGuard(c.JWTManager))
		}

		setupAuthorRoutes(api, c)
		setupCourseRoutes(api, c)
	}

	return router
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(api *gin.RouterGroup, c *container.Container) {
	authors := api.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.GetAuthors)
		authors.HEAD("", c.AuthorHandler.GetAuthors)
		authors.POST("", c.AuthorHandler.CreateAuthor)
		authors.OPTIONS("", c.AuthorHandler.GetAuthorsOptions)
		authors.GET("/:authorId", c.AuthorHandler.GetAuthor)
		authors.DELETE("/:authorId", c.AuthorHandler.DeleteAuthor)
	}
}

// ========================================
// COURSE ROUTES
// ========================================
func setupCourseRoutes(api *gin.RouterGroup, c *container.Container) {
	courses := api.Group("/authors/:authorId/courses")
	{
		courses.GET("", c.CourseHandler.GetCoursesForAuthor)
		courses.HEAD("", c.CourseHandler.GetCoursesForAuthor)
		courses.POST("", c.CourseHandler.CreateCourseForAuthor)
		courses.OPTIONS("", c.CourseHandler.GetCoursesOptions)
		courses.GET("/:courseId", c.CourseHandler.GetCourseForAuthor)
		courses.PUT("/:courseId", c.CourseHandler.UpdateCourseForAuthor)
		courses.PATCH("/:courseId", c.CourseHandler.PartiallyUpdateCourseForAuthor)
		courses.DELETE("/:courseId", c.CourseHandler.DeleteCourseForAuthor)
	}
}

// ========================================
// HEALTH
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		services := appCtx.HealthStatus(ctx)

		status, code := "ok", http.StatusOK
		for _, s := range services {
			if s == "down" {
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}

		response.Success(c, code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  services,
		})
	}
}
