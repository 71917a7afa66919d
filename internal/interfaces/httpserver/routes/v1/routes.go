package v1

import (
	"github.com/gin-gonic/gin"

	"apkraft/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates resource route registration.
type Routes struct {
	handlers *handlers.Provider
}

func NewRoutes(provider *handlers.Provider) *Routes {
	return &Routes{handlers: provider}
}

// Register attaches all resource routes under the /api prefix.
func (r *Routes) Register(router gin.IRouter) {
	api := router.Group("/api")

	platforms := api.Group("/platforms")
	platforms.GET("/", r.handlers.Platform.List)
	platforms.POST("/", r.handlers.Platform.Create)
	platforms.GET("/:id", r.handlers.Platform.Get)
	platforms.PUT("/:id", r.handlers.Platform.Replace)
	platforms.PATCH("/:id", r.handlers.Platform.Patch)
	platforms.DELETE("/:id", r.handlers.Platform.Delete)

	apps := api.Group("/apps")
	apps.GET("/", r.handlers.App.List)
	apps.POST("/", r.handlers.App.Create)
	apps.GET("/:id", r.handlers.App.Get)
	apps.PUT("/:id", r.handlers.App.Replace)
	apps.PATCH("/:id", r.handlers.App.Patch)
	apps.DELETE("/:id", r.handlers.App.Delete)
	apps.GET("/:id/check-update", r.handlers.App.CheckUpdate)

	versions := api.Group("/app-versions")
	versions.GET("/", r.handlers.Version.List)
	versions.POST("/", r.handlers.Version.Create)
	versions.GET("/:id", r.handlers.Version.Get)
	versions.PUT("/:id", r.handlers.Version.Patch)
	versions.PATCH("/:id", r.handlers.Version.Patch)
	versions.DELETE("/:id", r.handlers.Version.Delete)
	versions.POST("/:id/publish", r.handlers.Version.Publish)

	files := api.Group("/files")
	files.GET("/", r.handlers.File.List)
	files.POST("/", r.handlers.File.Upload)
	files.GET("/static/:key", r.handlers.File.Serve)
	files.GET("/:id", r.handlers.File.Get)
	files.PUT("/:id", r.handlers.File.Update)
	files.PATCH("/:id", r.handlers.File.Update)
	files.DELETE("/:id", r.handlers.File.Delete)
}
