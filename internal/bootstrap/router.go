package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/jaltareyr/edumind-api/internal/api/http"
	"github.com/jaltareyr/edumind-api/internal/api/http/middleware"
	cghttp "github.com/jaltareyr/edumind-api/internal/contentgen/http"
)

type RouterDeps struct {
	ServiceName     string
	Version         string
	OutputDir       string
	HasGeneratorKey bool
	Generator       cghttp.Generator
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.HasGeneratorKey)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())

	handler := cghttp.NewHandler(dep.Generator, dep.OutputDir, dep.HasGeneratorKey)
	handler.Register(api)

	return r
}
