package http

import (
	"os"

	"github.com/gin-gonic/gin"
)

// Register mounts the content-generation routes on the given group.
func (h *Handler) Register(r gin.IRouter) {
	agent := r.Group("/agent")
	agent.POST("/generate", h.Generate)
	agent.GET("/download/:filename", h.Download)
	agent.GET("/status", h.Status)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
