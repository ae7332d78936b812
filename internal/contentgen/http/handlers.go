package http

import (
	"context"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jaltareyr/edumind-api/internal/contentgen/domain"
)

// filenamePattern is the download allow-pattern: word characters, dots,
// dashes and underscores only, ending in a known document extension. It is
// checked before any filesystem access so traversal attempts never reach
// the disk.
var filenamePattern = regexp.MustCompile(`^[\w\-.]+\.(pdf|pptx)$`)

const pptxMediaType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// Generator runs one content-generation workflow.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) domain.WorkflowOutcome
}

type Handler struct {
	generator       Generator
	outputDir       string
	hasGeneratorKey bool
}

func NewHandler(generator Generator, outputDir string, hasGeneratorKey bool) *Handler {
	return &Handler{
		generator:       generator,
		outputDir:       outputDir,
		hasGeneratorKey: hasGeneratorKey,
	}
}

// Generate handles POST /agent/generate.
func (h *Handler) Generate(c *gin.Context) {
	var body GenerateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(body.Requirements) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrEmptyRequirements.Error()})
		return
	}

	req := domain.GenerationRequest{
		Requirements: body.Requirements,
		IncludePDF:   true,
		IncludePPT:   true,
		OutputDir:    body.OutputDir,
	}
	if body.IncludePDF != nil {
		req.IncludePDF = *body.IncludePDF
	}
	if body.IncludePPT != nil {
		req.IncludePPT = *body.IncludePPT
	}

	outcome := h.generator.Generate(c.Request.Context(), req)
	c.JSON(http.StatusOK, outcome)
}

// Download handles GET /agent/download/:filename. An invalid filename is a
// distinct condition from a missing file.
func (h *Handler) Download(c *gin.Context) {
	filename := c.Param("filename")
	if !filenamePattern.MatchString(filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidFilename.Error()})
		return
	}

	path := filepath.Join(h.outputDir, filename)
	if !fileExists(path) {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrFileNotFound.Error()})
		return
	}

	mediaType := "application/pdf"
	if strings.HasSuffix(filename, ".pptx") {
		mediaType = pptxMediaType
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", mediaType)
	c.File(path)
}

// Status handles GET /agent/status.
func (h *Handler) Status(c *gin.Context) {
	status := "operational"
	message := "Agent system is ready"
	if !h.hasGeneratorKey {
		status = "warning"
		message = "Generator API key not configured"
	}

	c.JSON(http.StatusOK, StatusResponse{
		Status:          status,
		Message:         message,
		HasGeneratorKey: h.hasGeneratorKey,
		AvailableFeatures: map[string]bool{
			"pdf_generation":       true,
			"ppt_generation":       true,
			"knowledge_base_query": true,
		},
	})
}
