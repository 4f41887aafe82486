package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-insight/apierr"
	"resume-insight/database"
	"resume-insight/logger"
	"resume-insight/middleware"
	"resume-insight/models"
	"resume-insight/pipeline"
)

const (
	MsgNotFound = "Document not found"
	MsgRunning  = "AI Document Insight API is running"
)

type InsightReader interface {
	List(ctx context.Context) ([]models.Insight, error)
	GetByID(ctx context.Context, id uint) (*models.Insight, error)
	Ping(ctx context.Context) error
}

type Uploader interface {
	Process(ctx context.Context, filename string, data []byte) (*pipeline.Result, error)
}

type Handler struct {
	uploader       Uploader
	insights       InsightReader
	maxUploadBytes int64
	log            *logger.Logger
}

func New(uploader Uploader, insights InsightReader, maxUploadBytes int64, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		uploader:       uploader,
		insights:       insights,
		maxUploadBytes: maxUploadBytes,
		log:            log.With("component", "handlers"),
	}
}

// Register mounts the API routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.POST("/upload-resume", h.UploadResume)
	r.GET("/history", h.History)
	r.GET("/insights/:doc_id", h.GetInsight)
}

func detail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": MsgRunning})
}

func (h *Handler) Health(c *gin.Context) {
	if err := h.insights.Ping(c.Request.Context()); err != nil {
		h.log.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) UploadResume(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			detail(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("file too large (max %dMB)", h.maxUploadBytes>>20))
			return
		}
		detail(c, http.StatusBadRequest, pipeline.MsgNoFile)
		return
	}

	file, err := header.Open()
	if err != nil {
		detail(c, http.StatusInternalServerError, "Upload failed: "+err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		detail(c, http.StatusInternalServerError, "Upload failed: "+err.Error())
		return
	}

	res, err := h.uploader.Process(c.Request.Context(), header.Filename, data)
	if err != nil {
		var apiErr *apierr.Error
		if errors.As(err, &apiErr) && apiErr.Kind == apierr.KindValidation {
			h.log.Info("upload rejected", "filename", header.Filename, "reason", apiErr.Message, "request_id", middleware.GetRequestID(c))
			detail(c, apiErr.Status(), apiErr.Message)
			return
		}
		h.log.Error("upload failed", "filename", header.Filename, "error", err, "request_id", middleware.GetRequestID(c))
		detail(c, http.StatusInternalServerError, "Upload failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) History(c *gin.Context) {
	insights, err := h.insights.List(c.Request.Context())
	if err != nil {
		h.log.Error("list insights failed", "error", err)
		detail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, insights)
}

type insightURI struct {
	DocID uint `uri:"doc_id" binding:"required,min=1"`
}

func (h *Handler) GetInsight(c *gin.Context) {
	var uri insightURI
	if err := c.ShouldBindUri(&uri); err != nil {
		detail(c, http.StatusBadRequest, "invalid document id")
		return
	}

	insight, err := h.insights.GetByID(c.Request.Context(), uri.DocID)
	if err != nil {
		apiErr := apierr.Internal(err)
		if errors.Is(err, database.ErrNotFound) {
			apiErr = apierr.NotFound(MsgNotFound)
		} else {
			h.log.Error("get insight failed", "id", uri.DocID, "error", err)
		}
		detail(c, apiErr.Status(), apiErr.Error())
		return
	}
	c.JSON(http.StatusOK, insight)
}
