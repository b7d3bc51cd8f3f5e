package api

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"balimatch/server/internal/database"
	"balimatch/server/internal/models"
	"balimatch/server/internal/queue"
	"balimatch/server/internal/search"
)

type Handler struct {
	store    *database.Store
	queue    *queue.ListingQueue
	pipeline *search.Pipeline
	logger   *logrus.Logger
}

type QueryRequest struct {
	Message string `json:"message" binding:"required"`
}

func NewHandler(store *database.Store, q *queue.ListingQueue, pipeline *search.Pipeline, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		store:    store,
		queue:    q,
		pipeline: pipeline,
		logger:   logger,
	}
}

// Query runs the full property-finder pipeline for one message.
func (h *Handler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse query request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	reply, listings, locale := h.pipeline.ResolveQuery(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, gin.H{
		"reply":      reply,
		"properties": listings,
		"locale":     locale,
	})
}

// GetListings returns stored listings, optionally narrowed by district and
// type.
func (h *Handler) GetListings(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "100")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 100
	}

	fields := map[string]string{}
	if district := c.Query("district"); district != "" {
		fields["district"] = district
	}
	if typ := c.Query("type"); typ != "" {
		fields["type"] = typ
	}

	listings, err := h.store.FindByFields(c.Request.Context(), fields, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listings"})
		return
	}

	c.JSON(http.StatusOK, listings)
}

// CreateListings enqueues a batch for the ingestion processors.
func (h *Handler) CreateListings(c *gin.Context) {
	var batch []*models.Listing
	if err := c.ShouldBindJSON(&batch); err != nil {
		h.logger.WithError(err).Error("Failed to parse listings batch")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}
	if len(batch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty batch"})
		return
	}
	for _, l := range batch {
		if l.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Every listing needs an id"})
			return
		}
	}

	if err := h.queue.Push(batch); err != nil {
		h.logger.WithError(err).Error("Failed to enqueue listings batch")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ingestion queue unavailable"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":   "queued",
		"accepted": len(batch),
	})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
