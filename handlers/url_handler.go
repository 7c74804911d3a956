// Package handlers provides HTTP request handlers for the URL shortener service.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"rev-shortener/config"
	"rev-shortener/services"
	"rev-shortener/types"
)

const (
	invalidRequestBody  = "Invalid request body"
	invalidURLProvided  = "Invalid URL provided"
	errorCreatingURL    = "Error creating short URL"
	errorRetrievingURL  = "Error retrieving URL"
	errorRetrievingStat = "Error retrieving stats"
	errorTimeout        = "Request timed out"
	storageCapacityFull = "Storage capacity reached"
	identifiersExhaust  = "No identifiers left"
	shortURLNotFound    = "Short URL not found"
)

// URLHandlerInterface defines the methods that a URL handler should implement.
type URLHandlerInterface interface {
	CreateShortURL(c *gin.Context)
	GetURLData(c *gin.Context)
	GetStats(c *gin.Context)
	HealthCheck(c *gin.Context)
	RedirectURL(c *gin.Context)
	RateLimitMiddleware() gin.HandlerFunc
}

// URLHandler struct holds the dependencies for handling URL-related operations.
type URLHandler struct {
	service services.URLService
	config  *config.Config
	logger  *zap.Logger
}

// NewURLHandler creates and returns a new URLHandler instance.
func NewURLHandler(ctx context.Context, service services.URLService, cfg *config.Config, logger *zap.Logger) (URLHandlerInterface, error) {
	if service == nil {
		return nil, errors.New("service cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return &URLHandler{
		service: service,
		config:  cfg,
		logger:  logger,
	}, nil
}

// handleError maps service errors to HTTP statuses. fallback is the message used
// for unexpected errors.
func (h *URLHandler) handleError(c *gin.Context, err error, fallback string) {
	var statusCode int
	var errorMessage string

	switch {
	case errors.Is(err, services.ErrInvalidLink):
		statusCode = http.StatusBadRequest
		errorMessage = invalidURLProvided
	case errors.Is(err, services.ErrLimitReached):
		statusCode = http.StatusInsufficientStorage
		errorMessage = storageCapacityFull
	case errors.Is(err, services.ErrPoolExhausted):
		statusCode = http.StatusInsufficientStorage
		errorMessage = identifiersExhaust
	case errors.Is(err, services.ErrUnknownURL):
		statusCode = http.StatusNotFound
		errorMessage = shortURLNotFound
	case errors.Is(err, context.DeadlineExceeded):
		statusCode = http.StatusRequestTimeout
		errorMessage = errorTimeout
	default:
		h.logger.Error("Unexpected error", zap.Error(err), zap.String("path", c.FullPath()))
		statusCode = http.StatusInternalServerError
		errorMessage = fallback
	}

	c.JSON(statusCode, gin.H{"error": errorMessage})
}

// CreateShortURL handles the creation of a new shortened URL.
// Shortening a URL twice returns the first short URL again.
func (h *URLHandler) CreateShortURL(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
	defer cancel()

	var input types.URLRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Info("Error decoding request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequestBody})
		return
	}

	urlData, err := h.service.Shorten(ctx, input.URL)
	if err != nil {
		h.handleError(c, err, errorCreatingURL)
		return
	}

	c.JSON(http.StatusCreated, urlData.Response())
}

// GetURLData returns the record for the identifier in the path.
func (h *URLHandler) GetURLData(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
	defer cancel()

	urlData, err := h.service.ResolveID(ctx, c.Param("short_url"))
	if err != nil {
		h.handleError(c, err, errorRetrievingURL)
		return
	}

	c.JSON(http.StatusOK, urlData.Response())
}

// GetStats reports how many URLs are stored and how many slots are left.
func (h *URLHandler) GetStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
	defer cancel()

	stats, err := h.service.Stats(ctx)
	if err != nil {
		h.handleError(c, err, errorRetrievingStat)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// HealthCheck handles the health check endpoint.
func (h *URLHandler) HealthCheck(c *gin.Context) {
	h.logger.Debug("Health check request",
		zap.String("ip", c.ClientIP()),
		zap.String("user_agent", c.Request.UserAgent()))
	c.String(http.StatusOK, "OK")
}
