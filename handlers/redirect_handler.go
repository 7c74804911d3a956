package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RedirectURL redirects the short URL in the path to its original URL.
func (h *URLHandler) RedirectURL(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
	defer cancel()

	identifier := c.Param("short_url")

	urlData, err := h.service.ResolveID(ctx, identifier)
	if err != nil {
		h.handleError(c, err, errorRetrievingURL)
		return
	}

	h.logger.Info("Redirecting",
		zap.String("short_url", urlData.ShortURL),
		zap.String("original_url", urlData.OriginalURL),
		zap.String("ip", c.ClientIP()),
		zap.String("user_agent", c.Request.UserAgent()))
	c.Redirect(http.StatusMovedPermanently, urlData.OriginalURL)
}
