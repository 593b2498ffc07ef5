package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joblens/joblens/internal/domain"
	"github.com/joblens/joblens/internal/domain/job"
	"github.com/joblens/joblens/pkg/logging"
)

type handler struct {
	service job.Service
	logger  *logging.Logger
}

func newHandler(service job.Service, logger *logging.Logger) *handler {
	return &handler{service: service, logger: logger}
}

// search handles GET /api/jobs. Filters arrive as query parameters; the
// orchestrator absorbs provider failures, so errors here are internal
// bugs and are never echoed verbatim to the client.
func (h *handler) search(c *gin.Context) {
	var req domain.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	resp, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("search failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load jobs"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// get handles GET /api/jobs/:id.
func (h *handler) get(c *gin.Context) {
	id := c.Param("id")

	j, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		h.logger.Error("job lookup failed", "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load job"})
		return
	}

	c.JSON(http.StatusOK, j)
}
