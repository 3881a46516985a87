package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/migration-discovery/api/v1"
	srvErrors "github.com/kubev2v/migration-discovery/pkg/errors"
)

// ListCatalogs returns the stored catalog summaries, newest first
// (GET /catalogs)
func (h *Handler) ListCatalogs(c *gin.Context, params v1.ListCatalogsParams) {
	var limit uint64
	if params.Limit != nil {
		if *params.Limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit cannot be negative"})
			return
		}
		limit = uint64(*params.Limit)
	}

	summaries, err := h.catalogSrv.List(c.Request.Context(), limit)
	if err != nil {
		zap.S().Named("catalog_handler").Errorw("failed to list catalogs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list catalogs"})
		return
	}

	c.JSON(http.StatusOK, v1.NewCatalogListResponse(summaries))
}

// GetCatalog returns a stored catalog document. The id "latest" selects the most recent one.
// (GET /catalogs/{id})
func (h *Handler) GetCatalog(c *gin.Context, id string) {
	catalog, err := h.catalogSrv.Get(c.Request.Context(), id)
	if err != nil {
		if srvErrors.IsResourceNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("catalog_handler").Errorw("failed to get catalog", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get catalog"})
		return
	}

	c.JSON(http.StatusOK, catalog)
}
