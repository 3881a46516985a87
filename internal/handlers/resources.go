package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/migration-discovery/api/v1"
	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/internal/services"
	srvErrors "github.com/kubev2v/migration-discovery/pkg/errors"
	"github.com/kubev2v/migration-discovery/pkg/filter"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListResources returns the resources of a catalog with filtering and pagination
// (GET /resources)
func (h *Handler) ListResources(c *gin.Context, params v1.ListResourcesParams) {
	page := 1
	if params.Page != nil {
		if *params.Page < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a positive integer"})
			return
		}
		page = *params.Page
	}
	pageSize := defaultPageSize
	if params.PageSize != nil {
		if *params.PageSize < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pageSize must be a positive integer"})
			return
		}
		pageSize = min(*params.PageSize, maxPageSize)
	}

	// (page-1)*pageSize must fit in an int.
	if page-1 > math.MaxInt/pageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page is out of range"})
		return
	}

	svcParams := services.ResourceListParams{
		Limit:  uint64(pageSize),
		Offset: uint64((page - 1) * pageSize),
	}
	if params.CatalogId != nil {
		svcParams.CatalogID = *params.CatalogId
	}

	if params.Filter != nil && *params.Filter != "" {
		expr, err := filter.ParseResourceFilter([]byte(*params.Filter))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter: " + err.Error()})
			return
		}
		svcParams.Filter = expr
	}

	if params.Provider != nil {
		for _, p := range *params.Provider {
			provider, err := models.ParseProvider(string(p))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			svcParams.Providers = append(svcParams.Providers, provider)
		}
	}

	resources, total, err := h.catalogSrv.ListResources(c.Request.Context(), svcParams)
	if err != nil {
		if srvErrors.IsResourceNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("resource_handler").Errorw("failed to list resources", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list resources"})
		return
	}

	pageCount := (total + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}

	if resources == nil {
		resources = []models.Resource{}
	}

	c.JSON(http.StatusOK, v1.ResourceListResponse{
		Page:      page,
		PageCount: pageCount,
		Total:     total,
		Resources: resources,
	})
}
