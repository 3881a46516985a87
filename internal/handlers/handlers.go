package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/migration-discovery/api/v1"
	"github.com/kubev2v/migration-discovery/internal/models"
	"github.com/kubev2v/migration-discovery/internal/services"
)

type DiscoveryService interface {
	GetStatus() models.DiscoveryStatus
	Start(ctx context.Context, req models.DiscoveryRequest) error
	Stop()
	SaveCredentials(cfg models.AdapterConfig) error
	HasCredentials() bool
}

type CatalogService interface {
	List(ctx context.Context, limit uint64) ([]models.CatalogSummary, error)
	Get(ctx context.Context, id string) (*models.Catalog, error)
	ListResources(ctx context.Context, params services.ResourceListParams) ([]models.Resource, int, error)
}

type Handler struct {
	discoverySrv DiscoveryService
	catalogSrv   CatalogService
}

func New(discoverySrv DiscoveryService, catalogSrv CatalogService) *Handler {
	return &Handler{
		discoverySrv: discoverySrv,
		catalogSrv:   catalogSrv,
	}
}

var _ v1.ServerInterface = (*Handler)(nil)

// Register adds every endpoint of the OpenAPI document to router.
// Malformed parameters are answered with 400 and an {"error": ...} body.
func (h *Handler) Register(router *gin.RouterGroup) {
	v1.RegisterHandlersWithOptions(router, h, v1.GinServerOptions{
		ErrorHandler: func(c *gin.Context, err error, statusCode int) {
			c.JSON(statusCode, gin.H{"error": err.Error()})
		},
	})
}
