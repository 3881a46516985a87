package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/migration-discovery/api/v1"
	srvErrors "github.com/kubev2v/migration-discovery/pkg/errors"
)

// GetDiscoveryStatus returns the discovery status
// (GET /discovery)
func (h *Handler) GetDiscoveryStatus(c *gin.Context) {
	status := h.discoverySrv.GetStatus()
	c.JSON(http.StatusOK, v1.NewDiscoveryStatus(status))
}

// StartDiscovery starts an asynchronous discovery
// (POST /discovery)
func (h *Handler) StartDiscovery(c *gin.Context) {
	var body v1.StartDiscoveryJSONRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if len(body.Targets) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one target is required"})
		return
	}

	req, err := body.ToModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.discoverySrv.Start(c.Request.Context(), req); err != nil {
		switch err.(type) {
		case *srvErrors.DiscoveryInProgressError:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case *srvErrors.InvalidConfigurationError:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			zap.S().Named("discovery_handler").Errorw("failed to start discovery", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start discovery"})
		}
		return
	}

	status := h.discoverySrv.GetStatus()
	c.JSON(http.StatusAccepted, v1.NewDiscoveryStatus(status))
}

// StopDiscovery cancels the running discovery. Its partial catalog is stored.
// (DELETE /discovery)
func (h *Handler) StopDiscovery(c *gin.Context) {
	h.discoverySrv.Stop()

	status := h.discoverySrv.GetStatus()
	c.JSON(http.StatusOK, v1.NewDiscoveryStatus(status))
}
