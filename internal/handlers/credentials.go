package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/migration-discovery/api/v1"
	srvErrors "github.com/kubev2v/migration-discovery/pkg/errors"
)

// GetCredentialsStatus tells whether provider credentials are stored. Secrets are never returned.
// (GET /credentials)
func (h *Handler) GetCredentialsStatus(c *gin.Context) {
	c.JSON(http.StatusOK, v1.CredentialsStatus{Stored: h.discoverySrv.HasCredentials()})
}

// PutCredentials stores provider credentials. Provider sections left out keep their stored value.
// (PUT /credentials)
func (h *Handler) PutCredentials(c *gin.Context) {
	var cfg v1.PutCredentialsJSONRequestBody
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.discoverySrv.SaveCredentials(cfg); err != nil {
		if srvErrors.IsInvalidConfigurationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("credentials_handler").Errorw("failed to save credentials", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save credentials"})
		return
	}

	c.Status(http.StatusNoContent)
}
