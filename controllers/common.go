package controllers

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/fabriciomourateam/controle-de-pacientes-sub007/config"
	"github.com/fabriciomourateam/controle-de-pacientes-sub007/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ownerID reads the caller-supplied identity. Ownership is a parameter here,
// never ambient session state; auth gating lives outside this service.
func ownerID(c *gin.Context) (uint, bool) {
	raw := c.GetHeader("X-Owner-ID")
	if raw == "" {
		raw = c.Query("owner_id")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner_id is required"})
		return 0, false
	}
	return uint(id), true
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// catalogLookup picks the catalog collaborator: the hosted catalog when
// CATALOG_URL is set, the local table otherwise.
func catalogLookup() services.CatalogLookup {
	if os.Getenv("CATALOG_URL") != "" {
		return services.NewRemoteCatalog()
	}
	return services.NewCatalogService(config.DB)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrVersionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
