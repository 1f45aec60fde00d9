package handlers

import (
	"net/http"
	"strings"

	"matero/services/assistant"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the read-only material catalog and site list.
type CatalogHandler struct {
	Catalog *assistant.CatalogHolder
}

func NewCatalogHandler(holder *assistant.CatalogHolder) *CatalogHandler {
	return &CatalogHandler{Catalog: holder}
}

// ListMaterialsHandler returns catalog materials, optionally filtered by the
// comma-separated "category" query parameter.
func (h *CatalogHandler) ListMaterialsHandler(c *gin.Context) {
	catalog := h.Catalog.Current()

	if filter := c.Query("category"); filter != "" {
		matched, unknown := catalog.ByCategory(strings.Split(filter, ","))
		if len(unknown) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "Unknown categories",
				"unknown":    unknown,
				"categories": catalog.Categories(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"materials": matched})
		return
	}
	c.JSON(http.StatusOK, gin.H{"materials": catalog.Materials})
}

// ListSitesHandler returns the known site names.
func (h *CatalogHandler) ListSitesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sites": h.Catalog.Current().Sites})
}
