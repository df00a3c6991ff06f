package handlers

import (
	"net/http"

	"lumera/services/hapio"
	"lumera/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler proxies Hapio catalog operations (resources, locations,
// booking groups, service-resource associations) for the admin UI.
type CatalogHandler struct {
	Hapio  hapio.API
	Logger *zap.Logger
}

func NewCatalogHandler(api hapio.API, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Hapio: api, Logger: logger}
}

// ListLocationsHandler handles GET /api/admin/locations.
func (h *CatalogHandler) ListLocationsHandler(c *gin.Context) {
	page, err := h.Hapio.ListLocations(c.Request.Context(), parsePagination(c))
	if err != nil {
		utils.RespondError(c, err, "failed to list locations")
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreateLocationHandler handles POST /api/admin/locations.
func (h *CatalogHandler) CreateLocationHandler(c *gin.Context) {
	var input hapio.CreateLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if input.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing location name", "")
		return
	}

	location, err := h.Hapio.CreateLocation(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err, "failed to create location")
		return
	}
	c.JSON(http.StatusCreated, location)
}

// ListResourcesHandler handles GET /api/admin/resources.
func (h *CatalogHandler) ListResourcesHandler(c *gin.Context) {
	page, err := h.Hapio.ListResources(c.Request.Context(), parsePagination(c))
	if err != nil {
		utils.RespondError(c, err, "failed to list resources")
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreateResourceHandler handles POST /api/admin/resources.
func (h *CatalogHandler) CreateResourceHandler(c *gin.Context) {
	var input hapio.CreateResourceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if input.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing resource name", "")
		return
	}

	resource, err := h.Hapio.CreateResource(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err, "failed to create resource")
		return
	}
	c.JSON(http.StatusCreated, resource)
}

// ListBookingGroupsHandler handles GET /api/admin/booking-groups.
func (h *CatalogHandler) ListBookingGroupsHandler(c *gin.Context) {
	page, err := h.Hapio.ListBookingGroups(c.Request.Context(), parsePagination(c))
	if err != nil {
		utils.RespondError(c, err, "failed to list booking groups")
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreateBookingGroupHandler handles POST /api/admin/booking-groups.
func (h *CatalogHandler) CreateBookingGroupHandler(c *gin.Context) {
	var input hapio.CreateBookingGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	group, err := h.Hapio.CreateBookingGroup(c.Request.Context(), input)
	if err != nil {
		utils.RespondError(c, err, "failed to create booking group")
		return
	}
	c.JSON(http.StatusCreated, group)
}

// ListServiceResourcesHandler handles GET /api/admin/services/:id/resources.
func (h *CatalogHandler) ListServiceResourcesHandler(c *gin.Context) {
	serviceID := c.Param("id")
	page, err := h.Hapio.ListServiceResources(c.Request.Context(), serviceID, parsePagination(c))
	if err != nil {
		utils.RespondError(c, err, "failed to list service resources")
		return
	}
	c.JSON(http.StatusOK, page)
}

// AssociateResourceHandler handles POST /api/admin/services/:id/resources.
func (h *CatalogHandler) AssociateResourceHandler(c *gin.Context) {
	serviceID := c.Param("id")
	var body struct {
		ResourceID string `json:"resource_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ResourceID == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing resource_id", "")
		return
	}

	if err := h.Hapio.AssociateResource(c.Request.Context(), serviceID, body.ResourceID); err != nil {
		utils.RespondError(c, err, "failed to associate resource")
		return
	}
	h.Logger.Info("associated resource with service",
		zap.String("serviceID", serviceID),
		zap.String("resourceID", body.ResourceID))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
