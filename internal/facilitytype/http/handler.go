package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/facility-booking-backend/internal/facilitytype"
	"github.com/campuskit/facility-booking-backend/internal/pkg/request"
	"github.com/campuskit/facility-booking-backend/internal/pkg/response"
)

type Handler struct {
	service facilitytype.Service
}

func NewHandler(service facilitytype.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListFacilityTypesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	types, total, err := h.service.List(c.Request.Context(), facilitytype.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list facility types"})
		return
	}

	items := make([]FacilityTypeResponse, len(types))
	for i, t := range types {
		items[i] = NewResponse(t)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if err == facilitytype.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "facility type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get facility type"})
		return
	}

	c.JSON(http.StatusOK, NewResponse(t))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateFacilityTypeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	t, err := h.service.Create(c.Request.Context(), facilitytype.CreateRequest{
		Code:        body.Code,
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		switch err {
		case facilitytype.ErrCodeRequired, facilitytype.ErrInvalidCode, facilitytype.ErrNameRequired:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case facilitytype.ErrCodeInUse:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create facility type"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewResponse(t))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateFacilityTypeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	t, err := h.service.Update(c.Request.Context(), uri.ID, facilitytype.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		switch err {
		case facilitytype.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "facility type not found"})
		case facilitytype.ErrNameRequired:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update facility type"})
		}
		return
	}

	c.JSON(http.StatusOK, NewResponse(t))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		switch err {
		case facilitytype.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "facility type not found"})
		case facilitytype.ErrTypeReferenced:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete facility type"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
