package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/facility-booking-backend/internal/facility"
	"github.com/campuskit/facility-booking-backend/internal/pkg/request"
	"github.com/campuskit/facility-booking-backend/internal/pkg/response"
)

type Handler struct {
	service facility.Service
}

func NewHandler(service facility.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListFacilitiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := facility.Filter{
		BuildingID:   req.BuildingID,
		DepartmentID: req.DepartmentID,
		TypeCode:     req.TypeCode,
		ActiveOnly:   req.ActiveOnly,
		Keyword:      req.Keyword,
		Page:         req.Page,
		PageSize:     req.PageSize,
	}

	facilities, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list facilities"})
		return
	}

	items := make([]FacilityResponse, len(facilities))
	for i, f := range facilities {
		items[i] = NewResponse(f)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	f, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if err == facility.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "facility not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get facility"})
		return
	}

	c.JSON(http.StatusOK, NewResponse(f))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateFacilityRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	f, err := h.service.Create(c.Request.Context(), facility.CreateRequest{
		Name:                 body.Name,
		TypeCode:             body.TypeCode,
		BuildingID:           body.BuildingID,
		DepartmentID:         body.DepartmentID,
		Capacity:             body.Capacity,
		IsRestricted:         body.IsRestricted,
		MinBookingMinutes:    body.MinBookingMinutes,
		MaxBookingMinutes:    body.MaxBookingMinutes,
		BufferMinutesBetween: body.BufferMinutesBetween,
		Description:          body.Description,
	})
	if err != nil {
		switch err {
		case facility.ErrEmptyName, facility.ErrInvalidCapacity, facility.ErrInvalidDuration,
			facility.ErrInvalidType, facility.ErrInvalidBuilding, facility.ErrInvalidDept:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create facility"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewResponse(f))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateFacilityRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	f, err := h.service.Update(c.Request.Context(), uri.ID, facility.UpdateRequest{
		Name:                 body.Name,
		Capacity:             body.Capacity,
		IsRestricted:         body.IsRestricted,
		Active:               body.Active,
		MaintenanceMode:      body.MaintenanceMode,
		MinBookingMinutes:    body.MinBookingMinutes,
		MaxBookingMinutes:    body.MaxBookingMinutes,
		BufferMinutesBetween: body.BufferMinutesBetween,
		Description:          body.Description,
		PhotoFileID:          body.PhotoFileID,
	})
	if err != nil {
		switch err {
		case facility.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "facility not found"})
		case facility.ErrEmptyName, facility.ErrInvalidCapacity, facility.ErrInvalidDuration:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update facility"})
		}
		return
	}

	c.JSON(http.StatusOK, NewResponse(f))
}

func (h *Handler) Deactivate(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), req.ID); err != nil {
		if err == facility.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "facility not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deactivate facility"})
		return
	}

	c.Status(http.StatusNoContent)
}
