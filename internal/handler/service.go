package handler // handler package contains service catalog handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/9santoshki/saloon-reservation/internal/middleware"
	"github.com/9santoshki/saloon-reservation/internal/model"
	"github.com/9santoshki/saloon-reservation/internal/repository"
)

// ServiceHandler serves service listing for both roles and service
// management for store owners.  Ownership of mutations is enforced in the
// repository with conditional statements; this layer only translates the
// resulting sentinel errors into HTTP responses.
type ServiceHandler struct {
	Services *repository.ServiceRepo
}

// NewServiceHandler constructs a ServiceHandler and panics if the
// repository is nil.
func NewServiceHandler(services *repository.ServiceRepo) *ServiceHandler {
	if services == nil {
		panic("nil repository passed to NewServiceHandler")
	}
	return &ServiceHandler{Services: services}
}

type serviceBody struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Duration    uint32  `json:"duration"`
	Price       float64 `json:"price"`
}

type serviceResp struct {
	ID uint64 `json:"id"`
	serviceBody
	StoreID   uint64    `json:"store_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toServiceResp(s *model.Service) serviceResp {
	return serviceResp{
		ID: s.ID,
		serviceBody: serviceBody{
			Name:        s.Name,
			Description: s.Description,
			Duration:    s.Duration,
			Price:       s.Price,
		},
		StoreID:   s.StoreID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func serviceList(services []*model.Service) []serviceResp {
	out := make([]serviceResp, 0, len(services))
	for _, s := range services {
		out = append(out, toServiceResp(s))
	}
	return out
}

// validate checks the mutable service fields shared by create and update.
func (b serviceBody) validate() string {
	if strings.TrimSpace(b.Name) == "" {
		return "name is required"
	}
	if b.Duration == 0 {
		return "duration must be positive"
	}
	if b.Price < 0 {
		return "price must not be negative"
	}
	return ""
}

// ListServices handles GET /api/services.  Admins see the whole catalog;
// a store owner's listing is forced to their own store regardless of any
// query parameters.
func (h *ServiceHandler) ListServices(c echo.Context) error {
	ctx := c.Request().Context()
	if getRole(c) == model.RoleStoreOwner {
		storeID, ok := middleware.StoreIDFromContext(c)
		if !ok {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "no store bound to this account"})
		}
		services, err := h.Services.ListByStore(ctx, storeID)
		if err != nil {
			c.Logger().Errorf("list services: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}
		return c.JSON(http.StatusOK, serviceList(services))
	}
	services, err := h.Services.ListAll(ctx)
	if err != nil {
		c.Logger().Errorf("list services: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, serviceList(services))
}

// ListStoreServices handles GET /api/services/store/:storeId.  The
// store-scope middleware already rejected store owners whose credential
// names a different store, so this only has to query.
func (h *ServiceHandler) ListStoreServices(c echo.Context) error {
	storeID, err := strconv.ParseUint(c.Param("storeId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid store id"})
	}
	services, err := h.Services.ListByStore(c.Request().Context(), storeID)
	if err != nil {
		c.Logger().Errorf("list store services: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, serviceList(services))
}

// CreateService handles POST /api/store/services.  The owning store comes
// from the credential, never from the body, so an owner cannot create
// services under another store.
func (h *ServiceHandler) CreateService(c echo.Context) error {
	storeID, ok := middleware.StoreIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no store bound to this account"})
	}
	var body serviceBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	s := model.Service{
		StoreID:     storeID,
		Name:        strings.TrimSpace(body.Name),
		Description: body.Description,
		Duration:    body.Duration,
		Price:       body.Price,
	}
	if err := h.Services.Create(c.Request().Context(), &s); err != nil {
		c.Logger().Errorf("create service: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create service"})
	}
	return c.JSON(http.StatusCreated, toServiceResp(&s))
}

// UpdateService handles PUT /api/store/services/:id.  A service belonging
// to another store yields 403, a missing one 404.
func (h *ServiceHandler) UpdateService(c echo.Context) error {
	storeID, ok := middleware.StoreIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no store bound to this account"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body serviceBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	s := model.Service{
		ID:          id,
		StoreID:     storeID,
		Name:        strings.TrimSpace(body.Name),
		Description: body.Description,
		Duration:    body.Duration,
		Price:       body.Price,
	}
	if err := h.Services.UpdateOwned(c.Request().Context(), &s); err != nil {
		switch err {
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized to update this service"})
		case repository.ErrServiceNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		}
		c.Logger().Errorf("update service: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, toServiceResp(&s))
}

// DeleteService handles DELETE /api/store/services/:id with the same
// 403/404 distinction as UpdateService.
func (h *ServiceHandler) DeleteService(c echo.Context) error {
	storeID, ok := middleware.StoreIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no store bound to this account"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Services.DeleteOwned(c.Request().Context(), id, storeID); err != nil {
		switch err {
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized to delete this service"})
		case repository.ErrServiceNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		}
		c.Logger().Errorf("delete service: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "service deleted successfully"})
}
