package handler // handler package contains catalog handlers for stores

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

// StoreHandler serves the public store catalog, admin store management and
// the store owner's "my store" endpoints.  All methods assume JWT and role
// middleware ran where the route requires it.
type StoreHandler struct {
	Stores *repository.StoreRepo
}

// NewStoreHandler constructs a StoreHandler and panics if the repository is nil.
func NewStoreHandler(stores *repository.StoreRepo) *StoreHandler {
	if stores == nil {
		panic("nil repository passed to NewStoreHandler")
	}
	return &StoreHandler{Stores: stores}
}

// storeBody is the mutable portion of a store, shared by create and update.
type storeBody struct {
	Name         string             `json:"name"`
	Address      string             `json:"address"`
	Latitude     float64            `json:"latitude"`
	Longitude    float64            `json:"longitude"`
	Phone        string             `json:"phone"`
	Email        string             `json:"email"`
	Description  string             `json:"description"`
	OpeningHours model.OpeningHours `json:"opening_hours"`
}

type storeResp struct {
	ID uint64 `json:"id"`
	storeBody
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toStoreResp(s *model.Store) storeResp {
	return storeResp{
		ID: s.ID,
		storeBody: storeBody{
			Name:         s.Name,
			Address:      s.Address,
			Latitude:     s.Latitude,
			Longitude:    s.Longitude,
			Phone:        s.Phone,
			Email:        s.Email,
			Description:  s.Description,
			OpeningHours: s.OpeningHours,
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (b storeBody) toModel() model.Store {
	return model.Store{
		Name:         strings.TrimSpace(b.Name),
		Address:      b.Address,
		Latitude:     b.Latitude,
		Longitude:    b.Longitude,
		Phone:        b.Phone,
		Email:        b.Email,
		Description:  b.Description,
		OpeningHours: b.OpeningHours,
	}
}

// ListStores handles GET /api/stores and returns every store ordered by
// name. Public, no pagination.
func (h *StoreHandler) ListStores(c echo.Context) error {
	stores, err := h.Stores.ListAll(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list stores: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	out := make([]storeResp, 0, len(stores))
	for _, s := range stores {
		out = append(out, toStoreResp(s))
	}
	return c.JSON(http.StatusOK, out)
}

// GetStore handles GET /api/stores/:id. Public.
func (h *StoreHandler) GetStore(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	s, err := h.Stores.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrStoreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
		}
		c.Logger().Errorf("get store: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, toStoreResp(s))
}

// CreateStore handles POST /api/admin/stores. Admin only.
func (h *StoreHandler) CreateStore(c echo.Context) error {
	var body storeBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	s := body.toModel()
	if s.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if err := h.Stores.Create(c.Request().Context(), &s); err != nil {
		c.Logger().Errorf("create store: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create store"})
	}
	return c.JSON(http.StatusCreated, toStoreResp(&s))
}

// UpdateStore handles PUT /api/admin/stores/:id. Admin only; last write
// wins.
func (h *StoreHandler) UpdateStore(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	return h.updateStore(c, id)
}

// DeleteStore handles DELETE /api/admin/stores/:id. Admin only. Services
// and reservations referencing the store are left untouched (no cascade).
func (h *StoreHandler) DeleteStore(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Stores.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrStoreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
		}
		c.Logger().Errorf("delete store: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "store deleted successfully"})
}

// GetMyStore handles GET /api/store/my for store owners. The store id
// comes from the credential, never from the request.
func (h *StoreHandler) GetMyStore(c echo.Context) error {
	storeID, ok := middleware.StoreIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no store bound to this account"})
	}
	s, err := h.Stores.GetByID(c.Request().Context(), storeID)
	if err != nil {
		if err == repository.ErrStoreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
		}
		c.Logger().Errorf("get my store: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, toStoreResp(s))
}

// UpdateMyStore handles PUT /api/store/my for store owners.
func (h *StoreHandler) UpdateMyStore(c echo.Context) error {
	storeID, ok := middleware.StoreIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no store bound to this account"})
	}
	return h.updateStore(c, storeID)
}

func (h *StoreHandler) updateStore(c echo.Context, id uint64) error {
	var body storeBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	s := body.toModel()
	if s.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	s.ID = id
	if err := h.Stores.Update(c.Request().Context(), &s); err != nil {
		if err == repository.ErrStoreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "store not found"})
		}
		c.Logger().Errorf("update store: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, toStoreResp(&s))
}
