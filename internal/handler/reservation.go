package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/9santoshki/saloon-reservation/internal/model"
	"github.com/9santoshki/saloon-reservation/internal/queue"
	"github.com/9santoshki/saloon-reservation/internal/repository"
	queue_publisher "github.com/9santoshki/saloon-reservation/internal/service"
)

// ReservationHandler groups the repositories needed to read and write the
// reservation ledger.  All methods assume JWT authentication ran; the
// requested user id in the path must match the credential unless the
// caller is an admin.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Stores       *repository.StoreRepo
	Services     *repository.ServiceRepo
}

// NewReservationHandler constructs a ReservationHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewReservationHandler(reservations *repository.ReservationRepo, stores *repository.StoreRepo, services *repository.ServiceRepo) *ReservationHandler {
	if reservations == nil || stores == nil || services == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: reservations, Stores: stores, Services: services}
}

type reservationResp struct {
	ID            uint64    `json:"id"`
	UserID        uint64    `json:"user_id"`
	StoreID       uint64    `json:"store_id"`
	ServiceID     uint64    `json:"service_id"`
	Date          string    `json:"reservation_date"`
	Time          string    `json:"reservation_time"`
	Duration      uint32    `json:"duration"`
	TotalAmount   float64   `json:"total_amount"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toReservationResp(r *model.Reservation) reservationResp {
	return reservationResp{
		ID:            r.ID,
		UserID:        r.UserID,
		StoreID:       r.StoreID,
		ServiceID:     r.ServiceID,
		Date:          r.Date,
		Time:          r.Time,
		Duration:      r.Duration,
		TotalAmount:   r.TotalAmount,
		Status:        r.Status,
		PaymentStatus: r.PaymentStatus,
		PaymentMethod: r.PaymentMethod,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// pathUser parses the :userId parameter and enforces that it matches the
// authenticated account.  Admin credentials may read any user's ledger.
func pathUser(c echo.Context) (uint64, error) {
	requested, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if getRole(c) == model.RoleAdmin {
		return requested, nil
	}
	callerID, err := getUserID(c)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if callerID != requested {
		return 0, echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return requested, nil
}

// ListReservations handles GET /api/reservations/:userId, newest first.
func (h *ReservationHandler) ListReservations(c echo.Context) error {
	userID, err := pathUser(c)
	if err != nil {
		return err
	}
	list, err := h.Reservations.ListByUser(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Errorf("list reservations: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	out := make([]reservationResp, 0, len(list))
	for _, r := range list {
		out = append(out, toReservationResp(r))
	}
	return c.JSON(http.StatusOK, out)
}

// GetReservation handles GET /api/reservations/:userId/:reservationId.
func (h *ReservationHandler) GetReservation(c echo.Context) error {
	userID, err := pathUser(c)
	if err != nil {
		return err
	}
	reservationID, err := strconv.ParseUint(c.Param("reservationId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	r, err := h.Reservations.GetByIDForUser(c.Request().Context(), reservationID, userID)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		c.Logger().Errorf("get reservation: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, toReservationResp(r))
}

type createReservationReq struct {
	StoreID       uint64  `json:"store_id"`
	ServiceID     uint64  `json:"service_id"`
	Date          string  `json:"reservation_date"`
	Time          string  `json:"reservation_time"`
	Duration      uint32  `json:"duration"`
	TotalAmount   float64 `json:"total_amount"`
	PaymentMethod string  `json:"payment_method"`
}

// CreateReservation handles POST /api/reservations.  The booking user is
// always the authenticated account.  Duration and total amount are
// snapshots reported by the booking flow; the row is persisted with
// payment_status 'paid' because the checkout step is simulated client-side
// and no gateway result exists to verify.  After the insert a
// reservation.confirmed event is published best-effort.
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.StoreID == 0 || req.ServiceID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "store_id and service_id are required"})
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation_date must be YYYY-MM-DD"})
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation_time must be HH:MM"})
	}

	res := model.Reservation{
		UserID:        userID,
		StoreID:       req.StoreID,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		Duration:      req.Duration,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: req.PaymentMethod,
	}
	if err := h.Reservations.Create(c.Request().Context(), &res); err != nil {
		c.Logger().Errorf("create reservation: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create reservation"})
	}

	go h.publishConfirmed(res)

	return c.JSON(http.StatusCreated, toReservationResp(&res))
}

// publishConfirmed emits the reservation.confirmed event. Store and
// service names are looked up best-effort; a broker or lookup failure only
// logs, the reservation itself is already committed.
func (h *ReservationHandler) publishConfirmed(res model.Reservation) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ev := queue.ReservationConfirmedEvent{
		ReservationID: res.ID,
		UserID:        res.UserID,
		StoreID:       res.StoreID,
		ServiceID:     res.ServiceID,
		Date:          res.Date,
		Time:          res.Time,
		Duration:      res.Duration,
		TotalAmount:   res.TotalAmount,
		PaymentMethod: res.PaymentMethod,
		ConfirmedAt:   res.CreatedAt.UTC().Format(time.RFC3339),
	}
	if s, err := h.Stores.GetByID(ctx, res.StoreID); err == nil {
		ev.StoreName = s.Name
	}
	if services, err := h.Services.ListByStore(ctx, res.StoreID); err == nil {
		for _, s := range services {
			if s.ID == res.ServiceID {
				ev.ServiceName = s.Name
				break
			}
		}
	}
	_ = queue_publisher.PublishReservationConfirmed(ctx, ev)
}

// CancelReservation handles PUT /api/reservations/:reservationId/cancel.
// Only the booking user can cancel their reservation.  The operation is
// idempotent: repeating it returns 200 with the row still cancelled, and
// a completed reservation can be cancelled as well.
func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reservationID, err := strconv.ParseUint(c.Param("reservationId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	r, err := h.Reservations.CancelForUser(c.Request().Context(), reservationID, userID)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		c.Logger().Errorf("cancel reservation: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, toReservationResp(r))
}
