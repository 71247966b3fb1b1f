package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/davcho16/flavor-trail/internal/application"
	"github.com/davcho16/flavor-trail/internal/domain/booking"
	"github.com/davcho16/flavor-trail/internal/domain/timeslot"
)

type ReservationHandler struct {
	service BookingServiceInterface
}

func NewReservationHandler(s BookingServiceInterface) *ReservationHandler {
	return &ReservationHandler{service: s}
}

type CreateReservationRequest struct {
	UserName        string `json:"user_name" validate:"required" example:"tanaka"`
	ReservationTime string `json:"reservation_time" validate:"required" example:"2025-07-01 18:00:00"`
	PartySize       int    `json:"party_size" validate:"required,gt=0" example:"2"`
	RestaurantID    string `json:"restaurant_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
}

type UpdateReservationRequest struct {
	ReservationTime string `json:"reservation_time" validate:"required" example:"2025-07-01 19:30:00"`
	PartySize       int    `json:"party_size" validate:"required,gt=0" example:"4"`
}

type ReservationResponse struct {
	ID              string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	RestaurantID    string    `json:"restaurant_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserName        string    `json:"user_name" example:"tanaka"`
	ReservationTime string    `json:"reservation_time" example:"2025-07-01 18:00:00"`
	PartySize       int       `json:"party_size" example:"2"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type AvailabilityResponse struct {
	RestaurantID    string `json:"restaurant_id"`
	ReservationTime string `json:"reservation_time"`
	RemainingSeats  int    `json:"remaining_seats"`
}

func toReservationResponse(r *booking.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:              r.ID,
		RestaurantID:    r.RestaurantID,
		UserName:        r.UserName,
		ReservationTime: r.SlotTime.String(),
		PartySize:       r.PartySize,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// toHTTPError は予約エンジンのエラーをHTTPステータスに対応させる
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, booking.ErrUserNameRequired),
		errors.Is(err, booking.ErrTimeRequired),
		errors.Is(err, booking.ErrPartySizeInvalid),
		errors.Is(err, booking.ErrRestaurantIDRequired),
		errors.Is(err, timeslot.ErrInvalidTimeFormat),
		errors.Is(err, timeslot.ErrInvalidTimeGrid):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrReservationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrSlotFull):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// Create godoc
// @Summary 予約を作成
// @Description 指定スロットに空きがあれば予約を作成します
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body CreateReservationRequest true "予約情報"
// @Success 201 {object} ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "スロットが満席"
// @Router /reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	var req CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	r, err := h.service.CreateReservation(c.Request().Context(), application.CreateReservationInput{
		UserName:        req.UserName,
		ReservationTime: req.ReservationTime,
		PartySize:       req.PartySize,
		RestaurantID:    req.RestaurantID,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toReservationResponse(r))
}

// List godoc
// @Summary 予約一覧を取得
// @Description ユーザー名とレストランIDに一致するアクティブな予約一覧を取得します
// @Tags reservations
// @Produce json
// @Param user_name query string true "ユーザー名"
// @Param restaurant_id query string true "レストランID"
// @Param reservation_id query string false "予約IDで絞り込み"
// @Success 200 {array} ReservationResponse
// @Failure 400 {object} map[string]string
// @Router /reservations [get]
func (h *ReservationHandler) List(c echo.Context) error {
	reservations, err := h.service.ListReservations(
		c.Request().Context(),
		c.QueryParam("user_name"),
		c.QueryParam("restaurant_id"),
		c.QueryParam("reservation_id"),
	)
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		resp[i] = toReservationResponse(r)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetByID godoc
// @Summary 予約を取得
// @Description 指定IDの予約を取得します
// @Tags reservations
// @Produce json
// @Param id path string true "予約ID"
// @Success 200 {object} ReservationResponse
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetByID(c echo.Context) error {
	r, err := h.service.GetReservation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}

// Update godoc
// @Summary 予約を変更
// @Description 予約の時刻と人数を変更します。別スロットへの移動時は移動先の空きを確認します
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "予約ID"
// @Param request body UpdateReservationRequest true "変更内容"
// @Success 200 {object} ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "移動先スロットが満席"
// @Router /reservations/{id} [put]
func (h *ReservationHandler) Update(c echo.Context) error {
	var req UpdateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	r, err := h.service.UpdateReservation(c.Request().Context(), application.UpdateReservationInput{
		ReservationID:   c.Param("id"),
		ReservationTime: req.ReservationTime,
		PartySize:       req.PartySize,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}

// Cancel godoc
// @Summary 予約をキャンセル
// @Description 予約を削除し、スロットの席を解放します
// @Tags reservations
// @Produce json
// @Param id path string true "予約ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) Cancel(c echo.Context) error {
	if err := h.service.CancelReservation(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "予約をキャンセルしました"})
}

// Availability godoc
// @Summary スロットの残席数を取得
// @Description 指定スロットの残席数を返します
// @Tags reservations
// @Produce json
// @Param restaurant_id query string true "レストランID"
// @Param reservation_time query string true "予約時刻"
// @Success 200 {object} AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Router /slots/availability [get]
func (h *ReservationHandler) Availability(c echo.Context) error {
	restaurantID := c.QueryParam("restaurant_id")
	rawTime := c.QueryParam("reservation_time")
	if rawTime == "" {
		return echo.NewHTTPError(http.StatusBadRequest, booking.ErrTimeRequired.Error())
	}
	remaining, err := h.service.SlotAvailability(c.Request().Context(), restaurantID, rawTime)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, AvailabilityResponse{
		RestaurantID:    restaurantID,
		ReservationTime: rawTime,
		RemainingSeats:  remaining,
	})
}
