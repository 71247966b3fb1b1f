package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/davcho16/flavor-trail/internal/domain/restaurant"
)

type RestaurantHandler struct {
	service CatalogServiceInterface
}

func NewRestaurantHandler(s CatalogServiceInterface) *RestaurantHandler {
	return &RestaurantHandler{service: s}
}

type RestaurantResponse struct {
	ID      string  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name    string  `json:"name" example:"Sushi Kan"`
	Address string  `json:"address" example:"1-2-3 Ginza, Chuo-ku"`
	ZipCode string  `json:"zip_code" example:"94107"`
	Cuisine string  `json:"cuisine" example:"japanese"`
	Rating  float64 `json:"rating" example:"4.5"`
}

type MenuItemResponse struct {
	ID             string  `json:"id"`
	RestaurantID   string  `json:"restaurant_id"`
	RestaurantName string  `json:"restaurant_name"`
	ItemName       string  `json:"item_name"`
	ItemPrice      float64 `json:"item_price"`
}

func toRestaurantResponse(r *restaurant.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:      r.ID,
		Name:    r.Name,
		Address: r.Address,
		ZipCode: r.ZipCode,
		Cuisine: r.Cuisine,
		Rating:  r.Rating,
	}
}

func toRestaurantResponses(restaurants []*restaurant.Restaurant) []RestaurantResponse {
	resp := make([]RestaurantResponse, len(restaurants))
	for i, r := range restaurants {
		resp[i] = toRestaurantResponse(r)
	}
	return resp
}

// GetByID godoc
// @Summary レストランを取得
// @Description 指定IDのレストランを取得します
// @Tags restaurants
// @Produce json
// @Param id path string true "レストランID"
// @Success 200 {object} RestaurantResponse
// @Failure 404 {object} map[string]string
// @Router /restaurants/{id} [get]
func (h *RestaurantHandler) GetByID(c echo.Context) error {
	r, err := h.service.GetRestaurant(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, restaurant.ErrRestaurantNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toRestaurantResponse(r))
}

// ListByZipCode godoc
// @Summary 郵便番号でレストランを検索
// @Tags restaurants
// @Produce json
// @Param zip path string true "郵便番号"
// @Success 200 {array} RestaurantResponse
// @Router /restaurants/zip/{zip} [get]
func (h *RestaurantHandler) ListByZipCode(c echo.Context) error {
	restaurants, err := h.service.ListByZipCode(c.Request().Context(), c.Param("zip"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toRestaurantResponses(restaurants))
}

// ListByCuisine godoc
// @Summary 料理ジャンルでレストランを検索
// @Tags restaurants
// @Produce json
// @Param type path string true "料理ジャンル"
// @Success 200 {array} RestaurantResponse
// @Router /restaurants/cuisine/{type} [get]
func (h *RestaurantHandler) ListByCuisine(c echo.Context) error {
	restaurants, err := h.service.ListByCuisine(c.Request().Context(), c.Param("type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toRestaurantResponses(restaurants))
}

// ListTopRated godoc
// @Summary 評価の高いレストラン一覧を取得
// @Tags restaurants
// @Produce json
// @Success 200 {array} RestaurantResponse
// @Router /restaurants/top-rated [get]
func (h *RestaurantHandler) ListTopRated(c echo.Context) error {
	restaurants, err := h.service.ListTopRated(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toRestaurantResponses(restaurants))
}

// ListMenuItemsUnder godoc
// @Summary 上限価格以下のメニュー項目を取得
// @Tags restaurants
// @Produce json
// @Param price path number true "上限価格"
// @Success 200 {array} MenuItemResponse
// @Failure 400 {object} map[string]string
// @Router /menu-items/under/{price} [get]
func (h *RestaurantHandler) ListMenuItemsUnder(c echo.Context) error {
	maxPrice, err := strconv.ParseFloat(c.Param("price"), 64)
	if err != nil || maxPrice < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "無効な価格です")
	}
	items, err := h.service.ListMenuItemsUnder(c.Request().Context(), maxPrice)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := make([]MenuItemResponse, len(items))
	for i, m := range items {
		resp[i] = MenuItemResponse{
			ID:             m.ID,
			RestaurantID:   m.RestaurantID,
			RestaurantName: m.RestaurantName,
			ItemName:       m.ItemName,
			ItemPrice:      m.ItemPrice,
		}
	}
	return c.JSON(http.StatusOK, resp)
}
