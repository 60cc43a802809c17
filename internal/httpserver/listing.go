package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/logging"
	"github.com/Skotchmaster/marketplace/internal/middleware"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/service"
)

type ListingHTTP struct {
	Svc *service.ListingService
}

func (h *ListingHTTP) CreateListing(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_listing")

	callerID, ok := middleware.CallerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing or invalid token")
	}

	if c.Request().ContentLength == 0 {
		l.Warn("listing_create_error", "status", 400, "reason", "missing body")
		return echo.NewHTTPError(http.StatusBadRequest, "Missing JSON body")
	}

	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Price       float64 `json:"price"`
		ImageURL    *string `json:"image_url"`
	}

	if err := c.Bind(&req); err != nil {
		l.Warn("listing_create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Missing JSON body")
	}

	if req.Title == "" || req.Description == "" || req.Category == "" {
		l.Warn("listing_create_error", "status", 400, "reason", "missing required fields")
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
	}

	listing := models.Listing{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}

	if err := h.Svc.Create(ctx, callerID, &listing); err != nil {
		l.Error("listing_create_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product to db")
	}

	l.Info("create_listing_success", "listingID", listing.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Product added successfully",
	})
}

func (h *ListingHTTP) GetListings(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get_listings")

	category := c.QueryParam("category")

	items, err := h.Svc.List(ctx, category)
	if err != nil {
		l.Error("get_listings_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get products")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ListingHTTP) UpdateListing(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update_listing")

	callerID, ok := middleware.CallerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing or invalid token")
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("listing_update_error", "status", 404, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}

	var patch repo.ListingPatch
	if err := c.Bind(&patch); err != nil {
		l.Warn("listing_update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Missing JSON body")
	}

	if _, err := h.Svc.Update(ctx, id, callerID, patch); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("listing_update_error", "status", 404, "listingID", id)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		case errors.Is(err, service.ErrNotOwner):
			l.Warn("listing_update_error", "status", 403, "listingID", id, "callerID", callerID)
			return echo.NewHTTPError(http.StatusForbidden, "Unauthorized")
		default:
			l.Error("listing_update_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
		}
	}

	l.Info("update_listing_success", "listingID", id)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product updated successfully",
	})
}

func (h *ListingHTTP) DeleteListing(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete_listing")

	callerID, ok := middleware.CallerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing or invalid token")
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("listing_delete_error", "status", 404, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}

	if err := h.Svc.Delete(ctx, id, callerID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("listing_delete_error", "status", 404, "listingID", id)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		case errors.Is(err, service.ErrNotOwner):
			l.Warn("listing_delete_error", "status", 403, "listingID", id, "callerID", callerID)
			return echo.NewHTTPError(http.StatusForbidden, "Unauthorized")
		default:
			l.Error("listing_delete_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
		}
	}

	l.Info("delete_listing_success", "listingID", id)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product deleted successfully",
	})
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
