package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hostelhub/hostel-api/internal/api/metrics"
	"github.com/hostelhub/hostel-api/internal/core/domain"
	"github.com/hostelhub/hostel-api/internal/core/ports"
)

// RoomHandler handles HTTP requests for hostel room management.
type RoomHandler struct {
	service ports.RoomService
}

func NewRoomHandler(service ports.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// Create handles POST /api/adminauth/rooms.
//
// @Summary      Register a new room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRoomRequest  true  "Room details"
// @Success      201   {object}  roomResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/adminauth/rooms [post]
func (h *RoomHandler) Create(c echo.Context) error {
	var req createRoomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, errorResponse{Message: "Validation error", Details: ve.Details})
		}
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid payload"})
	}

	room, err := h.service.CreateRoom(c.Request().Context(), ports.CreateRoomInput{
		Number:        req.Number,
		Type:          req.Type,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, roomResponse{Room: room})
}

// Get handles GET /api/adminauth/rooms/:id.
//
// @Summary      Get a room
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Room id"
// @Success      200  {object}  roomResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/adminauth/rooms/{id} [get]
func (h *RoomHandler) Get(c echo.Context) error {
	room, err := h.service.GetRoom(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roomResponse{Room: room})
}

// List handles GET /api/adminauth/rooms.
//
// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        type    query     string  false  "Filter by room type"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Rows per page"
// @Success      200     {object}  listRoomsResponse
// @Router       /api/adminauth/rooms [get]
func (h *RoomHandler) List(c echo.Context) error {
	var input ports.ListRoomsInput
	input.Status = c.QueryParam("status")
	input.Type = c.QueryParam("type")
	echo.QueryParamsBinder(c).
		Int("page", &input.Page).
		Int("limit", &input.Limit)

	result, err := h.service.ListRooms(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listRoomsResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Update handles PUT /api/adminauth/rooms/:id.
//
// @Summary      Update room details
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Room id"
// @Param        body  body      updateRoomRequest  true  "Room fields"
// @Success      200   {object}  roomResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/adminauth/rooms/{id} [put]
func (h *RoomHandler) Update(c echo.Context) error {
	var req updateRoomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, errorResponse{Message: "Validation error", Details: ve.Details})
		}
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid payload"})
	}

	room, err := h.service.UpdateRoom(c.Request().Context(), ports.UpdateRoomInput{
		ID:            c.Param("id"),
		Type:          req.Type,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roomResponse{Room: room})
}

// ChangeStatus handles PATCH /api/adminauth/rooms/:id/status.
//
// @Summary      Change room occupancy status
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Room id"
// @Param        body  body      changeRoomStatusRequest  true  "New status"
// @Success      200   {object}  roomResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/adminauth/rooms/{id}/status [patch]
func (h *RoomHandler) ChangeStatus(c echo.Context) error {
	var req changeRoomStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, errorResponse{Message: "Validation error", Details: ve.Details})
		}
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid payload"})
	}

	room, err := h.service.ChangeStatus(c.Request().Context(), c.Param("id"), domain.RoomStatus(req.Status))
	if err != nil {
		return err
	}

	metrics.RoomStatusChangesTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, roomResponse{Room: room})
}

// Delete handles DELETE /api/adminauth/rooms/:id.
//
// @Summary      Delete a room
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Room id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/adminauth/rooms/{id} [delete]
func (h *RoomHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteRoom(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Room deleted"})
}
