package handler

import "github.com/hostelhub/hostel-api/internal/core/domain"

type createRoomRequest struct {
	Number        string  `json:"number"          validate:"required"`
	Type          string  `json:"type"            validate:"required,oneof=single double dorm"`
	Capacity      int     `json:"capacity"        validate:"required,gt=0"`
	PricePerNight float64 `json:"price_per_night" validate:"required,gt=0"`
	Notes         string  `json:"notes"`
}

type updateRoomRequest struct {
	Type          string  `json:"type"            validate:"omitempty,oneof=single double dorm"`
	Capacity      int     `json:"capacity"        validate:"omitempty,gt=0"`
	PricePerNight float64 `json:"price_per_night" validate:"omitempty,gt=0"`
	Notes         string  `json:"notes"`
}

type changeRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied maintenance"`
}

type roomResponse struct {
	Room *domain.Room `json:"room"`
}

type listRoomsResponse struct {
	Items      []*domain.Room `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}
