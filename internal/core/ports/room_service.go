package ports

import (
	"context"

	"github.com/hostelhub/hostel-api/internal/core/domain"
)

// CreateRoomInput carries all data needed to register a new room.
type CreateRoomInput struct {
	Number        string
	Type          string
	Capacity      int
	PricePerNight float64
	Notes         string
}

// UpdateRoomInput carries mutable room details. Status changes go through
// ChangeStatus so the transition rules apply.
type UpdateRoomInput struct {
	ID            string
	Type          string
	Capacity      int
	PricePerNight float64
	Notes         string
}

// ListRoomsInput carries all parameters for the list endpoint.
type ListRoomsInput struct {
	Status string
	Type   string
	Page   int
	Limit  int
}

// ListRoomsResult is returned by ListRooms.
type ListRoomsResult struct {
	Items      []*domain.Room
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// RoomService defines use-case operations for hostel rooms.
type RoomService interface {
	CreateRoom(ctx context.Context, input CreateRoomInput) (*domain.Room, error)
	GetRoom(ctx context.Context, id string) (*domain.Room, error)
	ListRooms(ctx context.Context, input ListRoomsInput) (*ListRoomsResult, error)
	UpdateRoom(ctx context.Context, input UpdateRoomInput) (*domain.Room, error)
	ChangeStatus(ctx context.Context, id string, next domain.RoomStatus) (*domain.Room, error)
	DeleteRoom(ctx context.Context, id string) error
}
