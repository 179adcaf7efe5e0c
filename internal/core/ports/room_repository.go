package ports

import (
	"context"

	"github.com/hostelhub/hostel-api/internal/core/domain"
)

// ListRoomsFilter carries the query parameters for listing rooms.
type ListRoomsFilter struct {
	Status string // optional: filter by occupancy status
	Type   string // optional: filter by room type
	Page   int    // 1-based
	Limit  int    // max rows per page (capped by the service)
}

// RoomRepository defines persistence operations for hostel rooms.
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	FindByID(ctx context.Context, id string) (*domain.Room, error)
	FindByNumber(ctx context.Context, number string) (*domain.Room, error)
	// List returns a page of rooms matching filter and the total count.
	List(ctx context.Context, filter ListRoomsFilter) ([]*domain.Room, int64, error)
	Update(ctx context.Context, room *domain.Room) (*domain.Room, error)
	Delete(ctx context.Context, id string) error
}
