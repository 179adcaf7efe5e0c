package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hostelhub/hostel-api/internal/core/domain"
	"github.com/hostelhub/hostel-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// RoomService implements hostel room inventory use cases.
type RoomService struct {
	repo   ports.RoomRepository
	logger zerolog.Logger
}

func NewRoomService(repo ports.RoomRepository, logger zerolog.Logger) *RoomService {
	return &RoomService{repo: repo, logger: logger}
}

// CreateRoom registers a new room. New rooms always start available.
func (s *RoomService) CreateRoom(ctx context.Context, input ports.CreateRoomInput) (*domain.Room, error) {
	if input.Number == "" || !domain.ValidRoomType(input.Type) || input.Capacity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.repo.FindByNumber(ctx, input.Number); err == nil {
		return nil, domain.ErrRoomExists
	}

	now := time.Now().UTC()
	room := &domain.Room{
		Number:        input.Number,
		Type:          input.Type,
		Capacity:      input.Capacity,
		PricePerNight: input.PricePerNight,
		Status:        domain.RoomAvailable,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, room)
	if err != nil {
		s.logger.Error().Err(err).Str("number", input.Number).Msg("failed to create room")
		return nil, err
	}

	s.logger.Info().Str("room_id", created.ID).Str("number", created.Number).Msg("room created")
	return created, nil
}

func (s *RoomService) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	return s.repo.FindByID(ctx, id)
}

// ListRooms returns a page of rooms. Limit is capped at maxPageLimit.
func (s *RoomService) ListRooms(ctx context.Context, input ports.ListRoomsInput) (*ports.ListRoomsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListRoomsFilter{
		Status: input.Status,
		Type:   input.Type,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListRoomsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateRoom rewrites the mutable details of a room. Status is untouched.
func (s *RoomService) UpdateRoom(ctx context.Context, input ports.UpdateRoomInput) (*domain.Room, error) {
	room, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Type != "" {
		if !domain.ValidRoomType(input.Type) {
			return nil, domain.ErrInvalidInput
		}
		room.Type = input.Type
	}
	if input.Capacity > 0 {
		room.Capacity = input.Capacity
	}
	if input.PricePerNight > 0 {
		room.PricePerNight = input.PricePerNight
	}
	room.Notes = input.Notes
	room.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, room)
}

// ChangeStatus applies an occupancy transition, enforcing the legal moves.
func (s *RoomService) ChangeStatus(ctx context.Context, id string, next domain.RoomStatus) (*domain.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !room.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}

	room.Status = next
	room.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, room)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("room_id", id).Str("status", string(next)).Msg("room status changed")
	return updated, nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("room_id", id).Msg("room deleted")
	return nil
}
