package domain

import (
	"errors"
	"time"
)

// RoomStatus represents the occupancy state of a room.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

// RoomType enumerates the kinds of rooms a hostel offers.
const (
	RoomTypeSingle = "single"
	RoomTypeDouble = "double"
	RoomTypeDorm   = "dorm"
)

// validRoomTransitions defines the allowed occupancy state changes.
// Any state may enter maintenance; maintenance only returns to available.
var validRoomTransitions = map[RoomStatus][]RoomStatus{
	RoomAvailable:   {RoomOccupied, RoomMaintenance},
	RoomOccupied:    {RoomAvailable, RoomMaintenance},
	RoomMaintenance: {RoomAvailable},
}

var ErrInvalidInput = errors.New("invalid input")
var ErrRoomNotFound = errors.New("room not found")
var ErrRoomExists = errors.New("room number already exists")
var ErrInvalidTransition = errors.New("invalid room status transition")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a status change from s to next is legal.
func (s RoomStatus) CanTransitionTo(next RoomStatus) bool {
	for _, allowed := range validRoomTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidRoomType reports whether t is a known room type.
func ValidRoomType(t string) bool {
	return t == RoomTypeSingle || t == RoomTypeDouble || t == RoomTypeDorm
}

// Room is the hostel inventory aggregate.
type Room struct {
	ID            string     `json:"id"`
	Number        string     `json:"number"`
	Type          string     `json:"type"`
	Capacity      int        `json:"capacity"`
	PricePerNight float64    `json:"price_per_night"`
	Status        RoomStatus `json:"status"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
