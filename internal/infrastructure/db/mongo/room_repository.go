package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hostelhub/hostel-api/internal/core/domain"
	"github.com/hostelhub/hostel-api/internal/core/ports"
)

const roomCollection = "rooms"

type MongoRoomRepository struct {
	coll *mongo.Collection
}

// NewRoomRepository wraps the rooms collection and ensures the unique room
// number index.
func NewRoomRepository(ctx context.Context, db *mongo.Database) (*MongoRoomRepository, error) {
	coll := db.Collection(roomCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("ensure room number index: %w", err)
	}

	return &MongoRoomRepository{coll: coll}, nil
}

type mongoRoom struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Number        string             `bson:"number"`
	Type          string             `bson:"type"`
	Capacity      int                `bson:"capacity"`
	PricePerNight float64            `bson:"price_per_night"`
	Status        string             `bson:"status"`
	Notes         string             `bson:"notes,omitempty"`
	CreatedAt     int64              `bson:"created_at"`
	UpdatedAt     int64              `bson:"updated_at"`
}

func (r *MongoRoomRepository) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	doc := mongoRoom{
		Number:        room.Number,
		Type:          room.Type,
		Capacity:      room.Capacity,
		PricePerNight: room.PricePerNight,
		Status:        string(room.Status),
		Notes:         room.Notes,
		CreatedAt:     room.CreatedAt.Unix(),
		UpdatedAt:     room.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrRoomExists
		}
		return nil, fmt.Errorf("insert room: %w", err)
	}

	created := *room
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoRoomRepository) FindByID(ctx context.Context, id string) (*domain.Room, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRoomNotFound
	}

	var mr mongoRoom
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *MongoRoomRepository) FindByNumber(ctx context.Context, number string) (*domain.Room, error) {
	var mr mongoRoom
	if err := r.coll.FindOne(ctx, bson.M{"number": number}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room by number: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *MongoRoomRepository) List(ctx context.Context, filter ports.ListRoomsFilter) ([]*domain.Room, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count rooms: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "number", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []*domain.Room
	for cursor.Next(ctx) {
		var mr mongoRoom
		if err := cursor.Decode(&mr); err != nil {
			return nil, 0, fmt.Errorf("decode room: %w", err)
		}
		rooms = append(rooms, mr.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate rooms: %w", err)
	}

	return rooms, total, nil
}

func (r *MongoRoomRepository) Update(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	oid, err := primitive.ObjectIDFromHex(room.ID)
	if err != nil {
		return nil, domain.ErrRoomNotFound
	}

	update := bson.M{"$set": bson.M{
		"type":            room.Type,
		"capacity":        room.Capacity,
		"price_per_night": room.PricePerNight,
		"status":          string(room.Status),
		"notes":           room.Notes,
		"updated_at":      room.UpdatedAt.Unix(),
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrRoomNotFound
	}
	return r.FindByID(ctx, room.ID)
}

func (r *MongoRoomRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRoomNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (mr *mongoRoom) toDomain() *domain.Room {
	return &domain.Room{
		ID:            mr.ID.Hex(),
		Number:        mr.Number,
		Type:          mr.Type,
		Capacity:      mr.Capacity,
		PricePerNight: mr.PricePerNight,
		Status:        domain.RoomStatus(mr.Status),
		Notes:         mr.Notes,
		CreatedAt:     unixToTime(mr.CreatedAt),
		UpdatedAt:     unixToTime(mr.UpdatedAt),
	}
}
