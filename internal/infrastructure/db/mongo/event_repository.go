package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clubhub/events-api/internal/core/domain"
)

const collectionEvents = "events"

type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

type eventDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description,omitempty"`
	DateTime      time.Time          `bson:"date_time"`
	Venue         string             `bson:"venue"`
	IsPaid        bool               `bson:"is_paid"`
	Price         int                `bson:"price"`
	Capacity      int                `bson:"capacity"`
	CoverImageURL string             `bson:"cover_image_url,omitempty"`
	CreatedByID   string             `bson:"created_by_id"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (d *eventDoc) toDomain() *domain.Event {
	return &domain.Event{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		Description:   d.Description,
		DateTime:      d.DateTime,
		Venue:         d.Venue,
		IsPaid:        d.IsPaid,
		Price:         d.Price,
		Capacity:      d.Capacity,
		CoverImageURL: d.CoverImageURL,
		CreatedByID:   d.CreatedByID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func eventToDoc(e *domain.Event) eventDoc {
	return eventDoc{
		Title:         e.Title,
		Description:   e.Description,
		DateTime:      e.DateTime,
		Venue:         e.Venue,
		IsPaid:        e.IsPaid,
		Price:         e.Price,
		Capacity:      e.Capacity,
		CoverImageURL: e.CoverImageURL,
		CreatedByID:   e.CreatedByID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, eventToDoc(e))
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	created := *e
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(id, domain.ErrEventNotFound)
	if err != nil {
		return nil, err
	}

	var d eventDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return d.toDomain(), nil
}

// List returns events ordered by their scheduled time, soonest first.
func (r *EventRepository) List(ctx context.Context, offset, limit int) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, listOptions(offset, limit, bson.D{{Key: "date_time", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Event
	for cur.Next(ctx) {
		var d eventDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}

func (r *EventRepository) Update(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(e.ID, domain.ErrEventNotFound)
	if err != nil {
		return nil, err
	}

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, eventToDoc(e))
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrEventNotFound
	}
	updated := *e
	return &updated, nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(id, domain.ErrEventNotFound)
	if err != nil {
		return err
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// EnsureIndexes creates the listing and ownership indexes.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date_time", Value: 1}}},
		{Keys: bson.D{{Key: "created_by_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
