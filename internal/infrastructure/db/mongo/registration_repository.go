package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clubhub/events-api/internal/core/domain"
)

const collectionRegistrations = "registrations"

type RegistrationRepository struct {
	col *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{col: db.Collection(collectionRegistrations)}
}

type registrationDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	EventID       string             `bson:"event_id"`
	UserID        string             `bson:"user_id"`
	QRCodeURL     string             `bson:"qr_code_url,omitempty"`
	PaymentStatus string             `bson:"payment_status"`
	CheckinStart  *time.Time         `bson:"checkin_start,omitempty"`
	CheckinEnd    *time.Time         `bson:"checkin_end,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (d *registrationDoc) toDomain() *domain.Registration {
	return &domain.Registration{
		ID:            d.ID.Hex(),
		EventID:       d.EventID,
		UserID:        d.UserID,
		QRCodeURL:     d.QRCodeURL,
		PaymentStatus: domain.PaymentStatus(d.PaymentStatus),
		CheckinStart:  d.CheckinStart,
		CheckinEnd:    d.CheckinEnd,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func registrationToDoc(reg *domain.Registration) registrationDoc {
	return registrationDoc{
		EventID:       reg.EventID,
		UserID:        reg.UserID,
		QRCodeURL:     reg.QRCodeURL,
		PaymentStatus: string(reg.PaymentStatus),
		CheckinStart:  reg.CheckinStart,
		CheckinEnd:    reg.CheckinEnd,
		CreatedAt:     reg.CreatedAt,
		UpdatedAt:     reg.UpdatedAt,
	}
}

// Create inserts the registration. The unique (event_id, user_id) index turns
// a concurrent duplicate into ErrAlreadyRegistered.
func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, registrationToDoc(reg))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}
	created := *reg
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(id, domain.ErrRegistrationNotFound)
	if err != nil {
		return nil, err
	}

	var d registrationDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return d.toDomain(), nil
}

func (r *RegistrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d registrationDoc
	err := r.col.FindOne(ctx, bson.M{"event_id": eventID, "user_id": userID}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("find registration by pair: %w", err)
	}
	return d.toDomain(), nil
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*domain.Registration, error) {
	return r.list(ctx, bson.M{"user_id": userID}, offset, limit)
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string, offset, limit int) ([]*domain.Registration, error) {
	return r.list(ctx, bson.M{"event_id": eventID}, offset, limit)
}

func (r *RegistrationRepository) list(ctx context.Context, filter bson.M, offset, limit int) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, listOptions(offset, limit, bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Registration
	for cur.Next(ctx) {
		var d registrationDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode registration: %w", err)
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}

func (r *RegistrationRepository) Update(ctx context.Context, reg *domain.Registration) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(reg.ID, domain.ErrRegistrationNotFound)
	if err != nil {
		return nil, err
	}

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, registrationToDoc(reg))
	if err != nil {
		return nil, fmt.Errorf("update registration: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrRegistrationNotFound
	}
	updated := *reg
	return &updated, nil
}

// SetQRCodeURL writes only the artifact URL so the background worker never
// clobbers concurrent field updates.
func (r *RegistrationRepository) SetQRCodeURL(ctx context.Context, id, url string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(id, domain.ErrRegistrationNotFound)
	if err != nil {
		return err
	}

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"qr_code_url": url}})
	if err != nil {
		return fmt.Errorf("set qr url: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

// EnsureIndexes creates the unique (event_id, user_id) index, the
// authoritative guard against duplicate registrations.
func (r *RegistrationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
