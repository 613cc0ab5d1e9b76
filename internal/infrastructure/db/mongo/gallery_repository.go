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

const collectionGallery = "gallery_items"

type GalleryRepository struct {
	col *mongo.Collection
}

func NewGalleryRepository(db *mongo.Database) *GalleryRepository {
	return &GalleryRepository{col: db.Collection(collectionGallery)}
}

type galleryDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ImageURL     string             `bson:"image_url"`
	UploadedByID string             `bson:"uploaded_by_id"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d *galleryDoc) toDomain() *domain.GalleryItem {
	return &domain.GalleryItem{
		ID:           d.ID.Hex(),
		ImageURL:     d.ImageURL,
		UploadedByID: d.UploadedByID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *GalleryRepository) Create(ctx context.Context, g *domain.GalleryItem) (*domain.GalleryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, galleryDoc{
		ImageURL:     g.ImageURL,
		UploadedByID: g.UploadedByID,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert gallery item: %w", err)
	}
	created := *g
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *GalleryRepository) GetByID(ctx context.Context, id string) (*domain.GalleryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(id, domain.ErrImageNotFound)
	if err != nil {
		return nil, err
	}

	var d galleryDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("find gallery item: %w", err)
	}
	return d.toDomain(), nil
}

// List returns items newest first.
func (r *GalleryRepository) List(ctx context.Context, offset, limit int) ([]*domain.GalleryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, listOptions(offset, limit, bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.GalleryItem
	for cur.Next(ctx) {
		var d galleryDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode gallery item: %w", err)
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(id, domain.ErrImageNotFound)
	if err != nil {
		return err
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete gallery item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

func (r *GalleryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	return err
}
