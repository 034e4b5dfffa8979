package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nutritrack/internal/model"
	"nutritrack/internal/repository"
)

// ImageMongo is a MongoDB implementation of repository.ImageRepository.
// It contains no business logic.
type ImageMongo struct {
	coll *mongo.Collection
}

// NewImageMongo creates a new ImageMongo repository.
func NewImageMongo(db *mongo.Database) *ImageMongo {
	return &ImageMongo{coll: db.Collection(ImagesCollection)}
}

var _ repository.ImageRepository = (*ImageMongo)(nil)

// Create inserts a new image document and returns the stored record.
func (r *ImageMongo) Create(ctx context.Context, img *model.Image) (*model.Image, error) {
	res, err := r.coll.InsertOne(ctx, img)
	if err != nil {
		return nil, translate(err)
	}
	out := *img
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid
	}
	return &out, nil
}

// FindByID fetches a single image by its ID.
func (r *ImageMongo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Image, error) {
	var img model.Image
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&img); err != nil {
		return nil, translate(err)
	}
	return &img, nil
}

// List returns images ordered by created_at DESC with limit/offset and total count.
func (r *ImageMongo) List(ctx context.Context, userID *primitive.ObjectID, pq repository.PageQuery) (*repository.PageResult[model.Image], error) {
	filter := bson.M{}
	if userID != nil {
		filter["userId"] = *userID
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count images: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(pq.Offset)).
		SetLimit(int64(pq.Limit))
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find images: %w", err)
	}
	items := make([]model.Image, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	return &repository.PageResult[model.Image]{Items: items, Total: total}, nil
}

// Delete removes an image by ID. Missing documents are not an error.
func (r *ImageMongo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}
