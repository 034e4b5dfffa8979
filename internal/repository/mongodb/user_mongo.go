package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"nutritrack/internal/model"
	"nutritrack/internal/repository"
)

// UserMongo is a MongoDB implementation of repository.UserRepository.
type UserMongo struct {
	coll *mongo.Collection
}

// NewUserMongo creates a new UserMongo repository.
func NewUserMongo(db *mongo.Database) *UserMongo {
	return &UserMongo{coll: db.Collection(UsersCollection)}
}

var _ repository.UserRepository = (*UserMongo)(nil)

func (r *UserMongo) Create(ctx context.Context, u *model.User) (*model.User, error) {
	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		return nil, translate(err)
	}
	out := *u
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid
	}
	return &out, nil
}

func (r *UserMongo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserMongo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserMongo) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var u model.User
	if err := r.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserMongo) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return false, translate(err)
	}
	if res.MatchedCount == 0 {
		return false, repository.ErrNotFound
	}
	return res.ModifiedCount > 0, nil
}

func (r *UserMongo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
