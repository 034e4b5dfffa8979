package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"nutritrack/internal/model"
	"nutritrack/internal/repository"
)

// FoodMongo is a MongoDB implementation of repository.FoodRepository.
type FoodMongo struct {
	coll *mongo.Collection
}

func NewFoodMongo(db *mongo.Database) *FoodMongo {
	return &FoodMongo{coll: db.Collection(FoodsCollection)}
}

var _ repository.FoodRepository = (*FoodMongo)(nil)

func (r *FoodMongo) FindByKey(ctx context.Context, key string) (*model.Food, error) {
	var f model.Food
	if err := r.coll.FindOne(ctx, bson.M{"key": key}).Decode(&f); err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (r *FoodMongo) Create(ctx context.Context, f *model.Food) (*model.Food, error) {
	res, err := r.coll.InsertOne(ctx, f)
	if err != nil {
		return nil, translate(err)
	}
	out := *f
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid
	}
	return &out, nil
}
