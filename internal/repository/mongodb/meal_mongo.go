package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nutritrack/internal/model"
	"nutritrack/internal/nutrition"
	"nutritrack/internal/repository"
)

// MealMongo is a MongoDB implementation of repository.MealRepository.
type MealMongo struct {
	coll *mongo.Collection
}

// NewMealMongo creates a new MealMongo repository.
func NewMealMongo(db *mongo.Database) *MealMongo {
	return &MealMongo{coll: db.Collection(MealsCollection)}
}

var _ repository.MealRepository = (*MealMongo)(nil)

// AppendEntries relies on the unique (userId, date) index so concurrent
// first posts of a day cannot create two documents. The $inc keeps totals
// close under concurrency; they are then reset to the rounded sum of the
// stored entries so float drift never persists.
func (r *MealMongo) AppendEntries(ctx context.Context, userID primitive.ObjectID, day time.Time, entries []model.MealEntry, inc model.Totals) (*model.Meal, error) {
	filter := bson.M{"userId": userID, "date": day}
	update := bson.M{
		"$inc": bson.M{
			"totalCalories": inc.Calories,
			"totalFat":      inc.Fat,
			"totalProtein":  inc.Protein,
			"totalCarbo":    inc.Carbo,
		},
		"$push": bson.M{"mealsList": bson.M{"$each": entries}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var out model.Meal
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out)
	if mongo.IsDuplicateKeyError(err) {
		// lost the upsert race; the document exists now, so retry as a plain update
		err = r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out)
	}
	if err != nil {
		return nil, translate(err)
	}

	if sum := nutrition.SumEntries(out.MealsList); sum != out.Totals {
		// size guard: a concurrent append recomputes for the longer list itself
		guard := bson.M{"_id": out.ID, "mealsList": bson.M{"$size": len(out.MealsList)}}
		if _, err := r.coll.UpdateOne(ctx, guard, bson.M{"$set": totalsDoc(sum)}); err != nil {
			return nil, fmt.Errorf("set meal totals: %w", err)
		}
		out.Totals = sum
	}
	return &out, nil
}

func totalsDoc(t model.Totals) bson.M {
	return bson.M{
		"totalCalories": t.Calories,
		"totalFat":      t.Fat,
		"totalProtein":  t.Protein,
		"totalCarbo":    t.Carbo,
	}
}

func (r *MealMongo) ListByUser(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]model.Meal, error) {
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": from, "$lt": to},
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find meals: %w", err)
	}
	out := make([]model.Meal, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode meals: %w", err)
	}
	return out, nil
}

func (r *MealMongo) FindOwned(ctx context.Context, id, userID primitive.ObjectID) (*model.Meal, error) {
	var m model.Meal
	if err := r.coll.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&m); err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *MealMongo) ReplaceEntries(ctx context.Context, id primitive.ObjectID, entries []model.MealEntry, totals model.Totals) error {
	if entries == nil {
		entries = []model.MealEntry{}
	}
	set := totalsDoc(totals)
	set["mealsList"] = entries
	update := bson.M{"$set": set}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update meal: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MealMongo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, fmt.Errorf("delete meals: %w", err)
	}
	return res.DeletedCount, nil
}
