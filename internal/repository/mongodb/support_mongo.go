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
	"nutritrack/internal/repository"
)

// SupportMongo is a MongoDB implementation of repository.SupportRepository.
type SupportMongo struct {
	coll *mongo.Collection
}

func NewSupportMongo(db *mongo.Database) *SupportMongo {
	return &SupportMongo{coll: db.Collection(SupportCollection)}
}

var _ repository.SupportRepository = (*SupportMongo)(nil)

func (r *SupportMongo) Create(ctx context.Context, m *model.SupportMessage) (*model.SupportMessage, error) {
	res, err := r.coll.InsertOne(ctx, m)
	if err != nil {
		return nil, translate(err)
	}
	out := *m
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid
	}
	return &out, nil
}

func (r *SupportMongo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.SupportMessage, error) {
	var m model.SupportMessage
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func filterFor(f model.SupportFilter) bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Priority != "" {
		q["priority"] = f.Priority
	}
	if f.InquiryType != "" {
		q["inquiryType"] = f.InquiryType
	}
	return q
}

func (r *SupportMongo) List(ctx context.Context, f model.SupportFilter, pq repository.PageQuery) (*repository.PageResult[model.SupportMessage], error) {
	q := filterFor(f)

	total, err := r.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("count support messages: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(pq.Offset)).
		SetLimit(int64(pq.Limit))
	cur, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("find support messages: %w", err)
	}
	items := make([]model.SupportMessage, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode support messages: %w", err)
	}
	return &repository.PageResult[model.SupportMessage]{Items: items, Total: total}, nil
}

func (r *SupportMongo) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to model.SupportStatus, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": at}},
	)
	if err != nil {
		return fmt.Errorf("update support status: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrConflict
	}
	return nil
}

type groupCount struct {
	Key   string `bson:"_id"`
	Count int64  `bson:"count"`
}

func (r *SupportMongo) countBy(ctx context.Context, field string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", field, err)
	}
	var rows []groupCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode %s counts: %w", field, err)
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Count
	}
	return out, nil
}

func (r *SupportMongo) Stats(ctx context.Context, recent int) (*model.SupportStats, error) {
	var (
		stats model.SupportStats
		err   error
	)
	if stats.StatusCounts, err = r.countBy(ctx, "status"); err != nil {
		return nil, err
	}
	if stats.PriorityCounts, err = r.countBy(ctx, "priority"); err != nil {
		return nil, err
	}
	if stats.InquiryCounts, err = r.countBy(ctx, "inquiryType"); err != nil {
		return nil, err
	}
	if stats.TotalMessages, err = r.coll.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, fmt.Errorf("count support messages: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(recent)).
		SetProjection(bson.M{"name": 1, "email": 1, "subject": 1, "status": 1, "priority": 1, "createdAt": 1})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find recent support messages: %w", err)
	}
	stats.RecentMessages = make([]model.SupportMessage, 0, recent)
	if err := cur.All(ctx, &stats.RecentMessages); err != nil {
		return nil, fmt.Errorf("decode recent support messages: %w", err)
	}
	return &stats, nil
}
