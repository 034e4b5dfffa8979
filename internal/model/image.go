package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is the metadata of an object kept in object storage.
// The bytes live in the bucket under StoragePath; this document only points at them.
type Image struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID      *primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`
	Filename    string              `json:"filename" bson:"filename"`
	StoragePath string              `json:"storagePath" bson:"storagePath"`
	Size        int64               `json:"size" bson:"size"`
	ContentType string              `json:"contentType" bson:"contentType"`
	URL         string              `json:"url,omitempty" bson:"url,omitempty"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
}
