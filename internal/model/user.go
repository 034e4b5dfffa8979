package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account together with the body profile used for targets.
// PasswordHash is never serialized to JSON.
type User struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Username      string             `json:"username" bson:"username"`
	Email         string             `json:"email" bson:"email"`
	PasswordHash  string             `json:"-" bson:"password"`
	Fullname      string             `json:"fullname,omitempty" bson:"fullname,omitempty"`
	Image         string             `json:"image,omitempty" bson:"image,omitempty"`
	Age           *int               `json:"age,omitempty" bson:"age,omitempty"`
	Weight        *float64           `json:"weight,omitempty" bson:"weight,omitempty"`
	Height        *float64           `json:"height,omitempty" bson:"height,omitempty"`
	Gender        string             `json:"gender,omitempty" bson:"gender,omitempty"`
	ActivityLevel string             `json:"activityLevel,omitempty" bson:"activityLevel,omitempty"`
	Goal          string             `json:"goal,omitempty" bson:"goal,omitempty"`
	BMI           *float64           `json:"bmi,omitempty" bson:"bmi,omitempty"`
	TDEE          *float64           `json:"tdee,omitempty" bson:"tdee,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// TDEEOrZero returns the stored TDEE or 0 when unset.
func (u *User) TDEEOrZero() float64 {
	if u == nil || u.TDEE == nil {
		return 0
	}
	return *u.TDEE
}

// ProfileUpdate carries the optional profile fields of an update request.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Age           *int
	Weight        *float64
	Height        *float64
	Gender        *string
	ActivityLevel *string
	Goal          *string
	BMI           *float64
	TDEE          *float64
}

// Empty reports whether no field was supplied.
func (p ProfileUpdate) Empty() bool {
	return p.Age == nil && p.Weight == nil && p.Height == nil && p.Gender == nil &&
		p.ActivityLevel == nil && p.Goal == nil && p.BMI == nil && p.TDEE == nil
}
