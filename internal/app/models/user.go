package models

import "time"

type TimeModel struct {
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

func (t *TimeModel) Touch(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

type User struct {
	ID           string `json:"id" bson:"_id,omitempty"`
	Role         string `json:"role" bson:"role"`
	Email        string `json:"email" bson:"email"`
	Username     string `json:"username" bson:"username"`
	Password     string `json:"-" bson:"password"`
	FullName     string `json:"full_name" bson:"full_name"`
	Bio          string `json:"bio,omitempty" bson:"bio,omitempty"`
	AvatarObject string `json:"-" bson:"avatar_object,omitempty"`
	TimeModel    `bson:",inline"`
}

// AuthSession is the Redis-backed login session referenced by the JWT.
type AuthSession struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
