package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	UserCollection = "users"
)

// User is a registered account. The points balance is mutated only by the
// request-lifecycle transactions in the store; no API writes it directly.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email            string             `bson:"email" json:"email"`
	PasswordHash     string             `bson:"password_hash" json:"-"`
	Name             string             `bson:"name,omitempty" json:"name,omitempty"`
	Points           int                `bson:"points" json:"points"`
	PublicKey        string             `bson:"public_key,omitempty" json:"public_key,omitempty"`
	Roles            []string           `bson:"roles" json:"roles"`
	RefreshTokenHash string             `bson:"refresh_token_hash,omitempty" json:"-"`
	Location         *GeoJSON           `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}
