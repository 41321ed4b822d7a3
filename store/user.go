package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/helpmap/helpmap-api/schema"
)

var (
	ErrUserNotFound = fmt.Errorf("user not found")
	ErrEmailTaken   = fmt.Errorf("email already in use")
	ErrNoPublicKey  = fmt.Errorf("public key not found")
)

// UserStore - operations for user accounts. Note that the points balance
// has no writer here: debits and credits happen only inside the request
// lifecycle transactions in RequestStore.
type UserStore interface {
	CreateUser(email, passwordHash, name, publicKey string, startPoints int) (*schema.User, error)
	GetUser(id primitive.ObjectID) (*schema.User, error)
	GetUserByEmail(email string) (*schema.User, error)
	UpdateUserProfile(id primitive.ObjectID, name string, location *schema.Location) (*schema.User, error)
	SetUserPublicKey(id primitive.ObjectID, publicKey string) (*schema.User, error)
	GetUserPublicKey(id primitive.ObjectID) (string, error)
	UpdateUserRefreshTokenHash(id primitive.ObjectID, hash string) error
	NearbyUsers(distance int, cords schema.Location) ([]primitive.ObjectID, error)
}

// CreateUser registers a new account with its initial points balance
func (m *mongoDB) CreateUser(email, passwordHash, name, publicKey string, startPoints int) (*schema.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	user := &schema.User{
		ID:           primitive.NewObjectID(),
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Name:         name,
		Points:       startPoints,
		PublicKey:    publicKey,
		Roles:        []string{"user"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	c := m.client.Database(m.database).Collection(schema.UserCollection)
	if _, err := c.InsertOne(ctx, user); err != nil {
		if we, ok := err.(mongo.WriteException); ok {
			for _, e := range we.WriteErrors {
				if e.Code == DuplicateKeyCode {
					return nil, ErrEmailTaken
				}
			}
		}
		return nil, err
	}

	return user, nil
}

// GetUser returns a user instance of a given id
func (m *mongoDB) GetUser(id primitive.ObjectID) (*schema.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var user schema.User
	c := m.client.Database(m.database).Collection(schema.UserCollection)
	if err := c.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// GetUserByEmail looks a user up by its normalized email
func (m *mongoDB) GetUserByEmail(email string) (*schema.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var user schema.User
	c := m.client.Database(m.database).Collection(schema.UserCollection)
	if err := c.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// UpdateUserProfile updates the mutable profile fields of an account
func (m *mongoDB) UpdateUserProfile(id primitive.ObjectID, name string, location *schema.Location) (*schema.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	update := bson.M{"updated_at": time.Now().UTC()}
	if name != "" {
		update["name"] = name
	}
	if location != nil {
		update["location"] = schema.NewPoint(location.Longitude, location.Latitude)
	}

	return m.findUserAndUpdate(ctx, id, bson.M{"$set": update})
}

// SetUserPublicKey stores the client's RSA public key PEM
func (m *mongoDB) SetUserPublicKey(id primitive.ObjectID, publicKey string) (*schema.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	return m.findUserAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"public_key": publicKey,
		"updated_at": time.Now().UTC(),
	}})
}

// GetUserPublicKey returns the stored public key of a user
func (m *mongoDB) GetUserPublicKey(id primitive.ObjectID) (string, error) {
	user, err := m.GetUser(id)
	if err != nil {
		return "", err
	}
	if user.PublicKey == "" {
		return "", ErrNoPublicKey
	}
	return user.PublicKey, nil
}

// UpdateUserRefreshTokenHash replaces the stored refresh token hash.
// An empty hash removes it, which invalidates all refresh tokens.
func (m *mongoDB) UpdateUserRefreshTokenHash(id primitive.ObjectID, hash string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"updated_at": time.Now().UTC()}}
	if hash == "" {
		update["$unset"] = bson.M{"refresh_token_hash": ""}
	} else {
		update["$set"].(bson.M)["refresh_token_hash"] = hash
	}

	c := m.client.Database(m.database).Collection(schema.UserCollection)
	result, err := c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

// NearbyUsers finds users whose last known location is within the given
// distance, nearest first
func (m *mongoDB) NearbyUsers(distance int, cords schema.Location) ([]primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.UserCollection)
	cur, err := c.Find(ctx, distanceQuery(distance, cords))
	if err != nil {
		log.WithField("prefix", mongoLogPrefix).Errorf("query nearby users with error: %s", err)
		return nil, fmt.Errorf("nearby users query with error: %s", err)
	}

	ids := make([]primitive.ObjectID, 0)
	for cur.Next(ctx) {
		var user schema.User
		if err := cur.Decode(&user); err != nil {
			return nil, fmt.Errorf("nearby users query decode record with error: %s", err)
		}
		ids = append(ids, user.ID)
	}

	log.WithField("prefix", mongoLogPrefix).Debugf("nearby users query gets %d records near long:%v lat:%v",
		len(ids), cords.Longitude, cords.Latitude)

	return ids, nil
}

func (m *mongoDB) findUserAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*schema.User, error) {
	c := m.client.Database(m.database).Collection(schema.UserCollection)

	var user schema.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// distanceQuery matches documents whose location lies within distance
// meters of cords, ordered from nearest to farthest
func distanceQuery(distance int, cords schema.Location) bson.D {
	return bson.D{{
		Key: "location",
		Value: bson.D{{
			Key: "$nearSphere",
			Value: bson.D{{
				Key: "$geometry",
				Value: bson.D{{
					Key:   "type",
					Value: "Point",
				}, {
					Key:   "coordinates",
					Value: bson.A{cords.Longitude, cords.Latitude},
				}},
			}, {
				Key:   "$maxDistance",
				Value: distance,
			}},
		}},
	}}
}
