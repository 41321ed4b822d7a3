package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/helpmap/helpmap-api/schema"
)

var (
	ErrOfferNotFound   = fmt.Errorf("offer not found")
	ErrOfferNotPending = fmt.Errorf("offer is not pending")
)

// OfferStore - helper proposals against a request. Confirmation delegates
// the authoritative transition to RequestStore.
type OfferStore interface {
	CreateOffer(chatID, helperID primitive.ObjectID, meta map[string]interface{}, messagePayload string) (*schema.Offer, error)
	GetOffer(id primitive.ObjectID) (*schema.Offer, error)
	ConfirmOffer(offerID, confirmerID primitive.ObjectID) (*schema.Offer, *schema.HelpRequest, error)
}

func (m *mongoDB) offers() *mongo.Collection {
	return m.client.Database(m.database).Collection(schema.OfferCollection)
}

// CreateOffer records a PENDING proposal by a chat participant against the
// request the chat is linked to. When a message payload is given, a tagged
// OFFER message carries the human-visible content in the same chat.
func (m *mongoDB) CreateOffer(chatID, helperID primitive.ObjectID, meta map[string]interface{}, messagePayload string) (*schema.Offer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	chat, err := m.getChatForParticipant(ctx, chatID, helperID)
	if err != nil {
		return nil, err
	}
	if chat.Request == nil {
		return nil, ErrChatNotLinked
	}

	now := time.Now().UTC()
	offer := &schema.Offer{
		ID:        primitive.NewObjectID(),
		Chat:      chat.ID,
		Request:   *chat.Request,
		Helper:    helperID,
		Status:    schema.OfferPending,
		Meta:      meta,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := m.offers().InsertOne(ctx, offer); err != nil {
		return nil, err
	}

	if messagePayload != "" {
		if _, err := m.AddMessage(chat.ID, helperID, messagePayload, schema.MessageMeta{
			Type: schema.MessageTypeOffer,
		}); err != nil {
			return nil, err
		}
	}

	return offer, nil
}

// GetOffer returns an offer by id
func (m *mongoDB) GetOffer(id primitive.ObjectID) (*schema.Offer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var offer schema.Offer
	if err := m.offers().FindOne(ctx, bson.M{"_id": id}).Decode(&offer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}

	return &offer, nil
}

// ConfirmOffer accepts a PENDING offer on behalf of the request author.
// The request-side transition runs first; the offer is marked CONFIRMED
// only after it succeeds, so a lost race leaves the offer PENDING instead
// of falsely CONFIRMED.
func (m *mongoDB) ConfirmOffer(offerID, confirmerID primitive.ObjectID) (*schema.Offer, *schema.HelpRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	offer, err := m.GetOffer(offerID)
	if err != nil {
		return nil, nil, err
	}
	if offer.Status != schema.OfferPending {
		return nil, nil, ErrOfferNotPending
	}

	request, err := m.ConfirmRequestHelper(offer.Request, confirmerID, offer.Helper)
	if err != nil {
		return nil, nil, err
	}

	result, err := m.offers().UpdateOne(ctx,
		bson.M{"_id": offerID, "status": schema.OfferPending},
		bson.M{"$set": bson.M{
			"status":     schema.OfferConfirmed,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return nil, nil, err
	}
	if result.MatchedCount == 0 {
		return nil, nil, ErrOfferNotPending
	}

	offer.Status = schema.OfferConfirmed
	return offer, request, nil
}
