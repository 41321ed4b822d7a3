package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OfferCollection = "offers"
)

type OfferStatus string

const (
	OfferPending   OfferStatus = "PENDING"
	OfferConfirmed OfferStatus = "CONFIRMED"
	// OfferRejected is declared for clients but no operation sets it yet
	OfferRejected OfferStatus = "REJECTED"
)

// Offer is a helper's proposal against a request, made inside the chat
// that is linked to that request. At most one offer per request reaches
// CONFIRMED.
type Offer struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Chat      primitive.ObjectID     `bson:"chat" json:"chat"`
	Request   primitive.ObjectID     `bson:"request" json:"request"`
	Helper    primitive.ObjectID     `bson:"helper" json:"helper"`
	Status    OfferStatus            `bson:"status" json:"status"`
	Meta      map[string]interface{} `bson:"meta,omitempty" json:"meta,omitempty"`
	CreatedAt time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time              `bson:"updated_at" json:"updated_at"`
}
