package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ChatCollection    = "chats"
	MessageCollection = "messages"
)

// EncryptedKey carries the chat symmetric key for one participant,
// RSA-encrypted by the client against that participant's public key.
// The server never sees the plaintext key.
type EncryptedKey struct {
	User         primitive.ObjectID `bson:"user" json:"user"`
	EncryptedKey string             `bson:"encrypted_key" json:"encrypted_key"`
}

// Chat is a multi-party conversation, optionally tied to one help request
// to carry its negotiation.
type Chat struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Participants  []primitive.ObjectID `bson:"participants" json:"participants"`
	EncryptedKeys []EncryptedKey       `bson:"encrypted_keys,omitempty" json:"encrypted_keys,omitempty"`
	Request       *primitive.ObjectID  `bson:"request,omitempty" json:"request,omitempty"`
	Closed        bool                 `bson:"closed" json:"closed"`
	CreatedAt     time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at" json:"updated_at"`
}

// HasParticipant reports whether the given user belongs to the chat
func (c *Chat) HasParticipant(userID primitive.ObjectID) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

type MessageType string

const (
	MessageTypeText         MessageType = "TEXT"
	MessageTypeOffer        MessageType = "OFFER"
	MessageTypeOfferConfirm MessageType = "OFFER_CONFIRM"
)

// MessageMeta describes how to interpret an opaque message payload.
// IV and Nonce belong to the client-side encryption scheme and are stored
// verbatim.
type MessageMeta struct {
	Type  MessageType `bson:"type" json:"type"`
	IV    string      `bson:"iv,omitempty" json:"iv,omitempty"`
	Nonce string      `bson:"nonce,omitempty" json:"nonce,omitempty"`
}

// Message is an immutable encrypted blob inside a chat, ordered by
// creation time.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Chat      primitive.ObjectID `bson:"chat" json:"chat"`
	Sender    primitive.ObjectID `bson:"sender" json:"sender"`
	Payload   string             `bson:"payload" json:"payload"`
	Meta      MessageMeta        `bson:"meta" json:"meta"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
