package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/helpmap/helpmap-api/schema"
)

var (
	ErrChatNotFound       = fmt.Errorf("chat not found")
	ErrNotChatParticipant = fmt.Errorf("not a chat participant")
	ErrChatNotLinked      = fmt.Errorf("chat is not linked to a request")
	ErrTooFewParticipants = fmt.Errorf("a chat needs at least two participants")
)

// ChatStore - the encrypted chat transport. The server treats payloads as
// opaque blobs; the only rule it enforces is participant membership.
type ChatStore interface {
	InitChat(initiatorID primitive.ObjectID, participants []primitive.ObjectID, keys []schema.EncryptedKey, requestID *primitive.ObjectID) (*schema.Chat, error)
	GetChat(chatID, userID primitive.ObjectID) (*schema.Chat, error)
	AddMessage(chatID, senderID primitive.ObjectID, payload string, meta schema.MessageMeta) (*schema.Message, error)
	ListMessages(chatID, userID primitive.ObjectID, limit, skip int64) ([]schema.Message, error)
}

func (m *mongoDB) chats() *mongo.Collection {
	return m.client.Database(m.database).Collection(schema.ChatCollection)
}

func (m *mongoDB) messages() *mongo.Collection {
	return m.client.Database(m.database).Collection(schema.MessageCollection)
}

// InitChat creates a conversation. The initiator is always part of the
// participant set; the request back-link on the Request side is written by
// the caller, not here, so a failed back-link never rolls back the chat.
func (m *mongoDB) InitChat(initiatorID primitive.ObjectID, participants []primitive.ObjectID, keys []schema.EncryptedKey, requestID *primitive.ObjectID) (*schema.Chat, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	members := make([]primitive.ObjectID, 0, len(participants)+1)
	seen := make(map[primitive.ObjectID]bool)
	for _, p := range append(participants, initiatorID) {
		if !seen[p] {
			seen[p] = true
			members = append(members, p)
		}
	}
	if len(members) < 2 {
		return nil, ErrTooFewParticipants
	}

	now := time.Now().UTC()
	chat := &schema.Chat{
		ID:            primitive.NewObjectID(),
		Participants:  members,
		EncryptedKeys: keys,
		Request:       requestID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := m.chats().InsertOne(ctx, chat); err != nil {
		return nil, err
	}

	return chat, nil
}

// GetChat returns a chat if the user is one of its participants
func (m *mongoDB) GetChat(chatID, userID primitive.ObjectID) (*schema.Chat, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	return m.getChatForParticipant(ctx, chatID, userID)
}

// AddMessage appends an immutable message to a chat
func (m *mongoDB) AddMessage(chatID, senderID primitive.ObjectID, payload string, meta schema.MessageMeta) (*schema.Message, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	chat, err := m.getChatForParticipant(ctx, chatID, senderID)
	if err != nil {
		return nil, err
	}

	if meta.Type == "" {
		meta.Type = schema.MessageTypeText
	}

	message := &schema.Message{
		ID:        primitive.NewObjectID(),
		Chat:      chat.ID,
		Sender:    senderID,
		Payload:   payload,
		Meta:      meta,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := m.messages().InsertOne(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

// ListMessages returns the messages of a chat, newest first
func (m *mongoDB) ListMessages(chatID, userID primitive.ObjectID, limit, skip int64) ([]schema.Message, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	chat, err := m.getChatForParticipant(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := m.messages().Find(ctx, bson.M{"chat": chat.ID}, opts)
	if err != nil {
		return nil, err
	}

	messages := make([]schema.Message, 0)
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

func (m *mongoDB) getChatForParticipant(ctx context.Context, chatID, userID primitive.ObjectID) (*schema.Chat, error) {
	var chat schema.Chat
	if err := m.chats().FindOne(ctx, bson.M{"_id": chatID}).Decode(&chat); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	if !chat.HasParticipant(userID) {
		return nil, ErrNotChatParticipant
	}

	return &chat, nil
}
