package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/helpmap/helpmap-api/schema"
)

type ChatTestSuite struct {
	suite.Suite
	connURI      string
	testDBName   string
	mongoClient  *mongo.Client
	testDatabase *mongo.Database
	store        MongoStore
}

func NewChatTestSuite(connURI, dbName string) *ChatTestSuite {
	return &ChatTestSuite{
		connURI:    connURI,
		testDBName: dbName,
	}
}

func (s *ChatTestSuite) SetupSuite() {
	if s.connURI == "" || s.testDBName == "" {
		s.T().Fatal("invalid test suite configuration")
	}

	opts := options.Client().ApplyURI(s.connURI)
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		s.T().Fatalf("create mongo client with error: %s", err)
	}

	if err = mongoClient.Connect(context.Background()); nil != err {
		s.T().Fatalf("connect mongo database with error: %s", err.Error())
	}

	if err := mongoClient.Ping(context.Background(), nil); err != nil {
		s.T().Skipf("mongodb is not available: %s", err)
	}

	s.mongoClient = mongoClient
	s.testDatabase = mongoClient.Database(s.testDBName)

	// make sure the test suite is run with a clean environment
	if err := s.CleanMongoDB(); err != nil {
		s.T().Fatal(err)
	}
	schema.NewMongoDBIndexer(s.connURI, s.testDBName).IndexAll()

	s.store = NewMongoStore(s.mongoClient, s.testDBName)
}

// CleanMongoDB drop the whole test mongodb
func (s *ChatTestSuite) CleanMongoDB() error {
	return s.testDatabase.Drop(context.Background())
}

func (s *ChatTestSuite) mustCreateUser(points int) *schema.User {
	email := fmt.Sprintf("%s@test.local", primitive.NewObjectID().Hex())
	user, err := s.store.CreateUser(email, "hash", "tester", "", points)
	s.Require().NoError(err)
	return user
}

func (s *ChatTestSuite) mustCreateRequest(authorID primitive.ObjectID) *schema.HelpRequest {
	request, err := s.store.CreateRequest(authorID, CreateRequestParams{
		Title:     "need groceries",
		Category:  schema.CategoryFood,
		Latitude:  50.45,
		Longitude: 30.52,
	})
	s.Require().NoError(err)
	return request
}

func (s *ChatTestSuite) TestInitChatDedupesParticipants() {
	alice := s.mustCreateUser(5)
	bob := s.mustCreateUser(5)

	chat, err := s.store.InitChat(alice.ID, []primitive.ObjectID{bob.ID, bob.ID, alice.ID}, nil, nil)
	s.NoError(err)
	s.Len(chat.Participants, 2)
	s.True(chat.HasParticipant(alice.ID))
	s.True(chat.HasParticipant(bob.ID))
}

func (s *ChatTestSuite) TestInitChatTooFewParticipants() {
	alice := s.mustCreateUser(5)

	_, err := s.store.InitChat(alice.ID, []primitive.ObjectID{alice.ID}, nil, nil)
	s.Equal(ErrTooFewParticipants, err)
}

func (s *ChatTestSuite) TestGetChatParticipantsOnly() {
	alice := s.mustCreateUser(5)
	bob := s.mustCreateUser(5)
	carol := s.mustCreateUser(5)

	chat, err := s.store.InitChat(alice.ID, []primitive.ObjectID{bob.ID}, nil, nil)
	s.Require().NoError(err)

	found, err := s.store.GetChat(chat.ID, bob.ID)
	s.NoError(err)
	s.Equal(chat.ID, found.ID)

	_, err = s.store.GetChat(chat.ID, carol.ID)
	s.Equal(ErrNotChatParticipant, err)

	_, err = s.store.GetChat(primitive.NewObjectID(), alice.ID)
	s.Equal(ErrChatNotFound, err)
}

func (s *ChatTestSuite) TestAddMessageDefaultsToText() {
	alice := s.mustCreateUser(5)
	bob := s.mustCreateUser(5)
	carol := s.mustCreateUser(5)

	chat, err := s.store.InitChat(alice.ID, []primitive.ObjectID{bob.ID}, nil, nil)
	s.Require().NoError(err)

	message, err := s.store.AddMessage(chat.ID, alice.ID, "ciphertext", schema.MessageMeta{})
	s.NoError(err)
	s.Equal(schema.MessageTypeText, message.Meta.Type)
	s.Equal("ciphertext", message.Payload)

	_, err = s.store.AddMessage(chat.ID, carol.ID, "ciphertext", schema.MessageMeta{})
	s.Equal(ErrNotChatParticipant, err)
}

func (s *ChatTestSuite) TestListMessagesNewestFirst() {
	alice := s.mustCreateUser(5)
	bob := s.mustCreateUser(5)

	chat, err := s.store.InitChat(alice.ID, []primitive.ObjectID{bob.ID}, nil, nil)
	s.Require().NoError(err)

	for _, payload := range []string{"first", "second", "third"} {
		_, err := s.store.AddMessage(chat.ID, alice.ID, payload, schema.MessageMeta{})
		s.Require().NoError(err)
		// created_at is stored with millisecond precision
		time.Sleep(5 * time.Millisecond)
	}

	messages, err := s.store.ListMessages(chat.ID, bob.ID, 0, 0)
	s.NoError(err)
	s.Require().Len(messages, 3)
	s.Equal("third", messages[0].Payload)
	s.Equal("first", messages[2].Payload)

	paged, err := s.store.ListMessages(chat.ID, bob.ID, 1, 1)
	s.NoError(err)
	s.Require().Len(paged, 1)
	s.Equal("second", paged[0].Payload)
}

func (s *ChatTestSuite) TestCreateOfferRequiresLinkedChat() {
	alice := s.mustCreateUser(5)
	bob := s.mustCreateUser(5)

	chat, err := s.store.InitChat(alice.ID, []primitive.ObjectID{bob.ID}, nil, nil)
	s.Require().NoError(err)

	_, err = s.store.CreateOffer(chat.ID, bob.ID, nil, "")
	s.Equal(ErrChatNotLinked, err)
}

func (s *ChatTestSuite) TestOfferConfirmFlow() {
	author := s.mustCreateUser(5)
	helper := s.mustCreateUser(5)
	request := s.mustCreateRequest(author.ID)

	chat, err := s.store.InitChat(helper.ID, []primitive.ObjectID{author.ID}, nil, &request.ID)
	s.Require().NoError(err)
	s.Require().NoError(s.store.AttachChatToRequest(request.ID, chat.ID))

	offer, err := s.store.CreateOffer(chat.ID, helper.ID, map[string]interface{}{"note": "can do it today"}, "offer ciphertext")
	s.NoError(err)
	s.Equal(schema.OfferPending, offer.Status)
	s.Equal(request.ID, offer.Request)

	// the accompanying message is tagged as an offer
	count, err := s.testDatabase.Collection(schema.MessageCollection).
		CountDocuments(context.Background(), bson.M{"chat": chat.ID, "meta.type": schema.MessageTypeOffer})
	s.NoError(err)
	s.Equal(int64(1), count)

	// only the request author can confirm
	_, _, err = s.store.ConfirmOffer(offer.ID, helper.ID)
	s.Equal(ErrNotRequestAuthor, err)

	stillPending, err := s.store.GetOffer(offer.ID)
	s.NoError(err)
	s.Equal(schema.OfferPending, stillPending.Status)

	confirmed, confirmedRequest, err := s.store.ConfirmOffer(offer.ID, author.ID)
	s.NoError(err)
	s.Equal(schema.OfferConfirmed, confirmed.Status)
	s.Equal(schema.RequestInProgress, confirmedRequest.Status)
	s.Require().NotNil(confirmedRequest.Helper)
	s.Equal(helper.ID, *confirmedRequest.Helper)

	_, _, err = s.store.ConfirmOffer(offer.ID, author.ID)
	s.Equal(ErrOfferNotPending, err)
}

func (s *ChatTestSuite) TestConfirmSecondOfferAfterBinding() {
	author := s.mustCreateUser(5)
	helperA := s.mustCreateUser(5)
	helperB := s.mustCreateUser(5)
	request := s.mustCreateRequest(author.ID)

	chatA, err := s.store.InitChat(helperA.ID, []primitive.ObjectID{author.ID}, nil, &request.ID)
	s.Require().NoError(err)
	chatB, err := s.store.InitChat(helperB.ID, []primitive.ObjectID{author.ID}, nil, &request.ID)
	s.Require().NoError(err)

	offerA, err := s.store.CreateOffer(chatA.ID, helperA.ID, nil, "")
	s.Require().NoError(err)
	offerB, err := s.store.CreateOffer(chatB.ID, helperB.ID, nil, "")
	s.Require().NoError(err)

	_, _, err = s.store.ConfirmOffer(offerA.ID, author.ID)
	s.NoError(err)

	// the request already left OPEN, so the late offer stays PENDING
	_, _, err = s.store.ConfirmOffer(offerB.ID, author.ID)
	s.Equal(ErrRequestNotOpen, err)

	late, err := s.store.GetOffer(offerB.ID)
	s.NoError(err)
	s.Equal(schema.OfferPending, late.Status)
}

func TestChatTestSuite(t *testing.T) {
	suite.Run(t, NewChatTestSuite("mongodb://127.0.0.1:27017/?compressors=disabled", "test-db"))
}
