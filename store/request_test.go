package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/helpmap/helpmap-api/schema"
)

// RequestTestSuite runs against a live mongodb. The lifecycle operations
// use multi-document transactions, so the target server must be a replica
// set member.
type RequestTestSuite struct {
	suite.Suite
	connURI      string
	testDBName   string
	mongoClient  *mongo.Client
	testDatabase *mongo.Database
	store        MongoStore
}

func NewRequestTestSuite(connURI, dbName string) *RequestTestSuite {
	return &RequestTestSuite{
		connURI:    connURI,
		testDBName: dbName,
	}
}

func (s *RequestTestSuite) SetupSuite() {
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
func (s *RequestTestSuite) CleanMongoDB() error {
	return s.testDatabase.Drop(context.Background())
}

func (s *RequestTestSuite) mustCreateUser(points int) *schema.User {
	email := fmt.Sprintf("%s@test.local", primitive.NewObjectID().Hex())
	user, err := s.store.CreateUser(email, "hash", "tester", "", points)
	s.Require().NoError(err)
	return user
}

func (s *RequestTestSuite) userPoints(id primitive.ObjectID) int {
	var user schema.User
	err := s.testDatabase.Collection(schema.UserCollection).
		FindOne(context.Background(), bson.M{"_id": id}).Decode(&user)
	s.Require().NoError(err)
	return user.Points
}

func (s *RequestTestSuite) mustCreateRequest(authorID primitive.ObjectID) *schema.HelpRequest {
	request, err := s.store.CreateRequest(authorID, CreateRequestParams{
		Title:     "need groceries",
		Category:  schema.CategoryFood,
		Latitude:  50.45,
		Longitude: 30.52,
	})
	s.Require().NoError(err)
	return request
}

func (s *RequestTestSuite) TestCreateRequestDebitsAuthor() {
	author := s.mustCreateUser(5)

	request, err := s.store.CreateRequest(author.ID, CreateRequestParams{
		Title:     "need groceries",
		Category:  schema.CategoryFood,
		Latitude:  50.45,
		Longitude: 30.52,
	})
	s.NoError(err)
	s.Equal(schema.RequestOpen, request.Status)
	s.Equal(schema.ImportanceMedium, request.Importance)
	s.Equal(1, request.CostPoints)
	s.Equal(4, s.userPoints(author.ID))
}

func (s *RequestTestSuite) TestCreateRequestInsufficientPoints() {
	author := s.mustCreateUser(0)

	_, err := s.store.CreateRequest(author.ID, CreateRequestParams{
		Title:     "need groceries",
		Category:  schema.CategoryFood,
		Latitude:  50.45,
		Longitude: 30.52,
	})
	s.Equal(ErrInsufficientPoints, err)

	// the failed debit must not leave a request behind
	count, err := s.testDatabase.Collection(schema.RequestCollection).
		CountDocuments(context.Background(), bson.M{"author": author.ID})
	s.NoError(err)
	s.Equal(int64(0), count)
	s.Equal(0, s.userPoints(author.ID))
}

func (s *RequestTestSuite) TestCreateRequestUnknownAuthor() {
	_, err := s.store.CreateRequest(primitive.NewObjectID(), CreateRequestParams{
		Title:     "need groceries",
		Category:  schema.CategoryFood,
		Latitude:  50.45,
		Longitude: 30.52,
	})
	s.Equal(ErrUserNotFound, err)
}

func (s *RequestTestSuite) TestConfirmRequestHelper() {
	author := s.mustCreateUser(5)
	helper := s.mustCreateUser(5)
	request := s.mustCreateRequest(author.ID)

	confirmed, err := s.store.ConfirmRequestHelper(request.ID, author.ID, helper.ID)
	s.NoError(err)
	s.Equal(schema.RequestInProgress, confirmed.Status)
	s.Require().NotNil(confirmed.Helper)
	s.Equal(helper.ID, *confirmed.Helper)

	// a second confirmation finds no OPEN request to bind
	_, err = s.store.ConfirmRequestHelper(request.ID, author.ID, helper.ID)
	s.Equal(ErrRequestNotOpen, err)
}

func (s *RequestTestSuite) TestConfirmRequestHelperNotAuthor() {
	author := s.mustCreateUser(5)
	helper := s.mustCreateUser(5)
	request := s.mustCreateRequest(author.ID)

	_, err := s.store.ConfirmRequestHelper(request.ID, helper.ID, helper.ID)
	s.Equal(ErrNotRequestAuthor, err)
}

func (s *RequestTestSuite) TestConcurrentConfirmSingleWinner() {
	author := s.mustCreateUser(5)
	helperA := s.mustCreateUser(5)
	helperB := s.mustCreateUser(5)
	request := s.mustCreateRequest(author.ID)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, helperID := range []primitive.ObjectID{helperA.ID, helperB.ID} {
		wg.Add(1)
		go func(id primitive.ObjectID) {
			defer wg.Done()
			_, err := s.store.ConfirmRequestHelper(request.ID, author.ID, id)
			errs <- err
		}(helperID)
	}
	wg.Wait()
	close(errs)

	// the losing confirmation retries onto a fresh snapshot and fails its
	// precondition check; a raw write-conflict error must never leak out
	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			s.Equal(ErrRequestNotOpen, err)
		}
	}
	s.Equal(1, succeeded)

	final, err := s.store.GetRequest(request.ID)
	s.NoError(err)
	s.Equal(schema.RequestInProgress, final.Status)
	s.Require().NotNil(final.Helper)
	s.Contains([]primitive.ObjectID{helperA.ID, helperB.ID}, *final.Helper)
}

func (s *RequestTestSuite) TestCompleteRequestSuccessCreditsHelper() {
	author := s.mustCreateUser(5)
	helper := s.mustCreateUser(5)
	request := s.mustCreateRequest(author.ID)

	_, err := s.store.ConfirmRequestHelper(request.ID, author.ID, helper.ID)
	s.Require().NoError(err)

	completed, err := s.store.CompleteRequest(request.ID, author.ID, true)
	s.NoError(err)
	s.Equal(schema.RequestCompletedSuccess, completed.Status)
	s.Equal(6, s.userPoints(helper.ID))

	// the terminal state admits no further completion
	_, err = s.store.CompleteRequest(request.ID, author.ID, true)
	s.Equal(ErrRequestNotInProgress, err)
}

func (s *RequestTestSuite) TestCompleteRequestFailureKeepsBalance() {
	author := s.mustCreateUser(5)
	helper := s.mustCreateUser(5)
	request := s.mustCreateRequest(author.ID)

	_, err := s.store.ConfirmRequestHelper(request.ID, author.ID, helper.ID)
	s.Require().NoError(err)

	// the bound helper may settle the request as well
	completed, err := s.store.CompleteRequest(request.ID, helper.ID, false)
	s.NoError(err)
	s.Equal(schema.RequestCompletedFailed, completed.Status)
	s.Equal(5, s.userPoints(helper.ID))
}

func (s *RequestTestSuite) TestCompleteRequestByStranger() {
	author := s.mustCreateUser(5)
	helper := s.mustCreateUser(5)
	stranger := s.mustCreateUser(5)
	request := s.mustCreateRequest(author.ID)

	_, err := s.store.ConfirmRequestHelper(request.ID, author.ID, helper.ID)
	s.Require().NoError(err)

	_, err = s.store.CompleteRequest(request.ID, stranger.ID, true)
	s.Equal(ErrNotRequestMember, err)
}

func (s *RequestTestSuite) TestCompleteRequestNotInProgress() {
	author := s.mustCreateUser(5)
	request := s.mustCreateRequest(author.ID)

	_, err := s.store.CompleteRequest(request.ID, author.ID, true)
	s.Equal(ErrRequestNotInProgress, err)
}

func (s *RequestTestSuite) TestUpdateRequestAuthorOnlyWhileOpen() {
	author := s.mustCreateUser(5)
	helper := s.mustCreateUser(5)
	stranger := s.mustCreateUser(5)
	request := s.mustCreateRequest(author.ID)

	title := "need groceries urgently"
	_, err := s.store.UpdateRequest(request.ID, stranger.ID, RequestPatch{Title: &title})
	s.Equal(ErrNotRequestAuthor, err)

	updated, err := s.store.UpdateRequest(request.ID, author.ID, RequestPatch{Title: &title})
	s.NoError(err)
	s.Equal(title, updated.Title)
	s.Equal(schema.CategoryFood, updated.Category)

	_, err = s.store.ConfirmRequestHelper(request.ID, author.ID, helper.ID)
	s.Require().NoError(err)

	_, err = s.store.UpdateRequest(request.ID, author.ID, RequestPatch{Title: &title})
	s.Equal(ErrRequestNotOpen, err)
}

func (s *RequestTestSuite) TestFindNearbyRequests() {
	author := s.mustCreateUser(5)

	// a corner of the map no other test writes to
	center := schema.Location{Latitude: -33.8688, Longitude: 151.2093}

	near, err := s.store.CreateRequest(author.ID, CreateRequestParams{
		Title:     "need groceries",
		Category:  schema.CategoryFood,
		Latitude:  center.Latitude,
		Longitude: center.Longitude,
	})
	s.Require().NoError(err)

	_, err = s.store.CreateRequest(author.ID, CreateRequestParams{
		Title:     "need a ride",
		Category:  schema.CategoryTransport,
		Latitude:  -33.9,
		Longitude: 151.5,
	})
	s.Require().NoError(err)

	results, err := s.store.FindNearbyRequests(NearbyFilter{
		Center: &center,
		Radius: 1000,
	})
	s.NoError(err)
	s.Require().Len(results, 1)
	s.Equal(near.ID, results[0].ID)
	s.Require().NotNil(results[0].DistanceMeters)
	s.Less(*results[0].DistanceMeters, float64(10))

	// the category filter is applied inside the proximity query
	results, err = s.store.FindNearbyRequests(NearbyFilter{
		Center:   &center,
		Radius:   1000,
		Category: schema.CategoryMedical,
	})
	s.NoError(err)
	s.Len(results, 0)
}

func (s *RequestTestSuite) TestAttachChatToRequest() {
	author := s.mustCreateUser(5)
	request := s.mustCreateRequest(author.ID)
	chatID := primitive.NewObjectID()

	s.NoError(s.store.AttachChatToRequest(request.ID, chatID))

	linked, err := s.store.GetRequest(request.ID)
	s.NoError(err)
	s.Require().NotNil(linked.Chat)
	s.Equal(chatID, *linked.Chat)

	s.Equal(ErrRequestNotFound, s.store.AttachChatToRequest(primitive.NewObjectID(), chatID))
}

func TestRequestTestSuite(t *testing.T) {
	suite.Run(t, NewRequestTestSuite("mongodb://127.0.0.1:27017/?compressors=disabled", "test-db"))
}
