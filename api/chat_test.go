package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/helpmap/helpmap-api/api/mocks"
	"github.com/helpmap/helpmap-api/schema"
	"github.com/helpmap/helpmap-api/store"
)

func TestInitChatAttachesRequest(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	s := Server{store: m}

	userID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()
	requestID := primitive.NewObjectID()
	chatID := primitive.NewObjectID()

	m.EXPECT().InitChat(userID, []primitive.ObjectID{otherID}, gomock.Any(), &requestID).
		Return(&schema.Chat{
			ID:           chatID,
			Participants: []primitive.ObjectID{otherID, userID},
			Request:      &requestID,
		}, nil).Times(1)
	m.EXPECT().AttachChatToRequest(requestID, chatID).Return(nil).Times(1)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(testAuthorized(userID))
	router.POST("/", s.initChat)

	req := httptest.NewRequest("POST", "/",
		strings.NewReader(`{"participants":["`+otherID.Hex()+`"],"requestId":"`+requestID.Hex()+`"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var jResp map[string]schema.Chat
	err := json.Unmarshal([]byte(w.Body.String()), &jResp)
	assert.Nil(t, err, "wrong json unmarshal")
	assert.Equal(t, chatID, jResp["result"].ID, "wrong chat id")
}

func TestInitChatSurvivesBackLinkFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	s := Server{store: m}

	userID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()
	requestID := primitive.NewObjectID()
	chatID := primitive.NewObjectID()

	m.EXPECT().InitChat(userID, gomock.Any(), gomock.Any(), &requestID).
		Return(&schema.Chat{
			ID:           chatID,
			Participants: []primitive.ObjectID{otherID, userID},
			Request:      &requestID,
		}, nil).Times(1)
	m.EXPECT().AttachChatToRequest(requestID, chatID).
		Return(store.ErrRequestNotFound).Times(1)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(testAuthorized(userID))
	router.POST("/", s.initChat)

	req := httptest.NewRequest("POST", "/",
		strings.NewReader(`{"participants":["`+otherID.Hex()+`"],"requestId":"`+requestID.Hex()+`"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// the chat is created even when the back-link write fails
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
}

func TestSendMessageForbiddenForStrangers(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	s := Server{store: m}

	userID := primitive.NewObjectID()
	chatID := primitive.NewObjectID()

	m.EXPECT().AddMessage(chatID, userID, "ciphertext", gomock.Any()).
		Return(nil, store.ErrNotChatParticipant).Times(1)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(testAuthorized(userID))
	router.POST("/:chatID/messages", s.sendMessage)

	req := httptest.NewRequest("POST", "/"+chatID.Hex()+"/messages",
		strings.NewReader(`{"payload":"ciphertext"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code, "wrong status code")

	var jResp ErrorResponse
	err := json.Unmarshal([]byte(w.Body.String()), &jResp)
	assert.Nil(t, err, "wrong json unmarshal")
	assert.Equal(t, int64(1301), jResp.Code, "wrong error code")
}

func TestConfirmOffer(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	s := Server{store: m}

	userID := primitive.NewObjectID()
	offerID := primitive.NewObjectID()
	requestID := primitive.NewObjectID()
	helperID := primitive.NewObjectID()

	m.EXPECT().ConfirmOffer(offerID, userID).
		Return(&schema.Offer{
			ID:      offerID,
			Request: requestID,
			Helper:  helperID,
			Status:  schema.OfferConfirmed,
		}, &schema.HelpRequest{
			ID:     requestID,
			Author: userID,
			Helper: &helperID,
			Status: schema.RequestInProgress,
		}, nil).Times(1)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(testAuthorized(userID))
	router.POST("/offers/confirm", s.confirmOffer)

	req := httptest.NewRequest("POST", "/offers/confirm",
		strings.NewReader(`{"offerId":"`+offerID.Hex()+`"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var jResp map[string]schema.Offer
	err := json.Unmarshal([]byte(w.Body.String()), &jResp)
	assert.Nil(t, err, "wrong json unmarshal")
	assert.Equal(t, schema.OfferConfirmed, jResp["result"].Status, "wrong offer status")
}

func TestConfirmOfferNotPending(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	s := Server{store: m}

	userID := primitive.NewObjectID()
	offerID := primitive.NewObjectID()

	m.EXPECT().ConfirmOffer(offerID, userID).
		Return(nil, nil, store.ErrOfferNotPending).Times(1)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(testAuthorized(userID))
	router.POST("/offers/confirm", s.confirmOffer)

	req := httptest.NewRequest("POST", "/offers/confirm",
		strings.NewReader(`{"offerId":"`+offerID.Hex()+`"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code, "wrong status code")

	var jResp ErrorResponse
	err := json.Unmarshal([]byte(w.Body.String()), &jResp)
	assert.Nil(t, err, "wrong json unmarshal")
	assert.Equal(t, int64(1401), jResp.Code, "wrong error code")
}
