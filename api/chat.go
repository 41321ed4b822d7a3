package api

import (
	"net/http"
	"strconv"

	"github.com/RichardKnop/machinery/v1/tasks"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/helpmap/helpmap-api/schema"
)

// initChat is the API for opening a conversation, optionally tied to a
// help request. The back-link onto the request is best effort: the chat
// stands even when that write fails.
func (s *Server) initChat(c *gin.Context) {
	initiatorID := currentUserID(c)

	var params struct {
		Participants  []string `json:"participants" binding:"required"`
		EncryptedKeys []struct {
			UserID       string `json:"userId"`
			EncryptedKey string `json:"encryptedKey"`
		} `json:"encryptedKeys"`
		RequestID string `json:"requestId"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	participants := make([]primitive.ObjectID, 0, len(params.Participants))
	for _, p := range params.Participants {
		id, err := primitive.ObjectIDFromHex(p)
		if err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
			return
		}
		participants = append(participants, id)
	}

	keys := make([]schema.EncryptedKey, 0, len(params.EncryptedKeys))
	for _, k := range params.EncryptedKeys {
		userID, err := primitive.ObjectIDFromHex(k.UserID)
		if err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
			return
		}
		keys = append(keys, schema.EncryptedKey{User: userID, EncryptedKey: k.EncryptedKey})
	}

	var requestID *primitive.ObjectID
	if params.RequestID != "" {
		id, err := primitive.ObjectIDFromHex(params.RequestID)
		if err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
			return
		}
		requestID = &id
	}

	chat, err := s.store.InitChat(initiatorID, participants, keys, requestID)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	if requestID != nil {
		if err := s.store.AttachChatToRequest(*requestID, chat.ID); err != nil {
			log.WithError(err).WithField("chat", chat.ID.Hex()).Warn("attach chat to request")
		}
	}

	c.JSON(http.StatusOK, gin.H{"result": chat})
}

// getChat is the API for fetching a conversation, participants only
func (s *Server) getChat(c *gin.Context) {
	chatID, err := primitive.ObjectIDFromHex(c.Param("chatID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	chat, err := s.store.GetChat(chatID, currentUserID(c))
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": chat})
}

// sendMessage is the API for appending an encrypted message to a chat
func (s *Server) sendMessage(c *gin.Context) {
	chatID, err := primitive.ObjectIDFromHex(c.Param("chatID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	var params struct {
		Payload string             `json:"payload" binding:"required"`
		Meta    schema.MessageMeta `json:"meta"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	message, err := s.store.AddMessage(chatID, currentUserID(c), params.Payload, params.Meta)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": message})
}

// listMessages is the API for reading a chat, newest first
func (s *Server) listMessages(c *gin.Context) {
	chatID, err := primitive.ObjectIDFromHex(c.Param("chatID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
	skip, _ := strconv.ParseInt(c.Query("skip"), 10, 64)

	messages, err := s.store.ListMessages(chatID, currentUserID(c), limit, skip)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": messages})
}

// createOffer is the API for a chat participant to propose help on the
// linked request
func (s *Server) createOffer(c *gin.Context) {
	chatID, err := primitive.ObjectIDFromHex(c.Param("chatID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	var params struct {
		Meta           map[string]interface{} `json:"meta"`
		MessagePayload string                 `json:"messagePayload"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	offer, err := s.store.CreateOffer(chatID, currentUserID(c), params.Meta, params.MessagePayload)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": offer})
}

// confirmOffer is the API for the request author to accept an offer. The
// request transition happens first; the offer only turns CONFIRMED once
// the request is IN_PROGRESS.
func (s *Server) confirmOffer(c *gin.Context) {
	var params struct {
		OfferID string `json:"offerId" binding:"required"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	offerID, err := primitive.ObjectIDFromHex(params.OfferID)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	offer, request, err := s.store.ConfirmOffer(offerID, currentUserID(c))
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	s.enqueueTask("notify_request_accepted", []tasks.Arg{
		{Type: "string", Value: request.ID.Hex()},
		{Type: "string", Value: offer.Helper.Hex()},
	})

	c.JSON(http.StatusOK, gin.H{"result": offer})
}
