package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/helpmap/helpmap-api/schema"
)

// getUser is the API to query a user's public profile
func (s *Server) getUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	user, err := s.store.GetUser(userID)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": user})
}

// updateProfile is the API to update the authenticated user's profile
func (s *Server) updateProfile(c *gin.Context) {
	var params struct {
		Name     string           `json:"name"`
		Location *schema.Location `json:"location"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	user, err := s.store.UpdateUserProfile(currentUserID(c), params.Name, params.Location)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": user})
}

// setUserPublicKey is the API to store the client's RSA public key so
// other participants can encrypt chat keys against it
func (s *Server) setUserPublicKey(c *gin.Context) {
	var params struct {
		PublicKey string `json:"public_key" binding:"required"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	user, err := s.store.SetUserPublicKey(currentUserID(c), params.PublicKey)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": user})
}

// getUserPublicKey is the API to fetch another user's public key
func (s *Server) getUserPublicKey(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	publicKey, err := s.store.GetUserPublicKey(userID)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"public_key": publicKey})
}
