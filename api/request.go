package api

import (
	"net/http"
	"strconv"

	"github.com/RichardKnop/machinery/v1/tasks"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/helpmap/helpmap-api/schema"
	"github.com/helpmap/helpmap-api/store"
)

// createRequest is the API for posting a new help request. The point
// debit happens inside the store transaction; a failed creation leaves
// the balance untouched.
func (s *Server) createRequest(c *gin.Context) {
	authorID := currentUserID(c)

	var params struct {
		Title       string   `json:"title" binding:"required,min=3"`
		Description string   `json:"description"`
		Category    string   `json:"category" binding:"required"`
		Importance  string   `json:"importance"`
		Latitude    *float64 `json:"lat" binding:"required,gte=-90,lte=90"`
		Longitude   *float64 `json:"lng" binding:"required,gte=-180,lte=180"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	category := schema.HelpCategory(params.Category)
	if !category.Valid() {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}
	importance := schema.Importance(params.Importance)
	if params.Importance != "" && !importance.Valid() {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	request, err := s.store.CreateRequest(authorID, store.CreateRequestParams{
		Title:       params.Title,
		Description: params.Description,
		Category:    category,
		Importance:  importance,
		Latitude:    *params.Latitude,
		Longitude:   *params.Longitude,
	})
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	s.enqueueTask("broadcast_new_request", []tasks.Arg{
		{Type: "string", Value: request.ID.Hex()},
		{Type: "float64", Value: *params.Latitude},
		{Type: "float64", Value: *params.Longitude},
	})

	c.JSON(http.StatusOK, gin.H{"result": request})
}

// listRequests is the API for browsing open requests. With lat/lng it
// returns requests within the radius ordered by distance; without, the
// most recent open requests.
func (s *Server) listRequests(c *gin.Context) {
	var filter store.NearbyFilter

	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
		filter.Center = &schema.Location{Latitude: lat, Longitude: lng}
	}

	filter.Radius, _ = strconv.Atoi(c.Query("radius"))
	filter.Limit, _ = strconv.ParseInt(c.Query("limit"), 10, 64)
	filter.Skip, _ = strconv.ParseInt(c.Query("skip"), 10, 64)

	if category := c.Query("category"); category != "" {
		filter.Category = schema.HelpCategory(category)
		if !filter.Category.Valid() {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
	}
	if importance := c.Query("importance"); importance != "" {
		filter.Importance = schema.Importance(importance)
		if !filter.Importance.Valid() {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
	}

	requests, err := s.store.FindNearbyRequests(filter)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": requests})
}

// getRequest is the API for fetching a single request
func (s *Server) getRequest(c *gin.Context) {
	requestID, err := primitive.ObjectIDFromHex(c.Param("requestID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	request, err := s.store.GetRequest(requestID)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": request})
}

// updateRequest is the API for the author to edit an OPEN request
func (s *Server) updateRequest(c *gin.Context) {
	requestID, err := primitive.ObjectIDFromHex(c.Param("requestID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	var params struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Importance  *string `json:"importance"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	patch := store.RequestPatch{
		Title:       params.Title,
		Description: params.Description,
	}
	if params.Category != nil {
		category := schema.HelpCategory(*params.Category)
		if !category.Valid() {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
		patch.Category = &category
	}
	if params.Importance != nil {
		importance := schema.Importance(*params.Importance)
		if !importance.Valid() {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
		patch.Importance = &importance
	}

	request, err := s.store.UpdateRequest(requestID, currentUserID(c), patch)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": request})
}

// confirmRequestHelper is the API for the author to bind a helper
// directly, moving the request to IN_PROGRESS
func (s *Server) confirmRequestHelper(c *gin.Context) {
	requestID, err := primitive.ObjectIDFromHex(c.Param("requestID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	var params struct {
		HelperID string `json:"helperId" binding:"required"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	helperID, err := primitive.ObjectIDFromHex(params.HelperID)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	request, err := s.store.ConfirmRequestHelper(requestID, currentUserID(c), helperID)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	s.enqueueTask("notify_request_accepted", []tasks.Arg{
		{Type: "string", Value: request.ID.Hex()},
		{Type: "string", Value: helperID.Hex()},
	})

	c.JSON(http.StatusOK, gin.H{"result": request})
}

// completeRequest is the API for the author or helper to settle an
// IN_PROGRESS request; success credits the helper one point
func (s *Server) completeRequest(c *gin.Context) {
	requestID, err := primitive.ObjectIDFromHex(c.Param("requestID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	var params struct {
		Success *bool `json:"success" binding:"required"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	request, err := s.store.CompleteRequest(requestID, currentUserID(c), *params.Success)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": request})
}

// enqueueTask submits a background job; delivery is best effort and a
// broker failure never fails the originating API call
func (s *Server) enqueueTask(name string, args []tasks.Arg) {
	if s.background == nil {
		return
	}
	if _, err := s.background.SendTask(&tasks.Signature{
		Name: name,
		Args: args,
	}); err != nil {
		log.WithError(err).WithField("task", name).Error("enqueue background task")
	}
}
