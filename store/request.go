package store

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/helpmap/helpmap-api/consts"
	"github.com/helpmap/helpmap-api/schema"
)

var (
	ErrRequestNotFound      = fmt.Errorf("request not found")
	ErrInsufficientPoints   = fmt.Errorf("not enough points to create a request")
	ErrRequestNotOpen       = fmt.Errorf("request is not open")
	ErrRequestNotInProgress = fmt.Errorf("request is not in progress")
	ErrNoHelperAssigned     = fmt.Errorf("no helper assigned")
	ErrNotRequestAuthor     = fmt.Errorf("only the request author is allowed to do this")
	ErrNotRequestMember     = fmt.Errorf("only the request author or helper is allowed to do this")
)

// CreateRequestParams carries the author-provided fields of a new request
type CreateRequestParams struct {
	Title       string
	Description string
	Category    schema.HelpCategory
	Importance  schema.Importance
	Latitude    float64
	Longitude   float64
}

// RequestPatch carries the fields an author may edit while a request is
// still open. Nil fields are left untouched.
type RequestPatch struct {
	Title       *string
	Description *string
	Category    *schema.HelpCategory
	Importance  *schema.Importance
}

// NearbyFilter narrows a request listing. With a center the result is
// ordered by distance ascending, otherwise by recency descending.
type NearbyFilter struct {
	Center     *schema.Location
	Radius     int
	Category   schema.HelpCategory
	Importance schema.Importance
	Limit      int64
	Skip       int64
}

// RequestStore - the request lifecycle state machine. Every transition is
// committed in one transaction together with the balance mutation that
// justifies it.
type RequestStore interface {
	CreateRequest(authorID primitive.ObjectID, params CreateRequestParams) (*schema.HelpRequest, error)
	GetRequest(id primitive.ObjectID) (*schema.HelpRequest, error)
	FindNearbyRequests(filter NearbyFilter) ([]schema.HelpRequest, error)
	UpdateRequest(id, userID primitive.ObjectID, patch RequestPatch) (*schema.HelpRequest, error)
	ConfirmRequestHelper(id, confirmerID, helperID primitive.ObjectID) (*schema.HelpRequest, error)
	CompleteRequest(id, completerID primitive.ObjectID, success bool) (*schema.HelpRequest, error)
	AttachChatToRequest(requestID, chatID primitive.ObjectID) error
}

func (m *mongoDB) requests() *mongo.Collection {
	return m.client.Database(m.database).Collection(schema.RequestCollection)
}

func (m *mongoDB) users() *mongo.Collection {
	return m.client.Database(m.database).Collection(schema.UserCollection)
}

// CreateRequest debits one point from the author and inserts a new OPEN
// request. Both writes commit together: a failed debit creates no request
// and a failed insert restores the balance.
func (m *mongoDB) CreateRequest(authorID primitive.ObjectID, params CreateRequestParams) (*schema.HelpRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	importance := params.Importance
	if importance == "" {
		importance = schema.ImportanceMedium
	}

	now := time.Now().UTC()
	request := &schema.HelpRequest{
		ID:          primitive.NewObjectID(),
		Author:      authorID,
		Title:       params.Title,
		Description: params.Description,
		Category:    params.Category,
		Importance:  importance,
		CostPoints:  consts.REQUEST_COST_POINTS,
		Status:      schema.RequestOpen,
		Location:    schema.NewPoint(params.Longitude, params.Latitude),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := m.withTransaction(ctx, func(sc mongo.SessionContext) error {
		// the balance filter makes an author with an empty balance match
		// nothing, so the debit and its precondition are one atomic step
		result, err := m.users().UpdateOne(sc,
			bson.M{"_id": authorID, "points": bson.M{"$gte": request.CostPoints}},
			bson.M{"$inc": bson.M{"points": -request.CostPoints}},
		)
		if err != nil {
			return err
		}
		if result.MatchedCount == 0 {
			// separate a missing author from an empty balance
			if err := m.users().FindOne(sc, bson.M{"_id": authorID}).Err(); err != nil {
				if err == mongo.ErrNoDocuments {
					return ErrUserNotFound
				}
				return err
			}
			return ErrInsufficientPoints
		}

		_, err = m.requests().InsertOne(sc, request)
		return err
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

// GetRequest returns a request by id
func (m *mongoDB) GetRequest(id primitive.ObjectID) (*schema.HelpRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var request schema.HelpRequest
	if err := m.requests().FindOne(ctx, bson.M{"_id": id}).Decode(&request); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	return &request, nil
}

// FindNearbyRequests lists OPEN requests. With a center point it runs a
// $geoNear aggregation and annotates each request with distance_meters.
func (m *mongoDB) FindNearbyRequests(filter NearbyFilter) ([]schema.HelpRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	match := bson.M{"status": schema.RequestOpen}
	if filter.Category != "" {
		match["category"] = filter.Category
	}
	if filter.Importance != "" {
		match["importance"] = filter.Importance
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = consts.DEFAULT_PAGE_LIMIT
	}
	skip := filter.Skip
	if skip < 0 {
		skip = 0
	}

	requests := make([]schema.HelpRequest, 0)

	if filter.Center != nil {
		radius := filter.Radius
		if radius <= 0 {
			radius = consts.DEFAULT_SEARCH_RADIUS
		}

		pipeline := []bson.M{
			aggStageGeoProximity(radius, *filter.Center, match),
			{"$sort": bson.M{"distance_meters": 1}},
			{"$skip": skip},
			{"$limit": limit},
		}

		cur, err := m.requests().Aggregate(ctx, pipeline)
		if err != nil {
			log.WithField("prefix", mongoLogPrefix).Errorf("query nearby requests with error: %s", err)
			return nil, err
		}
		if err := cur.All(ctx, &requests); err != nil {
			return nil, err
		}
		return requests, nil
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := m.requests().Find(ctx, match, opts)
	if err != nil {
		log.WithField("prefix", mongoLogPrefix).Errorf("query open requests with error: %s", err)
		return nil, err
	}
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}

	return requests, nil
}

// UpdateRequest merges the permitted field edits of the author while the
// request is still OPEN
func (m *mongoDB) UpdateRequest(id, userID primitive.ObjectID, patch RequestPatch) (*schema.HelpRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	current, err := m.GetRequest(id)
	if err != nil {
		return nil, err
	}
	if current.Author != userID {
		return nil, ErrNotRequestAuthor
	}
	if current.Status != schema.RequestOpen {
		return nil, ErrRequestNotOpen
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Importance != nil {
		set["importance"] = *patch.Importance
	}

	var updated schema.HelpRequest
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = m.requests().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "author": userID, "status": schema.RequestOpen},
		bson.M{"$set": set},
		opts,
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// the request left OPEN between the read and the write
			return nil, ErrRequestNotOpen
		}
		return nil, err
	}

	return &updated, nil
}

// ConfirmRequestHelper binds a helper to an OPEN request and moves it to
// IN_PROGRESS. The status filter on the write makes the losing side of two
// concurrent confirmations match nothing instead of double-binding a
// helper; the transaction keeps the precondition read and the write on one
// snapshot.
func (m *mongoDB) ConfirmRequestHelper(id, confirmerID, helperID primitive.ObjectID) (*schema.HelpRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var updated schema.HelpRequest
	err := m.withTransaction(ctx, func(sc mongo.SessionContext) error {
		var current schema.HelpRequest
		if err := m.requests().FindOne(sc, bson.M{"_id": id}).Decode(&current); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrRequestNotFound
			}
			return err
		}
		if current.Author != confirmerID {
			return ErrNotRequestAuthor
		}
		if !current.Status.CanTransition(schema.RequestInProgress) {
			return ErrRequestNotOpen
		}

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err := m.requests().FindOneAndUpdate(sc,
			bson.M{"_id": id, "status": schema.RequestOpen},
			bson.M{"$set": bson.M{
				"status":     schema.RequestInProgress,
				"helper":     helperID,
				"updated_at": time.Now().UTC(),
			}},
			opts,
		).Decode(&updated)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrRequestNotOpen
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// CompleteRequest settles an IN_PROGRESS request. On success the bound
// helper is credited one point in the same transaction that writes the
// terminal status. Only the author or the helper may complete.
func (m *mongoDB) CompleteRequest(id, completerID primitive.ObjectID, success bool) (*schema.HelpRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var updated schema.HelpRequest
	err := m.withTransaction(ctx, func(sc mongo.SessionContext) error {
		var current schema.HelpRequest
		if err := m.requests().FindOne(sc, bson.M{"_id": id}).Decode(&current); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrRequestNotFound
			}
			return err
		}

		target := schema.RequestCompletedFailed
		if success {
			target = schema.RequestCompletedSuccess
		}
		if !current.Status.CanTransition(target) {
			return ErrRequestNotInProgress
		}
		if current.Helper == nil {
			return ErrNoHelperAssigned
		}
		if completerID != current.Author && completerID != *current.Helper {
			return ErrNotRequestMember
		}

		if success {
			result, err := m.users().UpdateOne(sc,
				bson.M{"_id": *current.Helper},
				bson.M{"$inc": bson.M{"points": current.CostPoints}},
			)
			if err != nil {
				return err
			}
			if result.MatchedCount == 0 {
				return ErrUserNotFound
			}
		}

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err := m.requests().FindOneAndUpdate(sc,
			bson.M{"_id": id, "status": schema.RequestInProgress},
			bson.M{"$set": bson.M{
				"status":     target,
				"updated_at": time.Now().UTC(),
			}},
			opts,
		).Decode(&updated)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrRequestNotInProgress
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// AttachChatToRequest writes the chat back-link onto a request. Last write
// wins; the normal flow only ever calls this once per request.
func (m *mongoDB) AttachChatToRequest(requestID, chatID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	result, err := m.requests().UpdateOne(ctx,
		bson.M{"_id": requestID},
		bson.M{"$set": bson.M{
			"chat":       chatID,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// aggStageGeoProximity orders matching documents by spherical distance
// from location and annotates each with distance_meters
func aggStageGeoProximity(maxDistance int, location schema.Location, match bson.M) bson.M {
	return bson.M{
		"$geoNear": bson.M{
			"near": bson.M{
				"type":        "Point",
				"coordinates": bson.A{location.Longitude, location.Latitude},
			},
			"distanceField": "distance_meters",
			"maxDistance":   maxDistance,
			"spherical":     true,
			"query":         match,
		},
	}
}
