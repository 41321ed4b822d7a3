package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RequestCollection = "requests"
)

type RequestStatus string

const (
	RequestOpen             RequestStatus = "OPEN"
	RequestInProgress       RequestStatus = "IN_PROGRESS"
	RequestCompletedSuccess RequestStatus = "COMPLETED_SUCCESS"
	RequestCompletedFailed  RequestStatus = "COMPLETED_FAILED"
	RequestCancelled        RequestStatus = "CANCELLED"
)

// requestTransitions is the authoritative lifecycle graph of a help
// request. A status missing from the map is terminal.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestOpen:       {RequestInProgress, RequestCancelled},
	RequestInProgress: {RequestCompletedSuccess, RequestCompletedFailed},
}

// CanTransition reports whether the lifecycle allows moving from s to the
// target status. Every store operation that writes a status goes through
// this table instead of comparing status strings in place.
func (s RequestStatus) CanTransition(to RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is permitted from s
func (s RequestStatus) Terminal() bool {
	return len(requestTransitions[s]) == 0
}

type HelpCategory string

const (
	CategoryFood      HelpCategory = "FOOD"
	CategoryMedical   HelpCategory = "MEDICAL"
	CategoryTransport HelpCategory = "TRANSPORT"
	CategoryMaterial  HelpCategory = "MATERIAL"
	CategoryOther     HelpCategory = "OTHER"
)

func (c HelpCategory) Valid() bool {
	switch c {
	case CategoryFood, CategoryMedical, CategoryTransport, CategoryMaterial, CategoryOther:
		return true
	}
	return false
}

type Importance string

const (
	ImportanceLow    Importance = "LOW"
	ImportanceMedium Importance = "MEDIUM"
	ImportanceHigh   Importance = "HIGH"
)

func (i Importance) Valid() bool {
	switch i {
	case ImportanceLow, ImportanceMedium, ImportanceHigh:
		return true
	}
	return false
}

// HelpRequest is a posted need for help. The author is fixed at creation;
// the helper is bound exactly once when the author confirms an offer.
// DistanceMeters is only populated by proximity queries.
type HelpRequest struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Author         primitive.ObjectID  `bson:"author" json:"author"`
	Title          string              `bson:"title" json:"title"`
	Description    string              `bson:"description,omitempty" json:"description,omitempty"`
	Category       HelpCategory        `bson:"category" json:"category"`
	Importance     Importance          `bson:"importance" json:"importance"`
	CostPoints     int                 `bson:"cost_points" json:"cost_points"`
	Status         RequestStatus       `bson:"status" json:"status"`
	Helper         *primitive.ObjectID `bson:"helper,omitempty" json:"helper,omitempty"`
	Chat           *primitive.ObjectID `bson:"chat,omitempty" json:"chat,omitempty"`
	Location       *GeoJSON            `bson:"location" json:"location"`
	DistanceMeters *float64            `bson:"distance_meters,omitempty" json:"distance_meters,omitempty"`
	CreatedAt      time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `bson:"updated_at" json:"updated_at"`
}
