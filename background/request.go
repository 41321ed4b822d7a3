package background

import (
	log "github.com/sirupsen/logrus"

	"github.com/helpmap/helpmap-api/consts"
	"github.com/helpmap/helpmap-api/schema"
)

const (
	BROADCAST_NEW_REQUEST   = "1e3f82d9-9a44-4a6b-8f06-5a4c2f4f1d27"
	NOTIFY_REQUEST_ACCEPTED = "c7a9d6be-02d1-47e0-9b3a-63f0f4f6b8e1"
)

// BroadcastNewRequest is a background job to send notifications to users
// near a freshly created help request
func (m *BackgroundManager) BroadcastNewRequest(requestID string, latitude, longitude float64) error {
	userIDs, err := m.store.NearbyUsers(consts.BROADCAST_DISTANCE_RANGE, schema.Location{
		Latitude:  latitude,
		Longitude: longitude,
	})
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, id.Hex())
	}

	log.WithField("prefix", "background").Infof("broadcast request %s to %d nearby users", requestID, len(ids))

	return m.notifyUsersByTemplate(ids, BROADCAST_NEW_REQUEST, map[string]interface{}{
		"notification_type": "BROADCAST_NEW_REQUEST",
		"request_id":        requestID,
	})
}

// NotifyRequestAccepted is a background job to tell a helper their offer
// was confirmed by the request author
func (m *BackgroundManager) NotifyRequestAccepted(requestID string, helperID string) error {
	return m.notifyUsersByTemplate([]string{helperID}, NOTIFY_REQUEST_ACCEPTED, map[string]interface{}{
		"notification_type": "NOTIFY_REQUEST_ACCEPTED",
		"request_id":        requestID,
	})
}
