package background

import (
	"context"

	"github.com/spf13/viper"

	"github.com/helpmap/helpmap-api/external/onesignal"
)

// notifyUsersByTemplate will consolidate user ids and submit notification requests
func (m *BackgroundManager) notifyUsersByTemplate(userIDs []string, templateID string, data map[string]interface{}) error {
	filters := []map[string]string{}
	for i, u := range userIDs {
		if i%100 == 0 {
			filters = append(filters, map[string]string{
				"field":    "tag",
				"key":      "user_id",
				"relation": "=",
				"value":    u,
			})
		} else {
			filters = append(filters,
				map[string]string{"operator": "OR"},
				map[string]string{
					"field":    "tag",
					"key":      "user_id",
					"relation": "=",
					"value":    u,
				})
		}
		if i%100 == 99 {
			req := &onesignal.NotificationRequest{
				AppID:          viper.GetString("onesignal.appid"),
				TemplateID:     templateID,
				Filters:        filters,
				Data:           data,
				LocalChannelID: "important_alert",
			}
			if err := m.onesignal.SendNotification(context.Background(), req); err != nil {
				return err
			}
			filters = []map[string]string{}
		}
	}

	if len(filters) == 0 {
		return nil
	}

	// send rest of notification
	req := &onesignal.NotificationRequest{
		AppID:          viper.GetString("onesignal.appid"),
		TemplateID:     templateID,
		Filters:        filters,
		Data:           data,
		LocalChannelID: "important_alert",
	}
	return m.onesignal.SendNotification(context.Background(), req)
}
