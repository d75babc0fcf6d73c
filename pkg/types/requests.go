package types

type CreateIncidentRequest struct {
	Title          string   `json:"title" binding:"required"`
	Severity       string   `json:"severity" binding:"required"`
	AffectedModes  []string `json:"affected_modes"`
	AffectedRoutes []string `json:"affected_routes"`
	PublicMessage  string   `json:"public_message" binding:"required"`
}

type PublishIncidentRequest struct {
	SendNotifications bool   `json:"send_notifications"`
	OverrideMessage   string `json:"override_message,omitempty"`
}

type PublishIncidentResponse struct {
	NotificationsSent int    `json:"notifications_sent"`
	MessageID         string `json:"message_id,omitempty"`
}

type QueueMessageRequest struct {
	ChannelTypes []string `json:"channel_types,omitempty"`
}

type CreateSubscriberRequest struct {
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	PushToken  string   `json:"push_token"`
	Routes     []string `json:"routes"`
	Modes      []string `json:"modes"`
	Severities []string `json:"severities"`
	Channels   []string `json:"channels"`
}

type CreateChannelRequest struct {
	Name    string                 `json:"name" binding:"required"`
	Type    string                 `json:"type" binding:"required"`
	Enabled *bool                  `json:"enabled,omitempty"`
	Config  map[string]interface{} `json:"config"`
}

type EngagementRequest struct {
	Status string `json:"status" binding:"required"`
}
