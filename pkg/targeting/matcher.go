package targeting

import (
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
)

// Match returns the subscribers that should be notified about an
// incident. A subscriber qualifies when they are active, the incident
// severity is in their severity preference (empty preference = any), and
// their route/mode preferences intersect the incident's affected
// routes/modes.
//
// The route and mode rules only apply when BOTH sides are non-empty.
// A subscriber with a route preference is still matched by an incident
// that declares no routes; the policy favors over-notification over
// silently dropping someone. This default-allow behavior is intentional
// and covered by tests, do not tighten it to a strict intersection.
func Match(incident *models.Incident, subscribers []models.Subscriber) []models.Subscriber {
	eligible := []models.Subscriber{}
	for _, sub := range subscribers {
		if Eligible(incident, &sub) {
			eligible = append(eligible, sub)
		}
	}
	return eligible
}

func Eligible(incident *models.Incident, sub *models.Subscriber) bool {
	if sub.Status != models.SubscriberActive {
		return false
	}
	if len(sub.Severities) > 0 && !contains(sub.Severities, incident.Severity) {
		return false
	}
	if len(sub.Routes) > 0 && len(incident.AffectedRoutes) > 0 &&
		!intersects(sub.Routes, incident.AffectedRoutes) {
		return false
	}
	if len(sub.Modes) > 0 && len(incident.AffectedModes) > 0 &&
		!intersects(sub.Modes, incident.AffectedModes) {
		return false
	}
	return true
}

// WantsChannel reports whether a subscriber's channel preference allows
// the given channel type. An empty preference set allows every channel.
func WantsChannel(sub *models.Subscriber, channelType string) bool {
	if len(sub.Channels) == 0 {
		return true
	}
	return contains(sub.Channels, channelType)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
