package services

import "errors"

var (
	ErrIncidentNotFound   = errors.New("incident not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrDeliveryNotFound   = errors.New("delivery not found")
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrChannelNotFound    = errors.New("channel not found")

	ErrNotDraft       = errors.New("only draft incidents can be published")
	ErrNotActive      = errors.New("only active incidents can be resolved")
	ErrBadStatus      = errors.New("invalid status filter")
	ErrNotFailed      = errors.New("only failed deliveries can be retried")
	ErrNoContact      = errors.New("subscriber needs at least one contact handle")
	ErrBadSeverity    = errors.New("invalid severity")
	ErrBadChannelType = errors.New("invalid channel type")
	ErrBadEngagement  = errors.New("invalid engagement status")
)
