package nats

import "time"

// Stream and subjects
const (
	StreamName = "CRM_EVENTS"

	// crm.<entity>.<action> เช่น crm.lead.created
	SubjectPrefix = "crm"
	SubjectAll    = SubjectPrefix + ".>"

	// event เก็บไว้ให้ consumer ภายนอก replay ได้
	StreamMaxAge = 7 * 24 * time.Hour
)
