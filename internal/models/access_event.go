package models

import "time"

// DateLayout is the calendar-date key format for daily aggregates (UTC).
const DateLayout = "2006-01-02"

// DateKey returns the UTC calendar-date key a timestamp belongs to.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// RawAccessEvent is one observed request as handed over by the surrounding
// request-handling code, before normalization.
type RawAccessEvent struct {
	ActorID        string
	RemoteAddr     string
	SessionID      string
	Path           string
	Method         string
	StatusCode     int
	ResponseTimeMS int64
	UserAgent      string
	Country        string
	OccurredAt     time.Time
}

// AccessEvent is one normalized record of a single inbound request. It is
// immutable once created: the collector owns it until batch handoff, the
// processor persists it, and it is never mutated thereafter. EventID doubles
// as the idempotency key for the durable insert.
type AccessEvent struct {
	EventID        string      `gorm:"primaryKey;size:26" json:"eventId"`
	ActorID        string      `gorm:"size:64" json:"actorId,omitempty"`
	RemoteAddr     string      `gorm:"size:45;not null" json:"remoteAddr"`
	SessionID      string      `gorm:"size:64;index" json:"sessionId,omitempty"`
	Path           string      `gorm:"size:500;not null" json:"path"`
	Method         string      `gorm:"size:8;not null" json:"method"`
	StatusCode     int         `gorm:"not null" json:"statusCode"`
	ResponseTimeMS int64       `gorm:"not null" json:"responseTimeMs"`
	UserAgent      string      `gorm:"size:1024" json:"userAgent,omitempty"`
	DeviceClass    DeviceClass `gorm:"size:8;not null" json:"deviceClass"`
	Browser        string      `gorm:"size:64" json:"browser,omitempty"`
	Country        string      `gorm:"size:2" json:"country,omitempty"`
	OccurredAt     time.Time   `gorm:"index;not null" json:"occurredAt"`
}

// TableName implements the gorm table naming convention.
func (AccessEvent) TableName() string {
	return "access_events"
}

// DateKey returns the daily aggregate key this event contributes to.
func (e *AccessEvent) DateKey() string {
	return DateKey(e.OccurredAt)
}
