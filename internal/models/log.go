// Package models defines the Log record shared by the client, server and
// sweeper layers, together with the liveness predicates every read path and
// the sweep agree on.
package models

import "time"

// LogType is an informational content kind. It never affects lifecycle.
type LogType int

const (
	LogTypeText LogType = iota
	LogTypeMarkdown
	LogTypeCode
)

func (t LogType) String() string {
	switch t {
	case LogTypeMarkdown:
		return "markdown"
	case LogTypeCode:
		return "code"
	default:
		return "text"
	}
}

// Log is the unit of persistence: a published text document.
//
// ID is assigned by the authoritative store on first write and is empty for
// not-yet-persisted instances. CreatedDate is set at first write and never
// changes. A nil ExpiryDate means the record never expires. IsExpired is a
// terminal marker: once true the record is no longer served, independent of
// whether ExpiryDate has actually elapsed. IsEncrypted is opaque to the
// persistence core and passed through unchanged.
type Log struct {
	ID          string     `json:"id,omitempty"`
	Data        string     `json:"data"`
	Title       string     `json:"title,omitempty"`
	CreatedDate time.Time  `json:"createdDate"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
	Type        LogType    `json:"type"`
	IsExpired   bool       `json:"isExpired"`
	IsEncrypted bool       `json:"isEncrypted,omitempty"`
}

// Elapsed reports whether the record's expiry timestamp is present and has
// passed. This is the single predicate the sweep acts on.
func (l *Log) Elapsed(now time.Time) bool {
	return l.ExpiryDate != nil && l.ExpiryDate.Before(now)
}

// IsLive reports whether the record may be served: the expired marker is not
// set and the expiry timestamp, if any, has not passed. Every read path
// (remote and mirror) evaluates this at read time, so a logically expired
// record is invisible even before any sweep has run.
func (l *Log) IsLive(now time.Time) bool {
	return !l.IsExpired && !l.Elapsed(now)
}

// Patch describes a partial-field merge for a point update. Nil fields are
// left untouched. CreatedDate is deliberately absent: it is immutable after
// creation.
type Patch struct {
	Data        *string    `json:"data,omitempty"`
	Title       *string    `json:"title,omitempty"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
	Type        *LogType   `json:"type,omitempty"`
	IsExpired   *bool      `json:"isExpired,omitempty"`
	IsEncrypted *bool      `json:"isEncrypted,omitempty"`
}

// Apply merges the patch into l.
func (p *Patch) Apply(l *Log) {
	if p.Data != nil {
		l.Data = *p.Data
	}
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.ExpiryDate != nil {
		l.ExpiryDate = p.ExpiryDate
	}
	if p.Type != nil {
		l.Type = *p.Type
	}
	if p.IsExpired != nil {
		l.IsExpired = *p.IsExpired
	}
	if p.IsEncrypted != nil {
		l.IsEncrypted = *p.IsEncrypted
	}
}
