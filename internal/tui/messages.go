package tui

import "time"

// Snapshot is one rendered state of a watched query.
type Snapshot struct {
	Body      string
	Err       error
	Fetching  bool
	UpdatedAt time.Time
}

// MsgSnapshot carries a new snapshot.
type MsgSnapshot struct {
	Snapshot Snapshot
}

// MsgEnded is sent when the snapshot stream has ended.
type MsgEnded struct{}

// msgRefreshed is sent when a manual refresh returns.
type msgRefreshed struct{}
