package service

import (
	"time"

	"ratehistory/internal/rates"
)

// SeriesQuery selects a date range and currencies. Zero dates mean "use the default".
type SeriesQuery struct {
	From       time.Time
	To         time.Time
	Currencies []string
}

// SnapshotQuery selects the rates in force on Date.
type SnapshotQuery struct {
	Date       time.Time
	Currencies []string
}

// SeriesResult is a series together with the resolved bounds and the axis
// tick spacing in days.
type SeriesResult struct {
	From     time.Time
	To       time.Time
	TickUnit int
	Series   rates.Series
}

// SnapshotResult pairs the requested date with the sheet that answered it.
type SnapshotResult struct {
	Requested time.Time
	Snapshot  rates.Snapshot
}

// RefreshResult summarises one refresh. StoredLast is the newest sheet date
// in the repository before the refresh, zero when unknown.
type RefreshResult struct {
	Source     string
	Sheets     int
	Persisted  int
	First      time.Time
	Last       time.Time
	StoredLast time.Time
	Duration   time.Duration
}

// StatusResult describes the served document. Loaded is false before the
// first successful refresh or bootstrap.
type StatusResult struct {
	Loaded   bool
	Source   string
	Sheets   int
	First    time.Time
	Last     time.Time
	LoadedAt time.Time
}
