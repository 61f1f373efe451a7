package service

import "time"

const (
	// Time windows
	HistoryDays      = 180
	ChartDaysDefault = 90
	UpcomingDays     = 14
	ZoneWindowDays   = 28

	// Pagination for remote sync
	SyncOverlapDays = 7

	// Day length used for date arithmetic on UTC-truncated dates
	day = 24 * time.Hour
)
