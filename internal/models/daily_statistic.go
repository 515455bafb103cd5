package models

import "time"

// DailyStatistic is the aggregate for one UTC calendar date. It is created
// lazily on the first event of a day and updated by the batch processor on
// every successful commit. The persisted row is the sole source of truth;
// both cache tiers are purely derivative. Invariant: the row is always equal
// to what a full recomputation over the date's persisted events would yield.
type DailyStatistic struct {
	StatDate          string    `gorm:"primaryKey;size:10" json:"statDate"`
	TotalViews        int64     `gorm:"not null" json:"totalViews"`
	UniqueVisitors    int64     `gorm:"not null" json:"uniqueVisitors"`
	DesktopViews      int64     `gorm:"not null" json:"desktopViews"`
	MobileViews       int64     `gorm:"not null" json:"mobileViews"`
	TabletViews       int64     `gorm:"not null" json:"tabletViews"`
	BotViews          int64     `gorm:"not null" json:"botViews"`
	BounceRate        float64   `gorm:"not null" json:"bounceRate"`
	AvgSessionSeconds float64   `gorm:"not null" json:"avgSessionSeconds"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// TableName implements the gorm table naming convention.
func (DailyStatistic) TableName() string {
	return "daily_statistics"
}

// NewEmptyDailyStatistic returns the zero aggregate for a date.
func NewEmptyDailyStatistic(date string) *DailyStatistic {
	return &DailyStatistic{StatDate: date}
}

// DeviceViews returns the view count for one device class.
func (s *DailyStatistic) DeviceViews(class DeviceClass) int64 {
	switch class {
	case DeviceDesktop:
		return s.DesktopViews
	case DeviceMobile:
		return s.MobileViews
	case DeviceTablet:
		return s.TabletViews
	case DeviceBot:
		return s.BotViews
	}
	return 0
}

// DailyStatDelta carries the algebraic part of a batch's contribution to one
// date: plain sums that can be applied as an increment upsert. The
// session-derived fields (unique visitors, bounce rate, session length) are
// not algebraic across batches and are recomputed from persisted events
// instead.
type DailyStatDelta struct {
	StatDate     string
	Views        int64
	DesktopViews int64
	MobileViews  int64
	TabletViews  int64
	BotViews     int64
}

// Add accumulates one event into the delta.
func (d *DailyStatDelta) Add(event *AccessEvent) {
	d.Views++
	switch event.DeviceClass {
	case DeviceDesktop:
		d.DesktopViews++
	case DeviceMobile:
		d.MobileViews++
	case DeviceTablet:
		d.TabletViews++
	case DeviceBot:
		d.BotViews++
	}
}
