package model

import "time"

// Booking statuses.
const (
	BookingPending   = "pending"
	BookingApproved  = "approved"
	BookingRejected  = "rejected"
	BookingReturned  = "returned"
	BookingCancelled = "cancelled"
)

type (
	// A Cycle represents a bicycle listed for lending.
	Cycle struct {
		Base `msgpack:",inline" storm:"inline"`

		Name       string   `json:"name"             msgpack:"name"`
		Model      string   `json:"model,omitempty"  msgpack:"model"`
		Hostel     string   `json:"hostel"           msgpack:"hostel" storm:"index"`
		HourlyRate float64  `json:"hourlyRate"       msgpack:"hourly_rate"`
		DailyRate  float64  `json:"dailyRate"        msgpack:"daily_rate"`
		Images     []string `json:"images,omitempty" msgpack:"images"`
		Owner      string   `json:"owner"            msgpack:"owner"  storm:"index"`
		Available  bool     `json:"available"        msgpack:"available" storm:"index"`
	}

	// A Booking represents a lending request for a cycle and its
	// lifecycle: pending -> approved -> returned, or pending/approved ->
	// cancelled, or pending -> rejected.
	Booking struct {
		Base `msgpack:",inline" storm:"inline"`

		CycleID    string     `json:"cycleId"              msgpack:"cycle_id" storm:"index"`
		UserID     string     `json:"userId"               msgpack:"user_id"  storm:"index"`
		OwnerID    string     `json:"ownerId"              msgpack:"owner_id" storm:"index"`
		StartTime  time.Time  `json:"startTime"            msgpack:"start_time"`
		EndTime    time.Time  `json:"endTime"              msgpack:"end_time"`
		ReturnTime *time.Time `json:"returnTime,omitempty" msgpack:"return_time"`
		Status     string     `json:"status"               msgpack:"status"   storm:"index"`
	}
)

// Open returns true while the booking still ties up the cycle.
func (b *Booking) Open() bool {
	return b.Status == BookingPending || b.Status == BookingApproved
}
