package model

import "time"

// Complaint statuses, title-cased as rendered by the web client.
const (
	ComplaintPending    = "Pending"
	ComplaintInProgress = "In Progress"
	ComplaintResolved   = "Resolved"
	ComplaintRejected   = "Rejected"
)

type (
	// A Complaint represents a hostel complaint record.
	Complaint struct {
		Base `msgpack:",inline" storm:"inline"`

		Title         string   `json:"title"                   msgpack:"title"`
		Description   string   `json:"description"             msgpack:"description"`
		Hostel        string   `json:"hostel"                  msgpack:"hostel"  storm:"index"`
		Images        []string `json:"images,omitempty"        msgpack:"images"`
		Status        string   `json:"status"                  msgpack:"status"  storm:"index"`
		CreatedBy     string   `json:"createdBy"               msgpack:"created_by" storm:"index"`
		AssignedStaff string   `json:"assignedStaff,omitempty" msgpack:"assigned_staff"`
		Remarks       []Remark `json:"remarks"                 msgpack:"remarks"`

		// Complainant feedback once resolved: "yes", "no" or empty.
		Satisfied string `json:"satisfied,omitempty" msgpack:"satisfied"`
	}

	// A Remark is a staff/user annotation appended to a complaint.
	Remark struct {
		ID      string    `json:"id"      msgpack:"id"`
		Text    string    `json:"text"    msgpack:"text"`
		AddedBy string    `json:"addedBy" msgpack:"added_by"`
		AddedAt time.Time `json:"addedAt" msgpack:"added_at"`
	}
)

// ValidComplaintStatus returns true if the given status is a known one.
func ValidComplaintStatus(status string) bool {
	switch status {
	case ComplaintPending, ComplaintInProgress, ComplaintResolved, ComplaintRejected:
		return true
	}
	return false
}
