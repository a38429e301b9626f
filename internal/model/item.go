package model

import "time"

const (
	// ItemTypeLost marks an item reported as lost by its owner.
	ItemTypeLost = "lost"
	// ItemTypeFound marks an item reported as found by someone else.
	ItemTypeFound = "found"
)

const (
	// ClaimPending is the initial status of a submitted claim.
	ClaimPending = "pending"
	// ClaimApproved is the terminal status of an accepted claim.
	ClaimApproved = "approved"
	// ClaimRejected is the terminal status of a refused claim.
	ClaimRejected = "rejected"
)

type (
	// An Item represents a lost-and-found report record.
	// Type is immutable after creation; Found is flipped when the item
	// is resolved (claim approval or explicit mark-found).
	Item struct {
		Base `msgpack:",inline" storm:"inline"`

		Title       string   `json:"title"            msgpack:"title"`
		Description string   `json:"description"      msgpack:"description"`
		Category    string   `json:"category"         msgpack:"category"    storm:"index"`
		Location    string   `json:"location"         msgpack:"location"`
		Type        string   `json:"type"             msgpack:"type"        storm:"index"`
		Found       bool     `json:"found"            msgpack:"found"       storm:"index"`
		ReportedBy  string   `json:"reportedBy"       msgpack:"reported_by" storm:"index"`
		Images      []string `json:"images,omitempty" msgpack:"images"`

		// An item holds at most one claim. A new claim replaces a
		// terminal one, never a pending one.
		Claim *Claim `json:"claim,omitempty" msgpack:"claim"`
	}

	// A Claim is a user's assertion of ownership over an item, subject
	// to staff approval. Status moves from pending to approved or
	// rejected and is never reversed.
	Claim struct {
		ID         string    `json:"id"                   msgpack:"id"`
		ItemID     string    `json:"itemId"               msgpack:"item_id"`
		UserID     string    `json:"userId"               msgpack:"user_id"`
		Proof      string    `json:"proof,omitempty"      msgpack:"proof"`
		Status     string    `json:"status"               msgpack:"status"`
		CreatedAt  time.Time `json:"createdAt"            msgpack:"created_at"`
		ApprovedBy string    `json:"approvedBy,omitempty" msgpack:"approved_by"`
	}
)

// Pending returns true when the claim exists and awaits adjudication.
func (c *Claim) Pending() bool {
	return c != nil && c.Status == ClaimPending
}
