package service

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/prateekdahiya/campusconnect/internal/ccerror"
	"github.com/prateekdahiya/campusconnect/internal/database"
	"github.com/prateekdahiya/campusconnect/internal/model"
)

// A Claims service drives the claim lifecycle of lost-and-found items:
//
//	no claim -> pending -> approved | rejected
//
// Approved and rejected are terminal for a claim instance; the owning
// item accepts a new claim again once the previous one is terminal.
type Claims struct {
	db database.Client
}

// NewClaims returns a new Claims service.
func NewClaims(db database.Client) *Claims {
	return &Claims{db: db}
}

// Submit attaches a new pending claim to the item. It fails with a
// conflict while another claim is pending; a terminal claim is replaced.
func (s *Claims) Submit(itemID, userID, proof string) (*model.Claim, error) {
	var claim *model.Claim

	_, err := s.db.UpdateItem(itemID, func(item *model.Item) error {
		if item.Claim.Pending() {
			return ccerror.Conflict("A claim is already pending for this item.")
		}

		claim = &model.Claim{
			ID:        uuid.Must(uuid.NewV4()).String(),
			ItemID:    item.ID,
			UserID:    userID,
			Proof:     proof,
			Status:    model.ClaimPending,
			CreatedAt: time.Now().UTC(),
		}
		item.Claim = claim
		return nil
	})
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, ccerror.NotFound("Item not found.")
		}
		return nil, err
	}

	return claim, nil
}

// Adjudicate terminalizes a pending claim. The claim reference must
// match the item's current claim and the claim must still be pending;
// the update runs transactionally so a concurrent adjudication acts as
// a compare-and-swap and never re-transitions a terminal claim.
// Approval records the adjudicator and marks the item found.
func (s *Claims) Adjudicate(itemID, claimID string, approve bool, adjudicatorID string) (*model.Claim, error) {
	var claim *model.Claim

	_, err := s.db.UpdateItem(itemID, func(item *model.Item) error {
		if item.Claim == nil || item.Claim.ID != claimID {
			return ccerror.Conflict("Claim reference does not match.")
		}
		if item.Claim.Status != model.ClaimPending {
			return ccerror.Conflict("Claim is no longer pending.")
		}

		if approve {
			item.Claim.Status = model.ClaimApproved
			item.Claim.ApprovedBy = adjudicatorID
			item.Found = true
		} else {
			item.Claim.Status = model.ClaimRejected
		}
		claim = item.Claim
		return nil
	})
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, ccerror.NotFound("Item not found.")
		}
		return nil, err
	}

	return claim, nil
}
