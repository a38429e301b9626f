package service

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
	"github.com/prateekdahiya/campusconnect/internal/ccerror"
	"github.com/prateekdahiya/campusconnect/internal/database"
	"github.com/prateekdahiya/campusconnect/internal/model"
)

// A Bookings service drives the cycle lending workflow:
//
//	pending -> approved -> returned
//	pending -> rejected
//	pending | approved -> cancelled
//
// A user holds at most one open (pending or approved) booking at a time.
type Bookings struct {
	db database.Client
}

// NewBookings returns a new Bookings service.
func NewBookings(db database.Client) *Bookings {
	return &Bookings{db: db}
}

// Book requests a cycle for the given period. Times are accepted in any
// reasonable format (RFC3339, "2006-01-02 15:04", unix...).
func (s *Bookings) Book(user *model.User, cycleID, start, end string) (*model.Booking, error) {
	startTime, err := parseTime(start)
	if err != nil {
		return nil, ccerror.Validation("Invalid start time.")
	}
	endTime, err := parseTime(end)
	if err != nil {
		return nil, ccerror.Validation("Invalid end time.")
	}
	if !endTime.After(startTime) {
		return nil, ccerror.Validation("End time must be after start time.")
	}

	cycle, err := s.db.FindCycle(cycleID)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, ccerror.NotFound("Cycle not found.")
		}
		return nil, err
	}
	if cycle.Owner == user.ID {
		return nil, ccerror.Conflict("You cannot book your own cycle.")
	}
	if !cycle.Available {
		return nil, ccerror.Conflict("Cycle not available.")
	}

	if _, err := s.db.FindOpenBookingByUser(user.ID); err == nil {
		return nil, ccerror.Conflict("You already have an active booking.")
	} else if !s.db.IsNotFound(err) {
		return nil, err
	}

	booking := &model.Booking{
		CycleID:   cycle.ID,
		UserID:    user.ID,
		OwnerID:   cycle.Owner,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    model.BookingPending,
	}
	if err := s.db.Save(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Respond approves or rejects a pending booking. Only the cycle owner
// (or staff) may respond. Approval takes the cycle off the listing.
func (s *Bookings) Respond(user *model.User, bookingID string, accept bool) (*model.Booking, error) {
	booking, err := s.find(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != user.ID && !user.IsStaff() {
		return nil, ccerror.Forbidden("Only the cycle owner can respond to this request.")
	}
	if booking.Status != model.BookingPending {
		return nil, ccerror.Conflict("Booking is no longer pending.")
	}

	if accept {
		booking.Status = model.BookingApproved
		if err := s.setCycleAvailability(booking.CycleID, false); err != nil {
			return nil, err
		}
	} else {
		booking.Status = model.BookingRejected
	}

	if err := s.db.Save(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Return closes an approved booking and frees the cycle. Returning an
// already returned booking is a no-op.
func (s *Bookings) Return(user *model.User, bookingID string) (*model.Booking, error) {
	booking, err := s.find(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != user.ID && booking.OwnerID != user.ID && !user.IsStaff() {
		return nil, ccerror.Forbidden("Not your booking.")
	}
	if booking.Status == model.BookingReturned {
		return booking, nil
	}
	if booking.Status != model.BookingApproved {
		return nil, ccerror.Conflict("Booking is not active.")
	}

	now := time.Now().UTC()
	booking.ReturnTime = &now
	booking.Status = model.BookingReturned
	if err := s.db.Save(booking); err != nil {
		return nil, err
	}

	return booking, s.setCycleAvailability(booking.CycleID, true)
}

// Extend moves the expected return time of an approved booking.
func (s *Bookings) Extend(user *model.User, bookingID, newEnd string) (*model.Booking, error) {
	endTime, err := parseTime(newEnd)
	if err != nil {
		return nil, ccerror.Validation("Invalid end time.")
	}

	booking, err := s.find(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != user.ID {
		return nil, ccerror.Forbidden("Not your booking.")
	}
	if booking.Status != model.BookingApproved {
		return nil, ccerror.Conflict("Only active bookings can be extended.")
	}
	if !endTime.After(booking.EndTime) {
		return nil, ccerror.Validation("New end time must extend the booking.")
	}

	booking.EndTime = endTime
	if err := s.db.Save(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Cancel withdraws an open booking. Cancelling an approved booking
// frees the cycle.
func (s *Bookings) Cancel(user *model.User, bookingID string) (*model.Booking, error) {
	booking, err := s.find(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != user.ID {
		return nil, ccerror.Forbidden("Not your booking.")
	}
	if !booking.Open() {
		return nil, ccerror.Conflict("Booking can no longer be cancelled.")
	}

	approved := booking.Status == model.BookingApproved
	booking.Status = model.BookingCancelled
	if err := s.db.Save(booking); err != nil {
		return nil, err
	}

	if approved {
		return booking, s.setCycleAvailability(booking.CycleID, true)
	}
	return booking, nil
}

func (s *Bookings) find(id string) (*model.Booking, error) {
	booking, err := s.db.FindBooking(id)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, ccerror.NotFound("Booking not found.")
		}
		return nil, err
	}
	return booking, nil
}

func (s *Bookings) setCycleAvailability(cycleID string, available bool) error {
	cycle, err := s.db.FindCycle(cycleID)
	if err != nil {
		// The listing may have been deleted meanwhile.
		if s.db.IsNotFound(err) {
			return nil
		}
		return err
	}
	cycle.Available = available
	return errors.Wrap(s.db.Save(cycle), "could not update cycle availability")
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty time value")
	}
	return dateparse.ParseAny(value)
}
