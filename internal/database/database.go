package database

import (
	"github.com/prateekdahiya/campusconnect/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool

		UserInteraction
		ItemInteraction
		ComplaintInteraction
		CycleInteraction
		BookingInteraction
		BookInteraction
	}

	// An UserInteraction defines all the methods used to interact with a user record.
	UserInteraction interface {
		// FindUser returns the user for the given id (UUID).
		FindUser(id string) (*model.User, error)
		// FindUserByMail returns the user for the given email.
		FindUserByMail(email string) (*model.User, error)
	}

	// An ItemInteraction defines all the methods used to interact with
	// lost-and-found item records.
	ItemInteraction interface {
		// FindItem returns the item for the given id (UUID).
		FindItem(id string) (*model.Item, error)
		// FindItems returns the items matching the given filter,
		// newest first (the pool order).
		FindItems(filter ItemFilter) ([]*model.Item, error)
		// UpdateItem applies fn to the item inside a single write
		// transaction. Concurrent updates on the same item serialize
		// here, so a status check inside fn acts as a compare-and-swap.
		UpdateItem(id string, fn func(*model.Item) error) (*model.Item, error)
	}

	// A ComplaintInteraction defines all the methods used to interact with a complaint record.
	ComplaintInteraction interface {
		// FindComplaint returns the complaint for the given id (UUID).
		FindComplaint(id string) (*model.Complaint, error)
		// FindComplaints returns all complaints, newest first.
		// hostel filters by hostel when not empty.
		FindComplaints(hostel string) ([]*model.Complaint, error)
	}

	// A CycleInteraction defines all the methods used to interact with a cycle record.
	CycleInteraction interface {
		// FindCycle returns the cycle for the given id (UUID).
		FindCycle(id string) (*model.Cycle, error)
		// FindAvailableCycles returns available cycles, optionally
		// restricted to a hostel.
		FindAvailableCycles(hostel string) ([]*model.Cycle, error)
		// FindCyclesByOwner returns all cycles listed by the given user.
		FindCyclesByOwner(ownerID string) ([]*model.Cycle, error)
	}

	// A BookingInteraction defines all the methods used to interact with a booking record.
	BookingInteraction interface {
		// FindBooking returns the booking for the given id (UUID).
		FindBooking(id string) (*model.Booking, error)
		// FindBookingsByUser returns all bookings made by the given user.
		FindBookingsByUser(userID string) ([]*model.Booking, error)
		// FindPendingBookingsByOwner returns the pending requests
		// addressed to the given cycle owner.
		FindPendingBookingsByOwner(ownerID string) ([]*model.Booking, error)
		// FindOpenBookingByUser returns the pending or approved booking
		// of the given user, if any.
		FindOpenBookingByUser(userID string) (*model.Booking, error)
	}

	// A BookInteraction defines all the methods used to interact with a book record.
	BookInteraction interface {
		// FindBook returns the book for the given id (UUID).
		FindBook(id string) (*model.Book, error)
		// FindBooks returns the books matching the given filter, newest first.
		FindBooks(filter BookFilter) ([]*model.Book, error)
		// FindBooksByBorrower returns the books currently borrowed by the given user.
		FindBooksByBorrower(userID string) ([]*model.Book, error)
	}

	// An ItemFilter narrows down FindItems results.
	ItemFilter struct {
		Type     string // lost or found, empty for both
		Category string
		Query    string // case-insensitive substring of title or description
		Found    *bool  // resolved state, nil for both
		Oldest   bool   // reverse the newest-first pool order
	}

	// A BookFilter narrows down FindBooks results.
	BookFilter struct {
		Title     string // case-insensitive substring
		Author    string // case-insensitive substring
		Query     string // case-insensitive substring of title, author or isbn
		Hostel    string
		Category  string
		Type      string
		Available *bool
	}
)
