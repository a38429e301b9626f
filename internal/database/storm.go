package database

import (
	"regexp"
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"github.com/prateekdahiya/campusconnect/internal/model"
	"github.com/prateekdahiya/campusconnect/pkg/stormcodec"
)

type strm struct {
	db *storm.DB
}

func indexed() []model.Model {
	return []model.Model{
		&model.User{},
		&model.Item{},
		&model.Complaint{},
		&model.Cycle{},
		&model.Booking{},
		&model.Book{},
	}
}

// StormInit initializes Storm database.
func StormInit(database, codec string) error {
	db, err := storm.Open(database, storm.Codec(stormcodec.ByName(codec)))
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	for _, m := range indexed() {
		if err := db.Init(m); err != nil {
			return errors.Wrapf(err, "could not init %T index", m)
		}
	}
	return nil
}

// StormReIndex reindex Storm database.
func StormReIndex(database, codec string) error {
	db, err := storm.Open(database, storm.Codec(stormcodec.ByName(codec)))
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	for _, m := range indexed() {
		if err := db.ReIndex(m); err != nil {
			return errors.Wrapf(err, "could not reindex %T", m)
		}
	}
	return nil
}

// StormOpen returns a new Storm database connection.
func StormOpen(database, codec string) (Client, error) {
	db, err := storm.Open(database, storm.Codec(stormcodec.ByName(codec)))
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db: db,
	}, nil
}

// Save inserts or updates the entry in database with the given model.
func (c *strm) Save(m model.Model) error {
	t := time.Now().UTC()
	m.SetUpdatedAt(t)

	if m.GetID() == "" {
		m.SetID(uuid.Must(uuid.NewV4()).String())
		m.SetCreatedAt(t)
	}

	return errors.Wrap(c.db.Save(m), "could not save the model")
}

// Delete deletes the entry in database with the given model.
func (c *strm) Delete(m model.Model) error {
	return errors.Wrap(c.db.DeleteStruct(m), "could not delete the model")
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// FindUser returns the user for the given id (UUID).
func (c *strm) FindUser(id string) (*model.User, error) {
	var user model.User
	if err := c.db.One("ID", id, &user); err != nil {
		return nil, errors.Wrap(err, "find user by id")
	}
	return &user, nil
}

// FindUserByMail returns the user for the given email.
func (c *strm) FindUserByMail(email string) (*model.User, error) {
	var user model.User
	if err := c.db.One("Email", email, &user); err != nil {
		return nil, errors.Wrap(err, "find user by mail")
	}
	return &user, nil
}

// FindItem returns the item for the given id (UUID).
func (c *strm) FindItem(id string) (*model.Item, error) {
	var item model.Item
	if err := c.db.One("ID", id, &item); err != nil {
		return nil, errors.Wrap(err, "could not find item")
	}
	return &item, nil
}

// FindItems returns the items matching the given filter, newest first.
func (c *strm) FindItems(filter ItemFilter) ([]*model.Item, error) {
	query := []q.Matcher{}

	if filter.Type != "" {
		query = append(query, q.Eq("Type", filter.Type))
	}
	if filter.Category != "" {
		query = append(query, q.Eq("Category", filter.Category))
	}
	if filter.Found != nil {
		query = append(query, q.Eq("Found", *filter.Found))
	}
	if filter.Query != "" {
		query = append(query, q.Or(
			contains("Title", filter.Query),
			contains("Description", filter.Query),
		))
	}

	stmt := c.db.Select(query...).OrderBy("CreatedAt")
	if !filter.Oldest {
		stmt = stmt.Reverse()
	}

	items := make([]*model.Item, 0)
	err := stmt.Find(&items)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find items")
	}
	return items, nil
}

// UpdateItem applies fn to the item inside a single write transaction.
func (c *strm) UpdateItem(id string, fn func(*model.Item) error) (*model.Item, error) {
	tx, err := c.db.Begin(true)
	if err != nil {
		return nil, errors.Wrap(err, "could not begin transaction")
	}
	defer tx.Rollback()

	var item model.Item
	if err := tx.One("ID", id, &item); err != nil {
		return nil, errors.Wrap(err, "could not find item")
	}

	if err := fn(&item); err != nil {
		return nil, err
	}

	item.SetUpdatedAt(time.Now().UTC())
	if err := tx.Save(&item); err != nil {
		return nil, errors.Wrap(err, "could not save item")
	}

	return &item, errors.Wrap(tx.Commit(), "could not commit item update")
}

// FindComplaint returns the complaint for the given id (UUID).
func (c *strm) FindComplaint(id string) (*model.Complaint, error) {
	var complaint model.Complaint
	if err := c.db.One("ID", id, &complaint); err != nil {
		return nil, errors.Wrap(err, "could not find complaint")
	}
	return &complaint, nil
}

// FindComplaints returns all complaints, newest first.
func (c *strm) FindComplaints(hostel string) ([]*model.Complaint, error) {
	query := []q.Matcher{}
	if hostel != "" {
		query = append(query, q.Eq("Hostel", hostel))
	}

	complaints := make([]*model.Complaint, 0)
	err := c.db.Select(query...).OrderBy("CreatedAt").Reverse().Find(&complaints)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find complaints")
	}
	return complaints, nil
}

// FindCycle returns the cycle for the given id (UUID).
func (c *strm) FindCycle(id string) (*model.Cycle, error) {
	var cycle model.Cycle
	if err := c.db.One("ID", id, &cycle); err != nil {
		return nil, errors.Wrap(err, "could not find cycle")
	}
	return &cycle, nil
}

// FindAvailableCycles returns available cycles, optionally restricted to a hostel.
func (c *strm) FindAvailableCycles(hostel string) ([]*model.Cycle, error) {
	query := []q.Matcher{q.Eq("Available", true)}
	if hostel != "" {
		query = append(query, q.Eq("Hostel", hostel))
	}

	cycles := make([]*model.Cycle, 0)
	err := c.db.Select(query...).OrderBy("CreatedAt").Reverse().Find(&cycles)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find cycles")
	}
	return cycles, nil
}

// FindCyclesByOwner returns all cycles listed by the given user.
func (c *strm) FindCyclesByOwner(ownerID string) ([]*model.Cycle, error) {
	cycles := make([]*model.Cycle, 0)
	err := c.db.Select(q.Eq("Owner", ownerID)).OrderBy("CreatedAt").Reverse().Find(&cycles)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find cycles by owner")
	}
	return cycles, nil
}

// FindBooking returns the booking for the given id (UUID).
func (c *strm) FindBooking(id string) (*model.Booking, error) {
	var booking model.Booking
	if err := c.db.One("ID", id, &booking); err != nil {
		return nil, errors.Wrap(err, "could not find booking")
	}
	return &booking, nil
}

// FindBookingsByUser returns all bookings made by the given user.
func (c *strm) FindBookingsByUser(userID string) ([]*model.Booking, error) {
	bookings := make([]*model.Booking, 0)
	err := c.db.Select(q.Eq("UserID", userID)).OrderBy("CreatedAt").Reverse().Find(&bookings)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find bookings by user")
	}
	return bookings, nil
}

// FindPendingBookingsByOwner returns the pending requests addressed to
// the given cycle owner.
func (c *strm) FindPendingBookingsByOwner(ownerID string) ([]*model.Booking, error) {
	bookings := make([]*model.Booking, 0)
	err := c.db.Select(q.Eq("OwnerID", ownerID), q.Eq("Status", model.BookingPending)).
		OrderBy("CreatedAt").Reverse().Find(&bookings)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find pending bookings")
	}
	return bookings, nil
}

// FindOpenBookingByUser returns the pending or approved booking of the
// given user, if any.
func (c *strm) FindOpenBookingByUser(userID string) (*model.Booking, error) {
	var booking model.Booking
	err := c.db.Select(
		q.Eq("UserID", userID),
		q.In("Status", []string{model.BookingPending, model.BookingApproved}),
	).First(&booking)
	if err != nil {
		return nil, errors.Wrap(err, "could not find open booking")
	}
	return &booking, nil
}

// FindBook returns the book for the given id (UUID).
func (c *strm) FindBook(id string) (*model.Book, error) {
	var book model.Book
	if err := c.db.One("ID", id, &book); err != nil {
		return nil, errors.Wrap(err, "could not find book")
	}
	return &book, nil
}

// FindBooks returns the books matching the given filter, newest first.
func (c *strm) FindBooks(filter BookFilter) ([]*model.Book, error) {
	query := []q.Matcher{}

	if filter.Title != "" {
		query = append(query, contains("Title", filter.Title))
	}
	if filter.Author != "" {
		query = append(query, contains("Author", filter.Author))
	}
	if filter.Query != "" {
		query = append(query, q.Or(
			contains("Title", filter.Query),
			contains("Author", filter.Query),
			contains("ISBN", filter.Query),
		))
	}
	if filter.Hostel != "" {
		query = append(query, q.Eq("Hostel", filter.Hostel))
	}
	if filter.Category != "" {
		query = append(query, q.Eq("Category", filter.Category))
	}
	if filter.Type != "" {
		query = append(query, q.Eq("Type", filter.Type))
	}
	if filter.Available != nil {
		if *filter.Available {
			query = append(query, q.Eq("Status", model.BookAvailable))
		} else {
			query = append(query, q.Not(q.Eq("Status", model.BookAvailable)))
		}
	}

	books := make([]*model.Book, 0)
	err := c.db.Select(query...).OrderBy("CreatedAt").Reverse().Find(&books)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find books")
	}
	return books, nil
}

// FindBooksByBorrower returns the books currently borrowed by the given user.
func (c *strm) FindBooksByBorrower(userID string) ([]*model.Book, error) {
	books := make([]*model.Book, 0)
	err := c.db.Select(q.Eq("Borrower", userID), q.Eq("Status", model.BookLent)).
		OrderBy("CreatedAt").Reverse().Find(&books)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find borrowed books")
	}
	return books, nil
}

// contains matches a case-insensitive substring of a string field.
func contains(field, s string) q.Matcher {
	return q.Re(field, "(?i)"+regexp.QuoteMeta(s))
}
