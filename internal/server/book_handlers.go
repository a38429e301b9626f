package server

import (
	"net/http"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prateekdahiya/campusconnect/internal/ccerror"
	"github.com/prateekdahiya/campusconnect/internal/database"
	"github.com/prateekdahiya/campusconnect/internal/model"
	"github.com/prateekdahiya/campusconnect/internal/server/serializer"
)

// book contains all book exchange handlers.
type book struct {
	db database.Client
}

type (
	createBookParams struct {
		Title       string  `json:"title"`
		Author      string  `json:"author"`
		ISBN        string  `json:"isbn"`
		Edition     string  `json:"edition"`
		Condition   string  `json:"condition"`
		Category    string  `json:"category"`
		Hostel      string  `json:"hostel"`
		Price       float64 `json:"price"`
		Rent        float64 `json:"rent"`
		Type        string  `json:"type"`
		Description string  `json:"description"`
		Image       string  `json:"image"`
	}

	requestBookParams struct {
		DueDate string `json:"dueDate"`
	}
)

///// List
////
//

// List renders the listed books matching the query filters:
// title, author, q, hostel, category, type and available.
func (h *book) List(c echo.Context) error {
	filter := database.BookFilter{
		Title:    c.QueryParam("title"),
		Author:   c.QueryParam("author"),
		Query:    c.QueryParam("q"),
		Hostel:   c.QueryParam("hostel"),
		Category: c.QueryParam("category"),
		Type:     c.QueryParam("type"),
	}

	if filter.Type != "" && filter.Type != model.BookSell && filter.Type != model.BookRent && filter.Type != model.BookFree {
		return ccerror.Validation("Unknown book type.")
	}

	switch c.QueryParam("available") {
	case "":
	case "true":
		available := true
		filter.Available = &available
	case "false":
		available := false
		filter.Available = &available
	default:
		return ccerror.Validation("available must be true or false.")
	}

	books, err := h.db.FindBooks(filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

///// Mine
////
//

// Mine renders the books currently borrowed by the caller.
func (h *book) Mine(c echo.Context) error {
	books, err := h.db.FindBooksByBorrower(currentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

///// Create
////
//

// Create lists a new book for sale, rent or giveaway.
func (h *book) Create(c echo.Context) error {
	var params createBookParams
	if err := c.Bind(&params); err != nil {
		return ccerror.Validation("Could not get book params.")
	}

	if params.Title == "" {
		return ccerror.Validation("No title provided.")
	}
	if params.Hostel == "" {
		return ccerror.Validation("No hostel provided.")
	}
	if params.Type == "" {
		params.Type = model.BookSell
	}
	if params.Type != model.BookSell && params.Type != model.BookRent && params.Type != model.BookFree {
		return ccerror.Validation("Book type must be sell, rent or free.")
	}

	book := &model.Book{
		Title:       params.Title,
		Author:      params.Author,
		ISBN:        params.ISBN,
		Edition:     params.Edition,
		Condition:   params.Condition,
		Category:    params.Category,
		Hostel:      params.Hostel,
		Price:       params.Price,
		Rent:        params.Rent,
		Type:        params.Type,
		Description: params.Description,
		Image:       params.Image,
		Owner:       currentUser(c).ID,
		Status:      model.BookAvailable,
	}
	if err := h.db.Save(book); err != nil {
		return errors.Wrap(err, "could not persist book")
	}
	return c.JSON(http.StatusCreated, book)
}

///// Delete
////
//

// Delete removes a listing. Restricted to the owner and staff.
func (h *book) Delete(c echo.Context) error {
	book, err := h.find(c.Param("id"))
	if err != nil {
		return err
	}

	user := currentUser(c)
	if book.Owner != user.ID && !user.IsStaff() {
		return ccerror.Forbidden("Not your book.")
	}

	if err := h.db.Delete(book); err != nil {
		return errors.Wrap(err, "could not delete book")
	}
	return c.JSON(http.StatusOK, serializer.Message("Book deleted."))
}

///// Request
////
//

// Request borrows an available book until the given due date.
func (h *book) Request(c echo.Context) error {
	var params requestBookParams
	if err := c.Bind(&params); err != nil {
		return ccerror.Validation("Could not get request params.")
	}

	book, err := h.find(c.Param("id"))
	if err != nil {
		return err
	}

	user := currentUser(c)
	if book.Owner == user.ID {
		return ccerror.Conflict("You cannot borrow your own book.")
	}
	if book.Status != model.BookAvailable {
		return ccerror.Conflict("This book is no longer available.")
	}

	if params.DueDate != "" {
		due, err := dateparse.ParseAny(params.DueDate)
		if err != nil {
			return ccerror.Validation("Could not parse due date.")
		}
		book.DueDate = &due
	}

	book.Status = model.BookLent
	book.Borrower = user.ID
	if err := h.db.Save(book); err != nil {
		return errors.Wrap(err, "could not persist book")
	}
	return c.JSON(http.StatusOK, book)
}

///// Return
////
//

// Return closes the loan. Restricted to the borrower and the owner.
func (h *book) Return(c echo.Context) error {
	book, err := h.find(c.Param("id"))
	if err != nil {
		return err
	}

	user := currentUser(c)
	if book.Borrower != user.ID && book.Owner != user.ID {
		return ccerror.Forbidden("Not your loan.")
	}
	if book.Status != model.BookLent {
		return ccerror.Conflict("This book is not lent out.")
	}

	book.Status = model.BookAvailable
	book.Borrower = ""
	book.DueDate = nil
	if err := h.db.Save(book); err != nil {
		return errors.Wrap(err, "could not persist book")
	}
	return c.JSON(http.StatusOK, book)
}

func (h *book) find(id string) (*model.Book, error) {
	book, err := h.db.FindBook(id)
	if err != nil {
		if h.db.IsNotFound(err) {
			return nil, ccerror.NotFound("Book not found.")
		}
		return nil, err
	}
	return book, nil
}
