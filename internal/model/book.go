package model

import "time"

// Book listing types.
const (
	BookSell = "sell"
	BookRent = "rent"
	BookFree = "free"
)

// Book statuses.
const (
	BookAvailable = "available"
	BookLent      = "lent"
	BookSold      = "sold"
)

// A Book represents a book-exchange listing.
type Book struct {
	Base `msgpack:",inline" storm:"inline"`

	Title       string  `json:"title"                 msgpack:"title"`
	Author      string  `json:"author,omitempty"      msgpack:"author"   storm:"index"`
	ISBN        string  `json:"isbn,omitempty"        msgpack:"isbn"`
	Edition     string  `json:"edition,omitempty"     msgpack:"edition"`
	Condition   string  `json:"condition,omitempty"   msgpack:"condition"`
	Category    string  `json:"category,omitempty"    msgpack:"category" storm:"index"`
	Hostel      string  `json:"hostel"                msgpack:"hostel"   storm:"index"`
	Price       float64 `json:"price,omitempty"       msgpack:"price"`
	Rent        float64 `json:"rent,omitempty"        msgpack:"rent"`
	Type        string  `json:"type"                  msgpack:"type"     storm:"index"`
	Description string  `json:"description,omitempty" msgpack:"description"`
	Image       string  `json:"image,omitempty"       msgpack:"image"`
	Owner       string  `json:"owner"                 msgpack:"owner"    storm:"index"`
	Status      string  `json:"status"                msgpack:"status"   storm:"index"`

	// Loan fields, set while Status == lent.
	Borrower string     `json:"borrower,omitempty" msgpack:"borrower" storm:"index"`
	DueDate  *time.Time `json:"dueDate,omitempty"  msgpack:"due_date"`
}
