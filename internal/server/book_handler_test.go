package server_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/appleboy/gofight/v2"
	"github.com/prateekdahiya/campusconnect/internal/model"
	"github.com/prateekdahiya/campusconnect/internal/server"
	"github.com/stretchr/testify/assert"
)

func TestRequestBookCreate(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	user := createUser(ctrl, "george.abitbol@nowhere.lan", model.RoleStudent)
	header := authHeader(ctrl, user)

	params := gofight.D{}
	r.POST("/books").SetHeader(header).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"validation","message":"No title provided."}}`, r.Body.String())
	})

	params["title"] = "Introduction to Algorithms"
	params["hostel"] = "H4"
	params["type"] = "auction"
	r.POST("/books").SetHeader(header).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"validation","message":"Book type must be sell, rent or free."}}`, r.Body.String())
	})

	delete(params, "type")
	r.POST("/books").SetHeader(header).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusCreated, r.Code)

		var book model.Book
		assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &book))
		assert.NotEmpty(t, book.ID)
		assert.Equal(t, model.BookSell, book.Type) // default
		assert.Equal(t, model.BookAvailable, book.Status)
		assert.Equal(t, user.ID, book.Owner)
	})
}

func TestRequestBookList(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	user := createUser(ctrl, "george.abitbol@nowhere.lan", model.RoleStudent)
	header := authHeader(ctrl, user)

	algorithms := createBook(ctrl, user, "Introduction to Algorithms", "Cormen", model.BookSell)
	networks := createBook(ctrl, user, "Computer Networks", "Tanenbaum", model.BookRent)

	r.GET("/books").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.Len(t, books(t, r), 2)
	})

	r.GET("/books?author=cormen").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		listed := books(t, r)
		assert.Len(t, listed, 1)
		assert.Equal(t, algorithms.ID, listed[0].ID)
	})

	r.GET("/books?type=rent").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		listed := books(t, r)
		assert.Len(t, listed, 1)
		assert.Equal(t, networks.ID, listed[0].ID)
	})

	r.GET("/books?type=auction").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"validation","message":"Unknown book type."}}`, r.Body.String())
	})

	r.GET("/books?q=networks").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		listed := books(t, r)
		assert.Len(t, listed, 1)
		assert.Equal(t, networks.ID, listed[0].ID)
	})
}

func TestRequestBookLoan(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	owner := createUser(ctrl, "owner@nowhere.lan", model.RoleStudent)
	borrower := createUser(ctrl, "borrower@nowhere.lan", model.RoleStudent)

	book := createBook(ctrl, owner, "Introduction to Algorithms", "Cormen", model.BookRent)
	due := time.Now().Add(14 * 24 * time.Hour).Format(time.RFC3339)

	r.POST("/books/"+book.ID+"/request").SetHeader(authHeader(ctrl, owner)).
		SetJSON(gofight.D{"dueDate": due}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusConflict, r.Code)
			assert.JSONEq(t, `{"error":{"tag":"conflict","message":"You cannot borrow your own book."}}`, r.Body.String())
		})

	r.POST("/books/"+book.ID+"/request").SetHeader(authHeader(ctrl, borrower)).
		SetJSON(gofight.D{"dueDate": "someday"}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusBadRequest, r.Code)
			assert.JSONEq(t, `{"error":{"tag":"validation","message":"Could not parse due date."}}`, r.Body.String())
		})

	r.POST("/books/"+book.ID+"/request").SetHeader(authHeader(ctrl, borrower)).
		SetJSON(gofight.D{"dueDate": due}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)

			var lent model.Book
			assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &lent))
			assert.Equal(t, model.BookLent, lent.Status)
			assert.Equal(t, borrower.ID, lent.Borrower)
			assert.NotNil(t, lent.DueDate)
		})

	// Lent books are off the market.
	other := createUser(ctrl, "other@nowhere.lan", model.RoleStudent)
	r.POST("/books/"+book.ID+"/request").SetHeader(authHeader(ctrl, other)).
		SetJSON(gofight.D{"dueDate": due}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusConflict, r.Code)
			assert.JSONEq(t, `{"error":{"tag":"conflict","message":"This book is no longer available."}}`, r.Body.String())
		})

	r.GET("/books/my").SetHeader(authHeader(ctrl, borrower)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)

			borrowed := books(t, r)
			assert.Len(t, borrowed, 1)
			assert.Equal(t, book.ID, borrowed[0].ID)
		})

	r.PUT("/books/"+book.ID+"/return").SetHeader(authHeader(ctrl, other)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusForbidden, r.Code)
			assert.JSONEq(t, `{"error":{"tag":"forbidden","message":"Not your loan."}}`, r.Body.String())
		})

	r.PUT("/books/"+book.ID+"/return").SetHeader(authHeader(ctrl, borrower)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)

			var returned model.Book
			assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &returned))
			assert.Equal(t, model.BookAvailable, returned.Status)
			assert.Empty(t, returned.Borrower)
			assert.Nil(t, returned.DueDate)
		})

	r.PUT("/books/"+book.ID+"/return").SetHeader(authHeader(ctrl, owner)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusConflict, r.Code)
			assert.JSONEq(t, `{"error":{"tag":"conflict","message":"This book is not lent out."}}`, r.Body.String())
		})
}

func TestRequestBookDelete(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	owner := createUser(ctrl, "owner@nowhere.lan", model.RoleStudent)
	stranger := createUser(ctrl, "stranger@nowhere.lan", model.RoleStudent)

	book := createBook(ctrl, owner, "Introduction to Algorithms", "Cormen", model.BookSell)

	r.DELETE("/books/"+book.ID).SetHeader(authHeader(ctrl, stranger)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusForbidden, r.Code)
			assert.JSONEq(t, `{"error":{"tag":"forbidden","message":"Not your book."}}`, r.Body.String())
		})

	r.DELETE("/books/"+book.ID).SetHeader(authHeader(ctrl, owner)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)
			assert.JSONEq(t, `{"message":"Book deleted."}`, r.Body.String())
		})
}

func createBook(ctrl server.Controller, owner *model.User, title, author, kind string) *model.Book {
	book := &model.Book{
		Title:  title,
		Author: author,
		Hostel: "H4",
		Type:   kind,
		Owner:  owner.ID,
		Status: model.BookAvailable,
	}
	if err := ctrl.Database.Save(book); err != nil {
		panic(err)
	}
	return book
}

func books(t *testing.T, r gofight.HTTPResponse) []*model.Book {
	listed := []*model.Book{}
	assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &listed))
	return listed
}
