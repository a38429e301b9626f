package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prateekdahiya/campusconnect/internal/ccerror"
	"github.com/prateekdahiya/campusconnect/internal/database"
	"github.com/prateekdahiya/campusconnect/internal/server/service"
)

// booking contains all cycle booking handlers.
type booking struct {
	db       database.Client
	bookings *service.Bookings
}

type (
	bookParams struct {
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	}

	extendParams struct {
		NewEndTime string `json:"newEndTime"`
	}
)

///// Book
////
//

// Book requests a cycle for a period.
func (h *booking) Book(c echo.Context) error {
	var params bookParams
	if err := c.Bind(&params); err != nil {
		return ccerror.Validation("Could not get booking params.")
	}

	booking, err := h.bookings.Book(currentUser(c), c.Param("cycleID"), params.StartTime, params.EndTime)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, booking)
}

///// Return
////
//

// Return closes an active booking and frees the cycle.
func (h *booking) Return(c echo.Context) error {
	booking, err := h.bookings.Return(currentUser(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

///// Extend
////
//

// Extend moves the expected return time of an active booking.
func (h *booking) Extend(c echo.Context) error {
	var params extendParams
	if err := c.Bind(&params); err != nil {
		return ccerror.Validation("Could not get extension params.")
	}

	booking, err := h.bookings.Extend(currentUser(c), c.Param("id"), params.NewEndTime)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

///// Mine
////
//

// Mine renders the caller's bookings, newest first.
func (h *booking) Mine(c echo.Context) error {
	bookings, err := h.db.FindBookingsByUser(currentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

///// Pending
////
//

// Pending renders the requests awaiting the caller's approval as a
// cycle owner.
func (h *booking) Pending(c echo.Context) error {
	bookings, err := h.db.FindPendingBookingsByOwner(currentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

///// Cancel
////
//

// Cancel withdraws an open booking.
func (h *booking) Cancel(c echo.Context) error {
	booking, err := h.bookings.Cancel(currentUser(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

///// Approve / Reject
////
//

// Approve accepts a pending request. Cycle owner only.
func (h *booking) Approve(c echo.Context) error {
	return h.respond(c, true)
}

// Reject refuses a pending request. Cycle owner only.
func (h *booking) Reject(c echo.Context) error {
	return h.respond(c, false)
}

func (h *booking) respond(c echo.Context, accept bool) error {
	booking, err := h.bookings.Respond(currentUser(c), c.Param("id"), accept)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}
