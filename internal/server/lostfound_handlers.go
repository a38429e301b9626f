package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prateekdahiya/campusconnect/internal/ccerror"
	"github.com/prateekdahiya/campusconnect/internal/database"
	"github.com/prateekdahiya/campusconnect/internal/model"
	"github.com/prateekdahiya/campusconnect/internal/server/serializer"
	"github.com/prateekdahiya/campusconnect/internal/server/service"
)

// lostfound contains all lost-and-found handlers.
type lostfound struct {
	db      database.Client
	matcher *service.Matcher
	claims  *service.Claims
}

type (
	reportItemParams struct {
		Type        string   `json:"type"`
		Title       string   `json:"title"`
		Category    string   `json:"category"`
		Description string   `json:"description"`
		Location    string   `json:"location"`
		Images      []string `json:"images"`
	}

	claimParams struct {
		Proof string `json:"proof"`
	}

	adjudicateParams struct {
		Approve bool `json:"approve"`
	}
)

///// List
////
//

// List renders the items matching the query filters:
// type, category, q, status (open/resolved) and sort (newest/oldest).
func (h *lostfound) List(c echo.Context) error {
	filter := database.ItemFilter{
		Type:     c.QueryParam("type"),
		Category: c.QueryParam("category"),
		Query:    c.QueryParam("q"),
		Oldest:   c.QueryParam("sort") == "oldest",
	}

	if filter.Type != "" && filter.Type != model.ItemTypeLost && filter.Type != model.ItemTypeFound {
		return ccerror.Validation("Unknown item type.")
	}

	switch c.QueryParam("status") {
	case "":
	case "open":
		found := false
		filter.Found = &found
	case "resolved":
		found := true
		filter.Found = &found
	default:
		return ccerror.Validation("Unknown item status.")
	}

	items, err := h.db.FindItems(filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

///// Report
////
//

// Report creates a new lost or found item.
func (h *lostfound) Report(c echo.Context) error {
	var params reportItemParams
	if err := c.Bind(&params); err != nil {
		return ccerror.Validation("Could not get item params.")
	}

	if params.Title == "" {
		return ccerror.Validation("No title provided.")
	}
	if params.Location == "" {
		return ccerror.Validation("No location provided.")
	}
	if params.Type != model.ItemTypeLost && params.Type != model.ItemTypeFound {
		return ccerror.Validation("Item type must be lost or found.")
	}

	item := &model.Item{
		Title:       params.Title,
		Description: params.Description,
		Category:    params.Category,
		Location:    params.Location,
		Type:        params.Type,
		Images:      params.Images,
		ReportedBy:  currentUser(c).ID,
	}
	if err := h.db.Save(item); err != nil {
		return errors.Wrap(err, "could not persist item")
	}
	return c.JSON(http.StatusCreated, item)
}

///// Delete
////
//

// Delete removes an item. Restricted to the reporter and staff.
func (h *lostfound) Delete(c echo.Context) error {
	item, err := h.find(c.Param("id"))
	if err != nil {
		return err
	}

	user := currentUser(c)
	if item.ReportedBy != user.ID && !user.IsStaff() {
		return ccerror.Forbidden("Not your report.")
	}

	if err := h.db.Delete(item); err != nil {
		return errors.Wrap(err, "could not delete item")
	}
	return c.JSON(http.StatusOK, serializer.Message("Item deleted."))
}

///// MarkFound
////
//

// MarkFound flips the item's resolved flag. The item type is immutable,
// only the flag moves.
func (h *lostfound) MarkFound(c echo.Context) error {
	item, err := h.db.UpdateItem(c.Param("id"), func(item *model.Item) error {
		item.Found = true
		return nil
	})
	if err != nil {
		if h.db.IsNotFound(err) {
			return ccerror.NotFound("Item not found.")
		}
		return err
	}
	return c.JSON(http.StatusOK, item)
}

///// Matches
////
//

// Matches renders the opposite-type items ranked by keyword overlap.
func (h *lostfound) Matches(c echo.Context) error {
	matches, err := h.matcher.FindMatches(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, matches)
}

///// SubmitClaim
////
//

// SubmitClaim attaches a pending ownership claim to the item.
func (h *lostfound) SubmitClaim(c echo.Context) error {
	var params claimParams
	if err := c.Bind(&params); err != nil {
		return ccerror.Validation("Could not get claim params.")
	}

	claim, err := h.claims.Submit(c.Param("id"), currentUser(c).ID, params.Proof)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, claim)
}

///// Adjudicate
////
//

// Adjudicate approves or rejects the item's pending claim.
func (h *lostfound) Adjudicate(c echo.Context) error {
	var params adjudicateParams
	if err := c.Bind(&params); err != nil {
		return ccerror.Validation("Could not get adjudication params.")
	}

	claim, err := h.claims.Adjudicate(c.Param("id"), c.Param("claimID"), params.Approve, currentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claim)
}

func (h *lostfound) find(id string) (*model.Item, error) {
	item, err := h.db.FindItem(id)
	if err != nil {
		if h.db.IsNotFound(err) {
			return nil, ccerror.NotFound("Item not found.")
		}
		return nil, err
	}
	return item, nil
}
