package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prateekdahiya/campusconnect/internal/ccerror"
	"github.com/prateekdahiya/campusconnect/internal/database"
	"github.com/prateekdahiya/campusconnect/internal/model"
	"github.com/prateekdahiya/campusconnect/internal/server/serializer"
)

// cycle contains all cycle listing handlers.
type cycle struct {
	db database.Client
}

type (
	cycleParams struct {
		Name       string   `json:"name"`
		Model      string   `json:"model"`
		Hostel     string   `json:"hostel"`
		HourlyRate float64  `json:"hourlyRate"`
		DailyRate  float64  `json:"dailyRate"`
		Images     []string `json:"images"`
	}

	availabilityParams struct {
		Available bool `json:"available"`
	}
)

///// Available
////
//

// Available renders the cycles currently listed for lending,
// optionally restricted to a hostel.
func (h *cycle) Available(c echo.Context) error {
	cycles, err := h.db.FindAvailableCycles(c.QueryParam("hostel"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cycles)
}

///// Mine
////
//

// Mine renders the caller's own listings.
func (h *cycle) Mine(c echo.Context) error {
	cycles, err := h.db.FindCyclesByOwner(currentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cycles)
}

///// Create
////
//

// Create lists a new cycle, available by default.
func (h *cycle) Create(c echo.Context) error {
	var params cycleParams
	if err := c.Bind(&params); err != nil {
		return ccerror.Validation("Could not get cycle params.")
	}

	if params.Name == "" {
		return ccerror.Validation("No name provided.")
	}
	if params.Hostel == "" {
		return ccerror.Validation("No hostel provided.")
	}

	cycle := &model.Cycle{
		Name:       params.Name,
		Model:      params.Model,
		Hostel:     params.Hostel,
		HourlyRate: params.HourlyRate,
		DailyRate:  params.DailyRate,
		Images:     params.Images,
		Owner:      currentUser(c).ID,
		Available:  true,
	}
	if err := h.db.Save(cycle); err != nil {
		return errors.Wrap(err, "could not persist cycle")
	}
	return c.JSON(http.StatusCreated, cycle)
}

///// Update
////
//

// Update edits a listing. Owner only, blank fields are left untouched.
func (h *cycle) Update(c echo.Context) error {
	var params cycleParams
	if err := c.Bind(&params); err != nil {
		return ccerror.Validation("Could not get cycle params.")
	}

	cycle, err := h.findOwned(c)
	if err != nil {
		return err
	}

	if params.Name != "" {
		cycle.Name = params.Name
	}
	if params.Model != "" {
		cycle.Model = params.Model
	}
	if params.Hostel != "" {
		cycle.Hostel = params.Hostel
	}
	if params.HourlyRate > 0 {
		cycle.HourlyRate = params.HourlyRate
	}
	if params.DailyRate > 0 {
		cycle.DailyRate = params.DailyRate
	}
	if params.Images != nil {
		cycle.Images = params.Images
	}

	if err := h.db.Save(cycle); err != nil {
		return errors.Wrap(err, "could not persist cycle")
	}
	return c.JSON(http.StatusOK, cycle)
}

///// SetAvailability
////
//

// SetAvailability puts the listing on or off the lending pool. Owner only.
func (h *cycle) SetAvailability(c echo.Context) error {
	var params availabilityParams
	if err := c.Bind(&params); err != nil {
		return ccerror.Validation("Could not get availability params.")
	}

	cycle, err := h.findOwned(c)
	if err != nil {
		return err
	}

	cycle.Available = params.Available
	if err := h.db.Save(cycle); err != nil {
		return errors.Wrap(err, "could not persist cycle")
	}
	return c.JSON(http.StatusOK, cycle)
}

///// Delete
////
//

// Delete removes a listing. Restricted to the owner and staff.
func (h *cycle) Delete(c echo.Context) error {
	cycle, err := h.find(c.Param("id"))
	if err != nil {
		return err
	}

	user := currentUser(c)
	if cycle.Owner != user.ID && !user.IsStaff() {
		return ccerror.Forbidden("Not your cycle.")
	}

	if err := h.db.Delete(cycle); err != nil {
		return errors.Wrap(err, "could not delete cycle")
	}
	return c.JSON(http.StatusOK, serializer.Message("Cycle deleted."))
}

func (h *cycle) find(id string) (*model.Cycle, error) {
	cycle, err := h.db.FindCycle(id)
	if err != nil {
		if h.db.IsNotFound(err) {
			return nil, ccerror.NotFound("Cycle not found.")
		}
		return nil, err
	}
	return cycle, nil
}

func (h *cycle) findOwned(c echo.Context) (*model.Cycle, error) {
	cycle, err := h.find(c.Param("id"))
	if err != nil {
		return nil, err
	}
	if cycle.Owner != currentUser(c).ID {
		return nil, ccerror.Forbidden("Not your cycle.")
	}
	return cycle, nil
}
