package server

import (
	"net/http"
	"time"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prateekdahiya/campusconnect/internal/ccerror"
	"github.com/prateekdahiya/campusconnect/internal/database"
	"github.com/prateekdahiya/campusconnect/internal/model"
	"github.com/prateekdahiya/campusconnect/internal/server/serializer"
)

// complaint contains all complaint handlers.
type complaint struct {
	db database.Client
}

type (
	createComplaintParams struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Hostel      string   `json:"hostel"`
		Images      []string `json:"images"`
	}

	statusParams struct {
		Status string `json:"status"`
	}

	remarkParams struct {
		Text string `json:"text"`
	}

	assignParams struct {
		StaffID string `json:"staffId"`
	}

	satisfactionParams struct {
		Satisfied string `json:"satisfied"`
	}
)

///// List
////
//

// List renders all complaints, newest first.
func (h *complaint) List(c echo.Context) error {
	complaints, err := h.db.FindComplaints("")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, complaints)
}

// ListByHostel renders the complaints of a single hostel.
func (h *complaint) ListByHostel(c echo.Context) error {
	complaints, err := h.db.FindComplaints(c.Param("hostel"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, complaints)
}

///// Create
////
//

// Create files a new complaint with status Pending.
func (h *complaint) Create(c echo.Context) error {
	var params createComplaintParams
	if err := c.Bind(&params); err != nil {
		return ccerror.Validation("Could not get complaint params.")
	}

	if params.Title == "" {
		return ccerror.Validation("No title provided.")
	}
	if params.Description == "" {
		return ccerror.Validation("No description provided.")
	}
	if params.Hostel == "" {
		return ccerror.Validation("No hostel provided.")
	}

	complaint := &model.Complaint{
		Title:       params.Title,
		Description: params.Description,
		Hostel:      params.Hostel,
		Images:      params.Images,
		Status:      model.ComplaintPending,
		CreatedBy:   currentUser(c).ID,
		Remarks:     []model.Remark{},
	}
	if err := h.db.Save(complaint); err != nil {
		return errors.Wrap(err, "could not persist complaint")
	}
	return c.JSON(http.StatusCreated, complaint)
}

///// Delete
////
//

// Delete removes a complaint. Restricted to the creator and staff.
func (h *complaint) Delete(c echo.Context) error {
	complaint, err := h.find(c.Param("id"))
	if err != nil {
		return err
	}

	user := currentUser(c)
	if complaint.CreatedBy != user.ID && !user.IsStaff() {
		return ccerror.Forbidden("Not your complaint.")
	}

	if err := h.db.Delete(complaint); err != nil {
		return errors.Wrap(err, "could not delete complaint")
	}
	return c.JSON(http.StatusOK, serializer.Message("Complaint deleted."))
}

///// UpdateStatus
////
//

// UpdateStatus moves the complaint to the given status. Staff only.
func (h *complaint) UpdateStatus(c echo.Context) error {
	var params statusParams
	if err := c.Bind(&params); err != nil {
		return ccerror.Validation("Could not get status params.")
	}
	if !model.ValidComplaintStatus(params.Status) {
		return ccerror.Validation("Unknown complaint status.")
	}

	complaint, err := h.find(c.Param("id"))
	if err != nil {
		return err
	}

	complaint.Status = params.Status
	if err := h.db.Save(complaint); err != nil {
		return errors.Wrap(err, "could not persist complaint")
	}
	return c.JSON(http.StatusOK, complaint)
}

///// AddRemark
////
//

// AddRemark appends an annotation to the complaint.
func (h *complaint) AddRemark(c echo.Context) error {
	var params remarkParams
	if err := c.Bind(&params); err != nil {
		return ccerror.Validation("Could not get remark params.")
	}
	if params.Text == "" {
		return ccerror.Validation("No remark text provided.")
	}

	complaint, err := h.find(c.Param("id"))
	if err != nil {
		return err
	}

	complaint.Remarks = append(complaint.Remarks, model.Remark{
		ID:      uuid.Must(uuid.NewV4()).String(),
		Text:    params.Text,
		AddedBy: currentUser(c).ID,
		AddedAt: time.Now().UTC(),
	})
	if err := h.db.Save(complaint); err != nil {
		return errors.Wrap(err, "could not persist complaint")
	}
	return c.JSON(http.StatusOK, complaint)
}

///// Assign
////
//

// Assign routes the complaint to a staff member. Staff only.
func (h *complaint) Assign(c echo.Context) error {
	var params assignParams
	if err := c.Bind(&params); err != nil {
		return ccerror.Validation("Could not get assignment params.")
	}

	staff, err := h.db.FindUser(params.StaffID)
	if err != nil {
		if h.db.IsNotFound(err) {
			return ccerror.Validation("No such staff member.")
		}
		return errors.Wrap(err, "could not get user")
	}
	if !staff.IsStaff() {
		return ccerror.Validation("Assignee is not a staff member.")
	}

	complaint, err := h.find(c.Param("id"))
	if err != nil {
		return err
	}

	complaint.AssignedStaff = staff.ID
	if err := h.db.Save(complaint); err != nil {
		return errors.Wrap(err, "could not persist complaint")
	}
	return c.JSON(http.StatusOK, complaint)
}

///// Satisfaction
////
//

// Satisfaction records the complainant's feedback once resolved.
func (h *complaint) Satisfaction(c echo.Context) error {
	var params satisfactionParams
	if err := c.Bind(&params); err != nil {
		return ccerror.Validation("Could not get satisfaction params.")
	}
	if params.Satisfied != "yes" && params.Satisfied != "no" {
		return ccerror.Validation("Satisfaction must be yes or no.")
	}

	complaint, err := h.find(c.Param("id"))
	if err != nil {
		return err
	}
	if complaint.CreatedBy != currentUser(c).ID {
		return ccerror.Forbidden("Not your complaint.")
	}

	complaint.Satisfied = params.Satisfied
	if err := h.db.Save(complaint); err != nil {
		return errors.Wrap(err, "could not persist complaint")
	}
	return c.JSON(http.StatusOK, complaint)
}

func (h *complaint) find(id string) (*model.Complaint, error) {
	complaint, err := h.db.FindComplaint(id)
	if err != nil {
		if h.db.IsNotFound(err) {
			return nil, ccerror.NotFound("Complaint not found.")
		}
		return nil, err
	}
	return complaint, nil
}
