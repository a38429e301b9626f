package server_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/prateekdahiya/campusconnect/internal/model"
	"github.com/prateekdahiya/campusconnect/internal/server"
	"github.com/stretchr/testify/assert"
)

func TestRequestComplaintCreate(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	user := createUser(ctrl, "george.abitbol@nowhere.lan", model.RoleStudent)
	header := authHeader(ctrl, user)

	params := gofight.D{}
	r.POST("/complaints").SetHeader(header).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"validation","message":"No title provided."}}`, r.Body.String())
	})

	params["title"] = "Leaking tap"
	params["description"] = "The tap of the second floor washroom leaks all night."
	params["hostel"] = "H4"
	r.POST("/complaints").SetHeader(header).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusCreated, r.Code)

		var complaint model.Complaint
		assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &complaint))
		assert.NotEmpty(t, complaint.ID)
		assert.Equal(t, model.ComplaintPending, complaint.Status)
		assert.Equal(t, user.ID, complaint.CreatedBy)
		assert.Empty(t, complaint.Remarks)
	})
}

func TestRequestComplaintList(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	user := createUser(ctrl, "george.abitbol@nowhere.lan", model.RoleStudent)
	header := authHeader(ctrl, user)

	h4 := createComplaint(ctrl, user, "H4")
	createComplaint(ctrl, user, "H7")

	r.GET("/complaints/all").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		complaints := []*model.Complaint{}
		assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &complaints))
		assert.Len(t, complaints, 2)
	})

	r.GET("/complaints/hostel/H4").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		complaints := []*model.Complaint{}
		assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &complaints))
		assert.Len(t, complaints, 1)
		assert.Equal(t, h4.ID, complaints[0].ID)
	})
}

func TestRequestComplaintWorkflow(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	student := createUser(ctrl, "student@nowhere.lan", model.RoleStudent)
	staff := createUser(ctrl, "staff@nowhere.lan", model.RoleStaff)

	complaint := createComplaint(ctrl, student, "H4")

	// Status updates are a staff matter.
	r.PUT("/complaints/"+complaint.ID+"/status").
		SetHeader(authHeader(ctrl, student)).
		SetJSON(gofight.D{"status": model.ComplaintInProgress}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusForbidden, r.Code)
		})

	r.PUT("/complaints/"+complaint.ID+"/status").
		SetHeader(authHeader(ctrl, staff)).
		SetJSON(gofight.D{"status": "Escalated"}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusBadRequest, r.Code)
			assert.JSONEq(t, `{"error":{"tag":"validation","message":"Unknown complaint status."}}`, r.Body.String())
		})

	r.PUT("/complaints/"+complaint.ID+"/status").
		SetHeader(authHeader(ctrl, staff)).
		SetJSON(gofight.D{"status": model.ComplaintResolved}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)

			var updated model.Complaint
			assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &updated))
			assert.Equal(t, model.ComplaintResolved, updated.Status)
		})

	r.PUT("/complaints/"+complaint.ID+"/assign").
		SetHeader(authHeader(ctrl, staff)).
		SetJSON(gofight.D{"staffId": student.ID}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusBadRequest, r.Code)
			assert.JSONEq(t, `{"error":{"tag":"validation","message":"Assignee is not a staff member."}}`, r.Body.String())
		})

	r.PUT("/complaints/"+complaint.ID+"/assign").
		SetHeader(authHeader(ctrl, staff)).
		SetJSON(gofight.D{"staffId": staff.ID}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)

			var updated model.Complaint
			assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &updated))
			assert.Equal(t, staff.ID, updated.AssignedStaff)
		})

	r.POST("/complaints/"+complaint.ID+"/remarks").
		SetHeader(authHeader(ctrl, staff)).
		SetJSON(gofight.D{"text": "Plumber scheduled for Monday."}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)

			var updated model.Complaint
			assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &updated))
			assert.Len(t, updated.Remarks, 1)
			assert.Equal(t, staff.ID, updated.Remarks[0].AddedBy)
		})

	// Satisfaction feedback belongs to the complainant.
	r.PUT("/complaints/"+complaint.ID+"/satisfaction").
		SetHeader(authHeader(ctrl, staff)).
		SetJSON(gofight.D{"satisfied": "yes"}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusForbidden, r.Code)
			assert.JSONEq(t, `{"error":{"tag":"forbidden","message":"Not your complaint."}}`, r.Body.String())
		})

	r.PUT("/complaints/"+complaint.ID+"/satisfaction").
		SetHeader(authHeader(ctrl, student)).
		SetJSON(gofight.D{"satisfied": "maybe"}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusBadRequest, r.Code)
			assert.JSONEq(t, `{"error":{"tag":"validation","message":"Satisfaction must be yes or no."}}`, r.Body.String())
		})

	r.PUT("/complaints/"+complaint.ID+"/satisfaction").
		SetHeader(authHeader(ctrl, student)).
		SetJSON(gofight.D{"satisfied": "yes"}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)

			var updated model.Complaint
			assert.NoError(t, json.Unmarshal(r.Body.Bytes(), &updated))
			assert.Equal(t, "yes", updated.Satisfied)
		})
}

func TestRequestComplaintDelete(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	student := createUser(ctrl, "student@nowhere.lan", model.RoleStudent)
	stranger := createUser(ctrl, "stranger@nowhere.lan", model.RoleStudent)

	complaint := createComplaint(ctrl, student, "H4")

	r.DELETE("/complaints/"+complaint.ID).SetHeader(authHeader(ctrl, stranger)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusForbidden, r.Code)
		})

	r.DELETE("/complaints/"+complaint.ID).SetHeader(authHeader(ctrl, student)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)
			assert.JSONEq(t, `{"message":"Complaint deleted."}`, r.Body.String())
		})

	r.DELETE("/complaints/"+complaint.ID).SetHeader(authHeader(ctrl, student)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusNotFound, r.Code)
		})
}

func createComplaint(ctrl server.Controller, user *model.User, hostel string) *model.Complaint {
	complaint := &model.Complaint{
		Title:       "Leaking tap",
		Description: "The tap of the second floor washroom leaks all night.",
		Hostel:      hostel,
		Status:      model.ComplaintPending,
		CreatedBy:   user.ID,
		Remarks:     []model.Remark{},
	}
	if err := ctrl.Database.Save(complaint); err != nil {
		panic(err)
	}
	return complaint
}
