package ccerror_test

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/prateekdahiya/campusconnect/internal/ccerror"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ccerror.StatusCode(ccerror.NotFound("no such item")))
	assert.Equal(t, http.StatusConflict, ccerror.StatusCode(ccerror.Conflict("claim already pending")))
	assert.Equal(t, http.StatusBadRequest, ccerror.StatusCode(ccerror.Validation("title is required")))
	assert.Equal(t, http.StatusUnauthorized, ccerror.StatusCode(ccerror.Unauthorized("invalid credentials")))
	assert.Equal(t, http.StatusForbidden, ccerror.StatusCode(ccerror.Forbidden("staff only")))
	assert.Equal(t, http.StatusInternalServerError, ccerror.StatusCode(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, ccerror.StatusCode(ccerror.New("no code")))
}

func TestTag(t *testing.T) {
	assert.Equal(t, ccerror.TagConflict, ccerror.Tag(ccerror.Conflict("nope")))
	assert.Empty(t, ccerror.Tag(errors.New("boom")))
}

func TestError(t *testing.T) {
	assert.EqualError(t, ccerror.NotFound("no such item"), "no such item")
}
