package endpoints

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthUp(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.health.On("CheckConnectivity").Return(nil)

	// No token required.
	w := doRequest(srv, "GET", "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "UP", resp.Status)
	assert.Equal(t, "State Loan Management System", resp.Service)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestHealthDown(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.health.On("CheckConnectivity").Return(errors.New("connection refused"))

	// A failed probe never changes the status code, only the body.
	w := doRequest(srv, "GET", "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "DOWN", resp.Status)
}
