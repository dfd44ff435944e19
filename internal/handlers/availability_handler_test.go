package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func postAvailability(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewAvailabilityHandler(nil, nil, nil, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(
		http.MethodPost,
		"/api/professional-availability",
		strings.NewReader(body),
	)
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)
	return w
}

func TestCreateAvailability_RejectsBothShapes(t *testing.T) {
	// data concreta e dia da semana juntos não formam uma linha válida
	w := postAvailability(t, `{
		"professional_id": "prof-1",
		"date":            "2025-03-10",
		"day_of_week":     1,
		"start_time":      "09:00",
		"end_time":        "10:00"
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "date_or_day_of_week_required")
}

func TestCreateAvailability_RejectsNeitherShape(t *testing.T) {
	w := postAvailability(t, `{
		"professional_id": "prof-1",
		"start_time":      "09:00",
		"end_time":        "10:00"
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "date_or_day_of_week_required")
}

func TestCreateAvailability_RejectsInvertedRange(t *testing.T) {
	w := postAvailability(t, `{
		"professional_id": "prof-1",
		"date":            "2025-03-10",
		"start_time":      "10:00",
		"end_time":        "09:00"
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_range")
}
