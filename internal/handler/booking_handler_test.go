package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotgate/availability-api/internal/dto"
	"github.com/slotgate/availability-api/internal/models"
	appErrors "github.com/slotgate/availability-api/pkg/errors"
)

type bookingServiceStub struct {
	result     *dto.BookingResult
	eventTypes []models.EventType
	err        error
	calls      int
	req        dto.CreateBookingRequest
}

func (s *bookingServiceStub) Create(ctx context.Context, req dto.CreateBookingRequest) (*dto.BookingResult, error) {
	s.calls++
	s.req = req
	return s.result, s.err
}

func (s *bookingServiceStub) EventTypes(ctx context.Context) ([]models.EventType, error) {
	return s.eventTypes, s.err
}

func postBooking(t *testing.T, h *BookingHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)
	return w
}

func TestBookingCreateSuccess(t *testing.T) {
	stub := &bookingServiceStub{result: &dto.BookingResult{Booking: &models.Booking{ID: 99, EventTypeID: 42}}}
	h := NewBookingHandler(stub)

	w := postBooking(t, h, `{"eventTypeId":42,"start":"2024-03-01T10:00:00+05:30"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 42, stub.req.EventTypeID)
	assert.Contains(t, w.Body.String(), `"id":99`)
}

func TestBookingCreateRejectsMalformedJSON(t *testing.T) {
	stub := &bookingServiceStub{}
	h := NewBookingHandler(stub)

	w := postBooking(t, h, `{"eventTypeId":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, stub.calls)
}

func TestBookingCreateRejectsNonISOStart(t *testing.T) {
	stub := &bookingServiceStub{}
	h := NewBookingHandler(stub)

	w := postBooking(t, h, `{"eventTypeId":42,"start":"tomorrow"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, stub.calls)
}

func TestBookingCreateConflictReturnsSuggestions(t *testing.T) {
	stub := &bookingServiceStub{result: &dto.BookingResult{
		Suggestions: []dto.FreeSlot{{Start: "2024-03-01T14:00:00+05:30", End: "2024-03-01T15:00:00+05:30"}},
	}}
	h := NewBookingHandler(stub)

	w := postBooking(t, h, `{"eventTypeId":42,"start":"2024-03-01T10:00:00+05:30"}`)

	assert.Equal(t, http.StatusConflict, w.Code)

	var body dto.SlotUnavailableResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &struct {
		Data *dto.SlotUnavailableResponse `json:"data"`
	}{Data: &body}))
	require.Len(t, body.Suggestions, 1)
	assert.Equal(t, "2024-03-01T14:00:00+05:30", body.Suggestions[0].Start)
	assert.NotEmpty(t, body.Message)
}

func TestBookingCreateMapsUpstreamFailure(t *testing.T) {
	stub := &bookingServiceStub{err: appErrors.Clone(appErrors.ErrUpstream, "calcom /bookings failed")}
	h := NewBookingHandler(stub)

	w := postBooking(t, h, `{"eventTypeId":42,"start":"2024-03-01T10:00:00+05:30"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), appErrors.ErrUpstream.Code)
}

func TestListEventTypesSuccess(t *testing.T) {
	stub := &bookingServiceStub{eventTypes: []models.EventType{{ID: 1, Slug: "intro-call", Length: 30}}}
	h := NewBookingHandler(stub)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/event-types", nil)
	h.ListEventTypes(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"intro-call"`)
}

func TestListEventTypesMapsNotFound(t *testing.T) {
	stub := &bookingServiceStub{err: appErrors.ErrNotFound}
	h := NewBookingHandler(stub)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/event-types", nil)
	h.ListEventTypes(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
