package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotgate/availability-api/internal/dto"
	"github.com/slotgate/availability-api/internal/models"
	appErrors "github.com/slotgate/availability-api/pkg/errors"
)

type availabilityServiceStub struct {
	slots    []models.FreeInterval
	err      error
	calls    int
	username string
	start    time.Time
	end      *time.Time
}

func (s *availabilityServiceStub) ComputeFreeSlots(ctx context.Context, username string, startDate time.Time, endDate *time.Time) ([]models.FreeInterval, error) {
	s.calls++
	s.username = username
	s.start = startDate
	s.end = endDate
	return s.slots, s.err
}

func (s *availabilityServiceStub) FreeScheduleOn(ctx context.Context, username string, date time.Time) ([]models.FreeInterval, error) {
	s.calls++
	s.username = username
	s.start = date
	return s.slots, s.err
}

type responseEnvelope struct {
	Data  []dto.FreeSlot         `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func getRequest(t *testing.T, h gin.HandlerFunc, target string) (*httptest.ResponseRecorder, responseEnvelope) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)

	h(c)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

func testSlots() []models.FreeInterval {
	loc := time.FixedZone("UTC+05:30", 330*60)
	return []models.FreeInterval{{
		Start: time.Date(2024, 3, 1, 9, 0, 0, 0, loc),
		End:   time.Date(2024, 3, 1, 17, 0, 0, 0, loc),
	}}
}

func TestAvailabilityListSuccess(t *testing.T) {
	stub := &availabilityServiceStub{slots: testSlots()}
	h := NewAvailabilityHandler(stub)

	w, envelope := getRequest(t, h.List, "/slots?username=alice&date=2024-03-01")

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "2024-03-01T09:00:00+05:30", envelope.Data[0].Start)
	assert.Equal(t, "2024-03-01T17:00:00+05:30", envelope.Data[0].End)
	assert.Equal(t, "alice", stub.username)
	assert.Nil(t, stub.end)
}

func TestAvailabilityListWithRange(t *testing.T) {
	stub := &availabilityServiceStub{slots: testSlots()}
	h := NewAvailabilityHandler(stub)

	w, _ := getRequest(t, h.List, "/slots?username=alice&startDate=2024-03-01&endDate=2024-03-04")

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, stub.end)
	assert.Equal(t, "2024-03-04", stub.end.Format("2006-01-02"))
}

func TestAvailabilityListEmptyDayRendersEmptyArray(t *testing.T) {
	h := NewAvailabilityHandler(&availabilityServiceStub{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/slots?username=alice&date=2024-03-01", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestAvailabilityListRequiresUsername(t *testing.T) {
	stub := &availabilityServiceStub{}
	h := NewAvailabilityHandler(stub)

	w, envelope := getRequest(t, h.List, "/slots?date=2024-03-01")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrValidation.Code, envelope.Error.Code)
	assert.Equal(t, 0, stub.calls)
}

func TestAvailabilityListRequiresDate(t *testing.T) {
	stub := &availabilityServiceStub{}
	h := NewAvailabilityHandler(stub)

	w, envelope := getRequest(t, h.List, "/slots?username=alice")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, 0, stub.calls)
}

func TestAvailabilityListRejectsMalformedDate(t *testing.T) {
	h := NewAvailabilityHandler(&availabilityServiceStub{})

	w, envelope := getRequest(t, h.List, "/slots?username=alice&date=01-03-2024")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Contains(t, envelope.Error.Message, "YYYY-MM-DD")
}

func TestAvailabilityListMapsUpstreamFailure(t *testing.T) {
	stub := &availabilityServiceStub{err: appErrors.Clone(appErrors.ErrUpstream, "calcom /availability failed")}
	h := NewAvailabilityHandler(stub)

	w, envelope := getRequest(t, h.List, "/slots?username=alice&date=2024-03-01")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrUpstream.Code, envelope.Error.Code)
}

func TestAvailabilityListMapsInvalidRange(t *testing.T) {
	stub := &availabilityServiceStub{err: appErrors.ErrInvalidRange}
	h := NewAvailabilityHandler(stub)

	w, envelope := getRequest(t, h.List, "/slots?username=alice&startDate=2024-03-02&endDate=2024-03-01")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrInvalidRange.Code, envelope.Error.Code)
}

func TestAvailabilityRangeRequiresBothDates(t *testing.T) {
	stub := &availabilityServiceStub{}
	h := NewAvailabilityHandler(stub)

	w, envelope := getRequest(t, h.Range, "/slots/range?username=alice&dateFrom=2024-03-01")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, 0, stub.calls)
}

func TestAvailabilityRangeSuccess(t *testing.T) {
	stub := &availabilityServiceStub{slots: testSlots()}
	h := NewAvailabilityHandler(stub)

	w, envelope := getRequest(t, h.Range, "/slots/range?username=alice&dateFrom=2024-03-01&dateTo=2024-03-04")

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, envelope.Data, 1)
	require.NotNil(t, stub.end)
	assert.Equal(t, "2024-03-04", stub.end.Format("2006-01-02"))
}

func TestFreeScheduleRequiresDate(t *testing.T) {
	stub := &availabilityServiceStub{}
	h := NewAvailabilityHandler(stub)

	w, envelope := getRequest(t, h.FreeSchedule, "/free-schedule?username=alice")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, 0, stub.calls)
}

func TestFreeScheduleSuccess(t *testing.T) {
	stub := &availabilityServiceStub{slots: testSlots()}
	h := NewAvailabilityHandler(stub)

	w, envelope := getRequest(t, h.FreeSchedule, "/free-schedule?username=alice&date=2024-03-01")

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "2024-03-01", stub.start.Format("2006-01-02"))
}
