package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/trainer-booking-backend/internal/auth"
	"github.com/nekogravitycat/trainer-booking-backend/internal/booking"
	"github.com/nekogravitycat/trainer-booking-backend/internal/profile"
	"github.com/nekogravitycat/trainer-booking-backend/internal/session"
)

const (
	trainerProfileID = "11111111-1111-1111-1111-111111111111"
	clientProfileID  = "22222222-2222-2222-2222-222222222222"
	bookingID        = "44444444-4444-4444-4444-444444444444"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	args := m.Called(ctx, req)
	return bookingOrNil(args.Get(0)), args.Error(1)
}

func (m *mockService) GetByID(ctx context.Context, actorID, id string) (*booking.Booking, error) {
	args := m.Called(ctx, actorID, id)
	return bookingOrNil(args.Get(0)), args.Error(1)
}

func (m *mockService) List(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*booking.Booking), args.Int(1), args.Error(2)
}

func (m *mockService) Dashboard(ctx context.Context, trainerID string) (*booking.Dashboard, error) {
	args := m.Called(ctx, trainerID)
	d, _ := args.Get(0).(*booking.Dashboard)
	return d, args.Error(1)
}

func (m *mockService) Confirm(ctx context.Context, actorID, id, message string) (*booking.Booking, error) {
	args := m.Called(ctx, actorID, id, message)
	return bookingOrNil(args.Get(0)), args.Error(1)
}

func (m *mockService) EditAndConfirm(ctx context.Context, actorID, id string, req booking.RescheduleRequest) (*booking.Booking, error) {
	args := m.Called(ctx, actorID, id, req)
	return bookingOrNil(args.Get(0)), args.Error(1)
}

func (m *mockService) UpdateTime(ctx context.Context, actorID, id string, req booking.RescheduleRequest) (*booking.Booking, error) {
	args := m.Called(ctx, actorID, id, req)
	return bookingOrNil(args.Get(0)), args.Error(1)
}

func (m *mockService) ProposeAlternates(ctx context.Context, actorID, id string, req booking.ProposeRequest) (*booking.Booking, *booking.Proposal, error) {
	args := m.Called(ctx, actorID, id, req)
	p, _ := args.Get(1).(*booking.Proposal)
	return bookingOrNil(args.Get(0)), p, args.Error(2)
}

func (m *mockService) ChangeStatus(ctx context.Context, actorID, id, to, message string) (*booking.Booking, error) {
	args := m.Called(ctx, actorID, id, to, message)
	return bookingOrNil(args.Get(0)), args.Error(1)
}

func bookingOrNil(v any) *booking.Booking {
	b, _ := v.(*booking.Booking)
	return b
}

type stubResolver struct{}

func (stubResolver) GetByExternalID(_ context.Context, externalID string) (*profile.Profile, error) {
	switch externalID {
	case "user_trainer":
		return &profile.Profile{ID: trainerProfileID, ExternalID: externalID, IsTrainer: true}, nil
	case "user_client":
		return &profile.Profile{ID: clientProfileID, ExternalID: externalID}, nil
	}
	return nil, profile.ErrNotFound
}

func setupRouter(t *testing.T, svc booking.Service) (*gin.Engine, *auth.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtManager := auth.NewJWTManager("test-secret", time.Minute)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc, zap.NewNop()),
		auth.AuthRequired(jwtManager),
		auth.RequireProfile(stubResolver{}, zap.NewNop()),
	)
	return r, jwtManager
}

func doRequest(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func confirmedBooking() *booking.Booking {
	return &booking.Booking{
		ID:          bookingID,
		TrainerID:   trainerProfileID,
		SessionType: session.TypeFullSession,
		Duration:    session.Minutes90,
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "2:00 PM",
		EndTime:     "3:30 PM",
		Status:      booking.StatusConfirmed,
		Version:     2,
	}
}

func TestEditAndConfirmHandler(t *testing.T) {
	svc := &mockService{}
	r, jwtManager := setupRouter(t, svc)
	token, err := jwtManager.GenerateAccessToken("user_trainer", "tess@example.com")
	require.NoError(t, err)

	svc.On("EditAndConfirm", mock.Anything, trainerProfileID, bookingID, booking.RescheduleRequest{
		Date: "2025-03-10", StartTime: "2:00 PM",
	}).Return(confirmedBooking(), nil).Once()

	w := doRequest(r, http.MethodPatch, "/v1/dashboard/"+bookingID+"/edit-and-confirm",
		RescheduleRequest{Date: "2025-03-10", StartTime: "2:00 PM"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CONFIRMED", resp.Status)
	assert.Equal(t, "3:30 PM", resp.EndTime)
	assert.Equal(t, "2025-03-10", resp.Date)
	svc.AssertExpectations(t)
}

func TestHandlerErrorMapping(t *testing.T) {
	svc := &mockService{}
	r, jwtManager := setupRouter(t, svc)
	token, _ := jwtManager.GenerateAccessToken("user_trainer", "")

	svc.On("ChangeStatus", mock.Anything, trainerProfileID, bookingID, "PENDING", "").
		Return(nil, booking.InvalidTransitionError(booking.StatusCompleted, booking.StatusPending)).Once()
	w := doRequest(r, http.MethodPatch, "/v1/dashboard/"+bookingID+"/status", ChangeStatusRequest{Status: "PENDING"}, token)
	assert.Equal(t, http.StatusConflict, w.Code)

	svc.On("Confirm", mock.Anything, trainerProfileID, bookingID, "").Return(nil, booking.ErrUnauthorized).Once()
	w = doRequest(r, http.MethodPost, "/v1/dashboard/"+bookingID+"/confirm", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	svc.On("UpdateTime", mock.Anything, trainerProfileID, bookingID, mock.Anything).Return(nil, booking.ErrNotFound).Once()
	w = doRequest(r, http.MethodPatch, "/v1/dashboard/"+bookingID+"/update-time",
		RescheduleRequest{Date: "2025-03-10", StartTime: "9:00 AM"}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	svc.On("Confirm", mock.Anything, trainerProfileID, bookingID, "ok").Return(nil, assert.AnError).Once()
	w = doRequest(r, http.MethodPost, "/v1/dashboard/"+bookingID+"/confirm", ConfirmRequest{Message: "ok"}, token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())

	svc.AssertExpectations(t)
}

func TestHandlerRejectsBadInput(t *testing.T) {
	svc := &mockService{}
	r, jwtManager := setupRouter(t, svc)
	token, _ := jwtManager.GenerateAccessToken("user_trainer", "")

	w := doRequest(r, http.MethodPost, "/v1/dashboard/not-a-uuid/confirm", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPatch, "/v1/dashboard/"+bookingID+"/status", ChangeStatusRequest{}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/v1/dashboard/"+bookingID+"/propose-alternate-time", ProposeAlternatesRequest{}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	svc.AssertNotCalled(t, "ChangeStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeStatusHandler_StatusCheckedByService(t *testing.T) {
	svc := &mockService{}
	r, jwtManager := setupRouter(t, svc)
	token, _ := jwtManager.GenerateAccessToken("user_trainer", "")

	svc.On("ChangeStatus", mock.Anything, trainerProfileID, bookingID, "ARCHIVED", "").
		Return(nil, booking.ErrUnauthorized).Once()
	w := doRequest(r, http.MethodPatch, "/v1/dashboard/"+bookingID+"/status", ChangeStatusRequest{Status: "ARCHIVED"}, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	svc.On("ChangeStatus", mock.Anything, trainerProfileID, bookingID, "archived", "").
		Return(nil, booking.ErrInvalidStatus).Once()
	w = doRequest(r, http.MethodPatch, "/v1/dashboard/"+bookingID+"/status", ChangeStatusRequest{Status: "archived"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}

func TestHandlerRequiresAuth(t *testing.T) {
	svc := &mockService{}
	r, jwtManager := setupRouter(t, svc)

	w := doRequest(r, http.MethodGet, "/v1/dashboard", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/v1/dashboard", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, _ := jwtManager.GenerateAccessToken("user_without_profile", "")
	w = doRequest(r, http.MethodGet, "/v1/dashboard", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProposeAlternatesHandler(t *testing.T) {
	svc := &mockService{}
	r, jwtManager := setupRouter(t, svc)
	token, _ := jwtManager.GenerateAccessToken("user_trainer", "")

	pending := confirmedBooking()
	pending.Status = booking.StatusPending
	proposal := &booking.Proposal{
		Lines: []string{"- Monday, March 10, 2025 from 2:00 PM to 3:30 PM"},
		Note:  booking.NoteEntry{At: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Summary: "Proposed alternative times:"},
	}

	svc.On("ProposeAlternates", mock.Anything, trainerProfileID, bookingID, booking.ProposeRequest{
		AlternativeTimes: []booking.AlternativeTime{{Date: "2025-03-10", StartTime: "14:00"}},
		Message:          "Monday?",
	}).Return(pending, proposal, nil).Once()

	w := doRequest(r, http.MethodPost, "/v1/dashboard/"+bookingID+"/propose-alternate-time", ProposeAlternatesRequest{
		AlternativeTimes: []AlternativeTimeRequest{{Date: "2025-03-10", StartTime: "14:00"}},
		Message:          "Monday?",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ProposeAlternatesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PENDING", resp.Booking.Status)
	assert.Equal(t, proposal.Lines, resp.AlternativeTimes)
	svc.AssertExpectations(t)
}

func TestDashboardHandler(t *testing.T) {
	svc := &mockService{}
	r, jwtManager := setupRouter(t, svc)
	token, _ := jwtManager.GenerateAccessToken("user_trainer", "")

	b := confirmedBooking()
	svc.On("Dashboard", mock.Anything, trainerProfileID).Return(booking.GroupForDashboard([]*booking.Booking{b}, b.Date), nil).Once()

	w := doRequest(r, http.MethodGet, "/v1/dashboard", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Confirmed, 1)
	assert.Len(t, resp.All, 1)
	assert.Empty(t, resp.Pending)

	clientToken, _ := jwtManager.GenerateAccessToken("user_client", "")
	w = doRequest(r, http.MethodGet, "/v1/dashboard", nil, clientToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNumberOfCalls(t, "Dashboard", 1)
}

func TestListHandler(t *testing.T) {
	svc := &mockService{}
	r, jwtManager := setupRouter(t, svc)
	token, _ := jwtManager.GenerateAccessToken("user_trainer", "")

	svc.On("List", mock.Anything, booking.Filter{
		TrainerID: trainerProfileID,
		Status:    booking.StatusConfirmed,
		Page:      2,
		PageSize:  5,
	}).Return([]*booking.Booking{confirmedBooking()}, 6, nil).Once()

	w := doRequest(r, http.MethodGet, "/v1/bookings?role=trainer&status=CONFIRMED&page=2&page_size=5", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Items    []BookingResponse `json:"items"`
		Page     int               `json:"page"`
		PageSize int               `json:"page_size"`
		Total    int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, bookingID, resp.Items[0].ID)
	assert.Equal(t, 6, resp.Total)
	assert.Equal(t, 2, resp.Page)

	// Trainers default to their own sessions.
	svc.On("List", mock.Anything, booking.Filter{
		TrainerID: trainerProfileID,
		Page:      1,
		PageSize:  20,
	}).Return([]*booking.Booking{}, 0, nil).Once()
	w = doRequest(r, http.MethodGet, "/v1/bookings", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)

	// Trainers can still list what they booked as a client.
	svc.On("List", mock.Anything, booking.Filter{
		ClientID: trainerProfileID,
		Page:     1,
		PageSize: 20,
	}).Return([]*booking.Booking{}, 0, nil).Once()
	w = doRequest(r, http.MethodGet, "/v1/bookings?role=client", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	// Clients default to their bookings.
	clientToken, _ := jwtManager.GenerateAccessToken("user_client", "")
	svc.On("List", mock.Anything, booking.Filter{
		ClientID: clientProfileID,
		Page:     1,
		PageSize: 20,
	}).Return([]*booking.Booking{}, 0, nil).Once()
	w = doRequest(r, http.MethodGet, "/v1/bookings", nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/v1/bookings?role=admin", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}
