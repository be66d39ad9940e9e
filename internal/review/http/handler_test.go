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
	"github.com/nekogravitycat/trainer-booking-backend/internal/profile"
	"github.com/nekogravitycat/trainer-booking-backend/internal/review"
)

const (
	trainerID = "11111111-1111-1111-1111-111111111111"
	clientID  = "22222222-2222-2222-2222-222222222222"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, req review.CreateRequest) (*review.Review, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*review.Review)
	return r, args.Error(1)
}

func (m *mockService) ListByTrainer(ctx context.Context, trainerID string) ([]*review.Review, review.Summary, error) {
	args := m.Called(ctx, trainerID)
	reviews, _ := args.Get(0).([]*review.Review)
	return reviews, args.Get(1).(review.Summary), args.Error(2)
}

func (m *mockService) Eligible(ctx context.Context, clientID, trainerID string) (bool, error) {
	args := m.Called(ctx, clientID, trainerID)
	return args.Bool(0), args.Error(1)
}

type stubResolver struct{}

func (stubResolver) GetByExternalID(_ context.Context, externalID string) (*profile.Profile, error) {
	if externalID == "user_client" {
		return &profile.Profile{ID: clientID, ExternalID: externalID}, nil
	}
	return nil, profile.ErrNotFound
}

func setup(t *testing.T, svc review.Service) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtManager := auth.NewJWTManager("test-secret", time.Minute)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc, zap.NewNop()),
		auth.AuthRequired(jwtManager),
		auth.RequireProfile(stubResolver{}, zap.NewNop()),
	)

	token, err := jwtManager.GenerateAccessToken("user_client", "cody@example.com")
	require.NoError(t, err)
	return r, token
}

func send(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListReviews(t *testing.T) {
	comment := "Pushed me hard"
	svc := &mockService{}
	svc.On("ListByTrainer", mock.Anything, trainerID).Return([]*review.Review{
		{
			ID:          "r1",
			BookingID:   "b1",
			Rating:      5,
			Comment:     &comment,
			ClientName:  "Cody",
			SessionDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		},
	}, review.Summary{Count: 1, Average: 5}, nil)
	r, _ := setup(t, svc)

	w := send(r, http.MethodGet, "/v1/trainers/"+trainerID+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ReviewListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, trainerID, resp.TrainerID)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 5.0, resp.AverageRating)
	require.Len(t, resp.Reviews, 1)
	assert.Equal(t, "Cody", resp.Reviews[0].ClientName)
	assert.Equal(t, "2025-03-14", resp.Reviews[0].SessionDate)

	w = send(r, http.MethodGet, "/v1/trainers/not-a-uuid/reviews", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListReviews_UnknownTrainer(t *testing.T) {
	svc := &mockService{}
	svc.On("ListByTrainer", mock.Anything, clientID).Return(nil, review.Summary{}, review.ErrTrainerNotFound)
	r, _ := setup(t, svc)

	w := send(r, http.MethodGet, "/v1/trainers/"+clientID+"/reviews", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateReview(t *testing.T) {
	comment := "Great"
	want := review.CreateRequest{ClientID: clientID, TrainerID: trainerID, Rating: 4, Comment: &comment}

	svc := &mockService{}
	svc.On("Create", mock.Anything, want).Return(&review.Review{ID: "r1", BookingID: "b1", Rating: 4, Comment: &comment}, nil).Once()
	r, token := setup(t, svc)

	body := CreateReviewRequest{Rating: 4, Comment: &comment}

	w := send(r, http.MethodPost, "/v1/trainers/"+trainerID+"/reviews", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = send(r, http.MethodPost, "/v1/trainers/"+trainerID+"/reviews", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp ReviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "b1", resp.BookingID)
	assert.Equal(t, 4, resp.Rating)
	svc.AssertExpectations(t)
}

func TestCreateReview_Errors(t *testing.T) {
	svc := &mockService{}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req review.CreateRequest) bool { return req.Rating == 9 })).
		Return(nil, review.ErrInvalidRating)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req review.CreateRequest) bool { return req.Rating == 3 })).
		Return(nil, review.ErrNoEligibleBooking)
	r, token := setup(t, svc)

	w := send(r, http.MethodPost, "/v1/trainers/"+trainerID+"/reviews", token, CreateReviewRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodPost, "/v1/trainers/"+trainerID+"/reviews", token, CreateReviewRequest{Rating: 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodPost, "/v1/trainers/"+trainerID+"/reviews", token, CreateReviewRequest{Rating: 3})
	assert.Equal(t, http.StatusConflict, w.Code)

	svc.AssertNumberOfCalls(t, "Create", 2)
}

func TestReviewEligibility(t *testing.T) {
	svc := &mockService{}
	svc.On("Eligible", mock.Anything, clientID, trainerID).Return(true, nil).Once()
	r, token := setup(t, svc)

	w := send(r, http.MethodGet, "/v1/trainers/"+trainerID+"/reviews/eligibility", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = send(r, http.MethodGet, "/v1/trainers/"+trainerID+"/reviews/eligibility", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp EligibilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.CanReview)
	svc.AssertExpectations(t)
}
