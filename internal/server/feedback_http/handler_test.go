package feedback_http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"feedback_service/internal/domain"
	"feedback_service/internal/repository"
	"feedback_service/internal/service"
	"feedback_service/internal/service/mocks"
	"feedback_service/internal/testutils"
	"feedback_service/pkg/logger"
)

type stubBundleLoader struct {
	bundle *domain.SessionBundle
	err    error
	calls  int
}

func (s *stubBundleLoader) LoadBundle(_ context.Context, _, _ string) (*domain.SessionBundle, error) {
	s.calls++
	return s.bundle, s.err
}

func testBundle() *domain.SessionBundle {
	return &domain.SessionBundle{
		CourseID:    "course-1",
		SessionName: "First session",
		Questions: []domain.Question{
			{
				ID:            "q1",
				CourseID:      "course-1",
				Index:         1,
				GiverType:     domain.ParticipantStudents,
				RecipientType: domain.ParticipantStudents,
				MaxRecipients: domain.UnlimitedRecipients,
			},
		},
		RecipientsByQuestion: map[string]domain.RecipientList{
			"q1": {{ID: "bob@example.com", Name: "Bob"}},
		},
		ResponsesByQuestion: map[string][]domain.Response{},
		CommentsByResponse:  map[string][]*domain.Comment{},
		Roster: domain.Roster{
			StudentsByEmail:    map[string]domain.Student{},
			InstructorsByEmail: map[string]domain.Instructor{},
		},
	}
}

func setup(t *testing.T) (*FeedbackHandler, *stubBundleLoader, *testutils.MockCache, *mocks.MockCommentRepository, *mocks.MockIndexProducer) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCommentRepository(ctrl)
	producer := mocks.NewMockIndexProducer(ctrl)
	loader := &stubBundleLoader{bundle: testBundle()}
	cache := new(testutils.MockCache)

	log := logger.New()
	handler := NewFeedbackHandler(
		loader,
		service.NewSubmissionService(),
		service.NewCommentService(repo, producer, "comment-index", log),
		cache,
		5*time.Minute,
		log,
	)
	return handler, loader, cache, repo, producer
}

func serve(handler *FeedbackHandler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)
	return rec
}

func TestGetSubmissionPage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, loader, cache, _, _ := setup(t)
		cache.On("Get", mock.Anything, mock.Anything).Return(nil, false)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, 5*time.Minute).Return()

		req := httptest.NewRequest(http.MethodGet,
			"/courses/course-1/sessions/First%20session/submission?account_email=alice@example.com&account_name=Alice", nil)
		rec := serve(handler, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, loader.calls)

		var page submissionPageResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Equal(t, "course-1", page.CourseID)
		require.Len(t, page.Questions, 1)
		assert.Len(t, page.Questions[0].Rows, 1)
		cache.AssertExpectations(t)
	})

	t.Run("CacheHitSkipsLoad", func(t *testing.T) {
		handler, loader, cache, _, _ := setup(t)
		cached := []byte(`{"course_id":"course-1"}`)
		cache.On("Get", mock.Anything, mock.Anything).Return(cached, true)

		req := httptest.NewRequest(http.MethodGet,
			"/courses/course-1/sessions/First%20session/submission", nil)
		rec := serve(handler, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, cached, rec.Body.Bytes())
		assert.Equal(t, 0, loader.calls)
	})

	t.Run("UnknownMode", func(t *testing.T) {
		handler, _, _, _, _ := setup(t)

		req := httptest.NewRequest(http.MethodGet,
			"/courses/course-1/sessions/First%20session/submission?mode=SPECTATE", nil)
		rec := serve(handler, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("SessionNotFound", func(t *testing.T) {
		handler, loader, cache, _, _ := setup(t)
		loader.bundle = nil
		loader.err = repository.ErrNotFound
		cache.On("Get", mock.Anything, mock.Anything).Return(nil, false)

		req := httptest.NewRequest(http.MethodGet,
			"/courses/course-1/sessions/Missing/submission", nil)
		rec := serve(handler, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCreateComment(t *testing.T) {
	t.Run("RespondentComment", func(t *testing.T) {
		handler, _, cache, repo, producer := setup(t)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		producer.EXPECT().Send(gomock.Any(), "comment-index", gomock.Any()).Return(nil)
		cache.On("Delete", mock.Anything, mock.Anything).Return()

		body, _ := json.Marshal(createCommentRequest{
			CourseID:        "course-1",
			SessionName:     "First session",
			QuestionID:      "q1",
			ResponseID:      "r1",
			Giver:           "alice@example.com",
			GiverType:       "STUDENTS",
			Text:            "Well argued",
			FromParticipant: true,
		})
		req := httptest.NewRequest(http.MethodPost, "/comments", bytes.NewReader(body))
		rec := serve(handler, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var payload commentPayload
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, "Well argued", payload.Text)
		assert.True(t, payload.FromParticipant)
		assert.Equal(t, "GIVER,INSTRUCTORS", payload.ShowCommentTo)
	})

	t.Run("UnknownGiverType", func(t *testing.T) {
		handler, _, _, _, _ := setup(t)

		body, _ := json.Marshal(createCommentRequest{
			CourseID:    "course-1",
			SessionName: "First session",
			Giver:       "alice@example.com",
			GiverType:   "SOMEBODY",
			Text:        "Well argued",
		})
		req := httptest.NewRequest(http.MethodPost, "/comments", bytes.NewReader(body))
		rec := serve(handler, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InvalidBody", func(t *testing.T) {
		handler, _, _, _, _ := setup(t)

		req := httptest.NewRequest(http.MethodPost, "/comments", bytes.NewReader([]byte("{")))
		rec := serve(handler, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateComment(t *testing.T) {
	t.Run("InvalidID", func(t *testing.T) {
		handler, _, _, _, _ := setup(t)

		body, _ := json.Marshal(updateCommentRequest{Text: "Updated"})
		req := httptest.NewRequest(http.MethodPatch, "/comments/not-a-uuid", bytes.NewReader(body))
		rec := serve(handler, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("EmptyText", func(t *testing.T) {
		handler, _, _, _, _ := setup(t)

		body, _ := json.Marshal(updateCommentRequest{Text: "   "})
		req := httptest.NewRequest(http.MethodPatch,
			"/comments/018f3a2b-0000-7000-8000-000000000000", bytes.NewReader(body))
		rec := serve(handler, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
