package feedback_http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"feedback_service/internal/domain"
	"feedback_service/internal/repository"
	"feedback_service/internal/service"
	"feedback_service/pkg/logger"
)

// BundleLoader fetches the full session bundle backing one submission page.
type BundleLoader interface {
	LoadBundle(ctx context.Context, courseID, sessionName string) (*domain.SessionBundle, error)
}

// Cache keeps assembled pages hot between identical requests.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

type FeedbackHandler struct {
	bundles    BundleLoader
	submission *service.SubmissionService
	comments   service.CommentServiceInterface
	cache      Cache
	pageTTL    time.Duration
	logger     *logger.Logger
}

func NewFeedbackHandler(
	bundles BundleLoader,
	submission *service.SubmissionService,
	comments service.CommentServiceInterface,
	cache Cache,
	pageTTL time.Duration,
	logger *logger.Logger,
) *FeedbackHandler {
	return &FeedbackHandler{
		bundles:    bundles,
		submission: submission,
		comments:   comments,
		cache:      cache,
		pageTTL:    pageTTL,
		logger:     logger,
	}
}

func (h *FeedbackHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/courses/{course_id}/sessions/{session_name}/submission", h.GetSubmissionPage)
	r.Post("/comments", h.CreateComment)
	r.Patch("/comments/{comment_id}", h.UpdateComment)
	r.Get("/comments/{comment_id}", h.GetComment)

	return r
}

type submissionPageResponse struct {
	CourseID    string                `json:"course_id"`
	SessionName string                `json:"session_name"`
	Questions   []domain.QuestionRows `json:"questions"`
}

// GetSubmissionPage assembles the submission form for a viewer. The mode,
// viewer identity and view-as target come from query parameters; auth happens
// upstream at the gateway.
func (h *FeedbackHandler) GetSubmissionPage(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "course_id")
	sessionName := chi.URLParam(r, "session_name")

	mode := service.ModeSubmission
	switch r.URL.Query().Get("mode") {
	case "", string(service.ModeSubmission):
	case string(service.ModeModeration):
		mode = service.ModeModeration
	case string(service.ModePreview):
		mode = service.ModePreview
	default:
		h.writeError(w, http.StatusBadRequest, "unknown mode")
		return
	}

	viewer := service.Viewer{
		AccountEmail:          r.URL.Query().Get("account_email"),
		AccountName:           r.URL.Query().Get("account_name"),
		StudentEmail:          r.URL.Query().Get("student_email"),
		PreviewInstructorName: r.URL.Query().Get("preview_as"),
	}

	cacheKey := pageCacheKey(courseID, sessionName, mode, viewer.AccountEmail, viewer.StudentEmail)
	if cached, ok := h.cache.Get(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(cached)
		return
	}

	bundle, err := h.bundles.LoadBundle(r.Context(), courseID, sessionName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "session not found")
			return
		}
		h.logger.Error("failed to load session bundle", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	questions, err := h.submission.AssemblePage(bundle, viewer, mode)
	if err != nil {
		h.logger.Error("failed to assemble submission page", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	payload, err := json.Marshal(submissionPageResponse{
		CourseID:    courseID,
		SessionName: sessionName,
		Questions:   questions,
	})
	if err != nil {
		h.logger.Error("failed to encode submission page", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.cache.Set(r.Context(), cacheKey, payload, h.pageTTL)

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}

type createCommentRequest struct {
	CourseID        string `json:"course_id"`
	SessionName     string `json:"session_name"`
	QuestionID      string `json:"question_id"`
	ResponseID      string `json:"response_id"`
	Giver           string `json:"giver"`
	GiverType       string `json:"giver_type"`
	Text            string `json:"text"`
	GiverSection    string `json:"giver_section"`
	ReceiverSection string `json:"receiver_section"`
	FromParticipant bool   `json:"from_participant"`
	ShowCommentTo   string `json:"show_comment_to"`
	ShowGiverNameTo string `json:"show_giver_name_to"`
}

func (h *FeedbackHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	giverType, err := domain.ParseParticipantType(req.GiverType)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	in := service.CreateCommentInput{
		CourseID:        req.CourseID,
		SessionName:     req.SessionName,
		QuestionID:      req.QuestionID,
		ResponseID:      req.ResponseID,
		Giver:           req.Giver,
		GiverType:       giverType,
		Text:            req.Text,
		GiverSection:    req.GiverSection,
		ReceiverSection: req.ReceiverSection,
	}

	var comment *domain.Comment
	if req.FromParticipant {
		comment, err = h.comments.CreateRespondentComment(r.Context(), in)
	} else {
		comment, err = h.comments.CreateInstructorComment(r.Context(), in, req.ShowCommentTo, req.ShowGiverNameTo)
	}
	if err != nil {
		h.writeCommentError(w, err)
		return
	}

	h.invalidatePage(r.Context(), req.CourseID, req.SessionName, req.Giver)
	h.writeJSON(w, http.StatusCreated, commentResponse(comment))
}

type updateCommentRequest struct {
	Text            string `json:"text"`
	ShowCommentTo   string `json:"show_comment_to"`
	ShowGiverNameTo string `json:"show_giver_name_to"`
	EditorEmail     string `json:"editor_email"`
}

func (h *FeedbackHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := uuid.Parse(chi.URLParam(r, "comment_id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	var req updateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.comments.ApplyEdit(r.Context(), service.EditCommentInput{
		CommentID:       commentID,
		Text:            req.Text,
		ShowCommentTo:   req.ShowCommentTo,
		ShowGiverNameTo: req.ShowGiverNameTo,
		EditorEmail:     req.EditorEmail,
		Now:             time.Now().UTC(),
	})
	if err != nil {
		h.writeCommentError(w, err)
		return
	}

	h.invalidatePage(r.Context(), comment.CourseID, comment.SessionName, req.EditorEmail)
	h.writeJSON(w, http.StatusOK, commentResponse(comment))
}

func (h *FeedbackHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := uuid.Parse(chi.URLParam(r, "comment_id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	comment, err := h.comments.GetComment(r.Context(), commentID)
	if err != nil {
		h.writeCommentError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, commentResponse(comment))
}

type commentPayload struct {
	ID                        string    `json:"id"`
	CourseID                  string    `json:"course_id"`
	SessionName               string    `json:"session_name"`
	QuestionID                string    `json:"question_id"`
	ResponseID                string    `json:"response_id"`
	Giver                     string    `json:"giver"`
	GiverType                 string    `json:"giver_type"`
	Text                      string    `json:"text"`
	ShowCommentTo             string    `json:"show_comment_to"`
	ShowGiverNameTo           string    `json:"show_giver_name_to"`
	VisibilityFollowsQuestion bool      `json:"visibility_follows_question"`
	FromParticipant           bool      `json:"from_participant"`
	GiverSection              string    `json:"giver_section"`
	ReceiverSection           string    `json:"receiver_section"`
	CreatedAt                 time.Time `json:"created_at"`
	LastEditorEmail           string    `json:"last_editor_email"`
	LastEditedAt              time.Time `json:"last_edited_at"`
}

func commentResponse(c *domain.Comment) commentPayload {
	return commentPayload{
		ID:                        c.ID.String(),
		CourseID:                  c.CourseID,
		SessionName:               c.SessionName,
		QuestionID:                c.QuestionID,
		ResponseID:                c.ResponseID,
		Giver:                     c.Giver,
		GiverType:                 string(c.GiverType),
		Text:                      c.Text,
		ShowCommentTo:             domain.FormatParticipantTypeList(c.ShowCommentTo),
		ShowGiverNameTo:           domain.FormatParticipantTypeList(c.ShowGiverNameTo),
		VisibilityFollowsQuestion: c.VisibilityFollowsQuestion,
		FromParticipant:           c.FromParticipant,
		GiverSection:              c.GiverSection,
		ReceiverSection:           c.ReceiverSection,
		CreatedAt:                 c.CreatedAt,
		LastEditorEmail:           c.LastEditorEmail,
		LastEditedAt:              c.LastEditedAt,
	}
}

// writeCommentError maps comment service failures onto HTTP statuses.
// Validation problems are reported verbatim; anything else stays generic.
func (h *FeedbackHandler) writeCommentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyCommentText),
		errors.Is(err, domain.ErrRequiredFieldMissing),
		errors.Is(err, domain.ErrUnknownParticipantType):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrCommentNotFound):
		h.writeError(w, http.StatusNotFound, "comment not found")
	default:
		h.logger.Error("comment operation failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// invalidatePage drops the writer's own cached submission page. Keys are
// viewer-scoped, so other viewers' variants age out with the TTL instead.
func (h *FeedbackHandler) invalidatePage(ctx context.Context, courseID, sessionName, accountEmail string) {
	h.cache.Delete(ctx, pageCacheKey(courseID, sessionName, service.ModeSubmission, accountEmail, ""))
}

func pageCacheKey(courseID, sessionName string, mode service.Mode, accountEmail, studentEmail string) string {
	return fmt.Sprintf("submission:%s:%s:%s:%s:%s", courseID, sessionName, mode, accountEmail, studentEmail)
}

func (h *FeedbackHandler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *FeedbackHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
