package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"feedback_service/internal/domain"
	"feedback_service/internal/repository"
	"feedback_service/internal/service/mocks"
	"feedback_service/pkg/logger"
)

const testIndexTopic = "comment-index"

func setupCommentService(t *testing.T) (CommentServiceInterface, *mocks.MockCommentRepository, *mocks.MockIndexProducer) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCommentRepository(ctrl)
	producer := mocks.NewMockIndexProducer(ctrl)

	svc := NewCommentService(repo, producer, testIndexTopic, logger.New())
	return svc, repo, producer
}

func storedComment(t *testing.T) *domain.Comment {
	t.Helper()

	comment, err := domain.NewComment("course-1", "First session", "alice@example.com", "Original text", domain.CommentOptions{
		QuestionID:      "q1",
		ResponseID:      "r1",
		FromParticipant: true,
		CreatedAt:       time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	comment.ID = uuid.New()
	return comment
}

func TestCreateRespondentComment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, repo, producer := setupCommentService(t)

		repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		producer.EXPECT().Send(ctx, testIndexTopic, gomock.Any()).Return(nil)

		comment, err := svc.CreateRespondentComment(ctx, CreateCommentInput{
			CourseID:    "course-1",
			SessionName: "First session",
			QuestionID:  "q1",
			ResponseID:  "r1",
			Giver:       "alice@example.com",
			GiverType:   domain.ParticipantStudents,
			Text:        "Well reasoned",
		})
		require.NoError(t, err)

		assert.True(t, comment.FromParticipant)
		for _, role := range []domain.ParticipantType{domain.ParticipantGiver, domain.ParticipantInstructors} {
			assert.True(t, comment.IsVisibleTo(role), string(role))
			assert.True(t, comment.IsGiverVisibleTo(role), string(role))
		}
	})

	t.Run("MissingRequiredField", func(t *testing.T) {
		svc, _, _ := setupCommentService(t)

		_, err := svc.CreateRespondentComment(ctx, CreateCommentInput{
			CourseID:    "course-1",
			SessionName: "First session",
			Giver:       "alice@example.com",
		})
		assert.ErrorIs(t, err, domain.ErrRequiredFieldMissing)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		svc, repo, _ := setupCommentService(t)

		repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("db down"))

		_, err := svc.CreateRespondentComment(ctx, CreateCommentInput{
			CourseID:    "course-1",
			SessionName: "First session",
			Giver:       "alice@example.com",
			Text:        "Well reasoned",
		})
		assert.Error(t, err)
	})
}

func TestCreateInstructorComment(t *testing.T) {
	ctx := context.Background()

	t.Run("ParsesVisibility", func(t *testing.T) {
		svc, repo, producer := setupCommentService(t)

		repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		producer.EXPECT().Send(ctx, testIndexTopic, gomock.Any()).Return(nil)

		comment, err := svc.CreateInstructorComment(ctx, CreateCommentInput{
			CourseID:    "course-1",
			SessionName: "First session",
			Giver:       "inst@example.com",
			GiverType:   domain.ParticipantInstructors,
			Text:        "Follow up with the team",
		}, "GIVER,RECEIVER,INSTRUCTORS", "INSTRUCTORS")
		require.NoError(t, err)

		assert.False(t, comment.FromParticipant)
		assert.True(t, comment.IsVisibleTo(domain.ParticipantReceiver))
		assert.False(t, comment.IsGiverVisibleTo(domain.ParticipantReceiver))
	})

	t.Run("UnknownRole", func(t *testing.T) {
		svc, _, _ := setupCommentService(t)

		_, err := svc.CreateInstructorComment(ctx, CreateCommentInput{
			CourseID:    "course-1",
			SessionName: "First session",
			Giver:       "inst@example.com",
			Text:        "Follow up with the team",
		}, "EVERYONE", "")
		assert.ErrorIs(t, err, domain.ErrUnknownParticipantType)
	})
}

func TestApplyEdit(t *testing.T) {
	ctx := context.Background()
	editedAt := time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		svc, repo, producer := setupCommentService(t)
		existing := storedComment(t)

		repo.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)
		repo.EXPECT().Update(ctx, existing).Return(nil)
		producer.EXPECT().Send(ctx, testIndexTopic, gomock.Any()).Return(nil)

		comment, err := svc.ApplyEdit(ctx, EditCommentInput{
			CommentID:       existing.ID,
			Text:            "Updated text",
			ShowCommentTo:   "GIVER,INSTRUCTORS",
			ShowGiverNameTo: "INSTRUCTORS",
			EditorEmail:     "inst@example.com",
			Now:             editedAt,
		})
		require.NoError(t, err)

		assert.Equal(t, "Updated text", comment.Text)
		assert.Equal(t, "inst@example.com", comment.LastEditorEmail)
		assert.Equal(t, editedAt, comment.LastEditedAt)
		assert.True(t, comment.IsVisibleTo(domain.ParticipantGiver))
		assert.False(t, comment.IsGiverVisibleTo(domain.ParticipantGiver))
	})

	t.Run("EmptyTextRejectedBeforeLoad", func(t *testing.T) {
		svc, _, _ := setupCommentService(t)

		_, err := svc.ApplyEdit(ctx, EditCommentInput{
			CommentID: uuid.New(),
			Text:      "   \n\t  ",
			Now:       editedAt,
		})
		assert.ErrorIs(t, err, ErrEmptyCommentText)
	})

	t.Run("UnknownRoleRejectedBeforeLoad", func(t *testing.T) {
		svc, _, _ := setupCommentService(t)

		_, err := svc.ApplyEdit(ctx, EditCommentInput{
			CommentID:     uuid.New(),
			Text:          "Updated text",
			ShowCommentTo: "GIVER,EVERYONE",
			Now:           editedAt,
		})
		assert.ErrorIs(t, err, domain.ErrUnknownParticipantType)
	})

	t.Run("CommentNotFound", func(t *testing.T) {
		svc, repo, _ := setupCommentService(t)
		id := uuid.New()

		repo.EXPECT().GetByID(ctx, id).Return(nil, repository.ErrNotFound)

		_, err := svc.ApplyEdit(ctx, EditCommentInput{
			CommentID: id,
			Text:      "Updated text",
			Now:       editedAt,
		})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("EditTimeClampedToCreation", func(t *testing.T) {
		svc, repo, producer := setupCommentService(t)
		existing := storedComment(t)

		repo.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)
		repo.EXPECT().Update(ctx, existing).Return(nil)
		producer.EXPECT().Send(ctx, testIndexTopic, gomock.Any()).Return(nil)

		comment, err := svc.ApplyEdit(ctx, EditCommentInput{
			CommentID:   existing.ID,
			Text:        "Updated text",
			EditorEmail: "alice@example.com",
			Now:         existing.CreatedAt.Add(-time.Hour),
		})
		require.NoError(t, err)
		assert.Equal(t, existing.CreatedAt, comment.LastEditedAt)
	})

	t.Run("UpdateFailurePropagates", func(t *testing.T) {
		svc, repo, _ := setupCommentService(t)
		existing := storedComment(t)

		repo.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)
		repo.EXPECT().Update(ctx, existing).Return(errors.New("db down"))

		_, err := svc.ApplyEdit(ctx, EditCommentInput{
			CommentID: existing.ID,
			Text:      "Updated text",
			Now:       editedAt,
		})
		assert.Error(t, err)
	})

	t.Run("IndexFailureStillSucceeds", func(t *testing.T) {
		svc, repo, producer := setupCommentService(t)
		existing := storedComment(t)

		repo.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)
		repo.EXPECT().Update(ctx, existing).Return(nil)
		producer.EXPECT().Send(ctx, testIndexTopic, gomock.Any()).Return(errors.New("broker unreachable"))

		comment, err := svc.ApplyEdit(ctx, EditCommentInput{
			CommentID: existing.ID,
			Text:      "Updated text",
			Now:       editedAt,
		})
		require.NoError(t, err)
		assert.Equal(t, "Updated text", comment.Text)
	})
}

func TestEditedCommentDetails(t *testing.T) {
	comment := storedComment(t)
	comment.LastEditedAt = time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC)

	t.Run("NamedGiver", func(t *testing.T) {
		details := EditedCommentDetails(comment, "Alice", "Dr Lee")
		assert.Equal(t,
			"From: Alice [Mon, 10 Mar 2025, 09:00 AM UTC] (last edited by Dr Lee at Tue, 11 Mar 2025, 02:30 PM UTC)",
			details,
		)
	})

	t.Run("AnonymousGiverHidesEditor", func(t *testing.T) {
		details := EditedCommentDetails(comment, AnonymousDisplayName, "Dr Lee")
		assert.Equal(t,
			"From: Anonymous [Mon, 10 Mar 2025, 09:00 AM UTC] (last edited at Tue, 11 Mar 2025, 02:30 PM UTC)",
			details,
		)
	})
}
