package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"answerhub/internal/model"
	"answerhub/internal/repository"
	repoMocks "answerhub/internal/repository/mocks"
	"answerhub/internal/storage"
	storeMocks "answerhub/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAnswerService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("with file", func(t *testing.T) {
		mFiles := new(storeMocks.MockFileStore)
		mRepo := new(repoMocks.MockAnswerRepository)
		svc := NewAnswerService(mFiles, mRepo)

		r := strings.NewReader("essay body")
		mFiles.On("Save", ctx, "essay.pdf", r).Return(storage.SavedFile{
			Name: "1700000000000-essay.pdf",
			Path: "/tmp/answer-uploads/1700000000000-essay.pdf",
			Size: 10,
		}, nil)
		mRepo.On("Create", ctx, mock.MatchedBy(func(a *model.Answer) bool {
			return a.Title == "Federalism answer" &&
				a.FileName != nil && *a.FileName == "1700000000000-essay.pdf" &&
				a.FilePath != nil && *a.FilePath == "/tmp/answer-uploads/1700000000000-essay.pdf" &&
				a.MimeType != nil && *a.MimeType == "application/pdf"
		})).Return(&model.Answer{ID: "gen-id"}, nil)

		stored, err := svc.Upload(ctx, UploadInput{
			Title:      "Federalism answer",
			Question:   "Discuss fiscal federalism.",
			UploadDate: "2024-02-01",
			GsPaper:    "GS2",
			Source:     "self",
			File:       r,
			FileName:   "essay.pdf",
			MimeType:   "application/pdf",
		})

		require.NoError(t, err)
		assert.Equal(t, "gen-id", stored.ID)
		mFiles.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("without file", func(t *testing.T) {
		mFiles := new(storeMocks.MockFileStore)
		mRepo := new(repoMocks.MockAnswerRepository)
		svc := NewAnswerService(mFiles, mRepo)

		mRepo.On("Create", ctx, mock.MatchedBy(func(a *model.Answer) bool {
			return a.FileName == nil && a.FilePath == nil && a.MimeType == nil
		})).Return(&model.Answer{ID: "gen-id"}, nil)

		_, err := svc.Upload(ctx, UploadInput{Title: "no attachment"})

		require.NoError(t, err)
		mFiles.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		mRepo.AssertExpectations(t)
	})

	t.Run("storage error", func(t *testing.T) {
		mFiles := new(storeMocks.MockFileStore)
		mRepo := new(repoMocks.MockAnswerRepository)
		svc := NewAnswerService(mFiles, mRepo)

		r := strings.NewReader("x")
		mFiles.On("Save", ctx, "a.txt", r).Return(storage.SavedFile{}, errors.New("disk full"))

		_, err := svc.Upload(ctx, UploadInput{File: r, FileName: "a.txt"})

		assert.ErrorContains(t, err, "store upload")
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("persistence error rolls back the payload", func(t *testing.T) {
		mFiles := new(storeMocks.MockFileStore)
		mRepo := new(repoMocks.MockAnswerRepository)
		svc := NewAnswerService(mFiles, mRepo)

		r := strings.NewReader("x")
		mFiles.On("Save", ctx, "a.txt", r).Return(storage.SavedFile{
			Name: "1-a.txt",
			Path: "/tmp/answer-uploads/1-a.txt",
		}, nil)
		mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("write throttled"))
		mFiles.On("Remove", "/tmp/answer-uploads/1-a.txt").Return(nil)

		_, err := svc.Upload(ctx, UploadInput{File: r, FileName: "a.txt"})

		assert.ErrorContains(t, err, "save answer")
		mFiles.AssertExpectations(t)
	})
}

func TestAnswerService_List(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockAnswerRepository)
	svc := NewAnswerService(nil, mRepo)

	expected := []model.Answer{{ID: "1", UploadDate: "2024-02-01"}, {ID: "2", UploadDate: "2024-01-01"}}
	mRepo.On("List", ctx).Return(expected, nil)

	items, err := svc.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, items)
}

func TestAnswerService_Delete(t *testing.T) {
	ctx := context.Background()
	filePath := "/tmp/answer-uploads/1-a.txt"

	t.Run("removes payload and record", func(t *testing.T) {
		mFiles := new(storeMocks.MockFileStore)
		mRepo := new(repoMocks.MockAnswerRepository)
		svc := NewAnswerService(mFiles, mRepo)

		mRepo.On("FindByID", ctx, "a1").Return(&model.Answer{ID: "a1", FilePath: &filePath}, nil)
		mRepo.On("Delete", ctx, "a1").Return(nil)

		removed := make(chan struct{})
		mFiles.On("Remove", filePath).Run(func(mock.Arguments) {
			close(removed)
		}).Return(nil).Once()

		require.NoError(t, svc.Delete(ctx, "a1"))

		select {
		case <-removed:
		case <-time.After(time.Second):
			t.Fatal("payload removal was never attempted")
		}
		mRepo.AssertExpectations(t)
	})

	t.Run("file already gone still deletes the record", func(t *testing.T) {
		mFiles := new(storeMocks.MockFileStore)
		mRepo := new(repoMocks.MockAnswerRepository)
		svc := NewAnswerService(mFiles, mRepo)

		mRepo.On("FindByID", ctx, "a1").Return(&model.Answer{ID: "a1", FilePath: &filePath}, nil)
		mRepo.On("Delete", ctx, "a1").Return(nil)
		mFiles.On("Remove", filePath).Return(errors.New("no such file")).Maybe()

		assert.NoError(t, svc.Delete(ctx, "a1"))
		mRepo.AssertExpectations(t)
	})

	t.Run("record without file skips cleanup", func(t *testing.T) {
		mFiles := new(storeMocks.MockFileStore)
		mRepo := new(repoMocks.MockAnswerRepository)
		svc := NewAnswerService(mFiles, mRepo)

		mRepo.On("FindByID", ctx, "a1").Return(&model.Answer{ID: "a1"}, nil)
		mRepo.On("Delete", ctx, "a1").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "a1"))
		mFiles.AssertNotCalled(t, "Remove", mock.Anything)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		mRepo := new(repoMocks.MockAnswerRepository)
		svc := NewAnswerService(nil, mRepo)

		mRepo.On("FindByID", ctx, "nope").Return(nil, repository.ErrNotFound)

		err := svc.Delete(ctx, "nope")

		assert.ErrorIs(t, err, ErrNotFound)
		mRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("empty id", func(t *testing.T) {
		svc := NewAnswerService(nil, nil)
		assert.ErrorIs(t, svc.Delete(ctx, ""), ErrIDRequired)
	})

	t.Run("lookup error", func(t *testing.T) {
		mRepo := new(repoMocks.MockAnswerRepository)
		svc := NewAnswerService(nil, mRepo)

		mRepo.On("FindByID", ctx, "a1").Return(nil, errors.New("store down"))

		assert.ErrorContains(t, svc.Delete(ctx, "a1"), "store down")
	})
}
