package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"answerhub/internal/model"
	"answerhub/internal/repository"
	"answerhub/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("answer not found")
)

// UploadInput carries the multipart form contents for a new answer.
// File is nil when the caller submitted no file part; the record is then
// created with no attachment.
type UploadInput struct {
	Title      string
	Question   string
	UploadDate string
	GsPaper    string
	Source     string

	File     io.Reader
	FileName string
	MimeType string
}

// AnswerService defines the use cases for handling answers.
type AnswerService interface {
	// Upload stores the optional payload on local disk, persists the record,
	// and rolls the payload back if persistence fails.
	Upload(ctx context.Context, in UploadInput) (*model.Answer, error)

	// List returns every answer ordered by uploadDate descending.
	List(ctx context.Context) ([]model.Answer, error)

	// Delete removes an answer by identifier along with best-effort cleanup
	// of its stored payload. Returns ErrNotFound for unknown identifiers.
	Delete(ctx context.Context, id string) error
}

type answerService struct {
	files storage.FileStore
	repo  repository.AnswerRepository
}

// NewAnswerService constructs a new AnswerService.
func NewAnswerService(files storage.FileStore, repo repository.AnswerRepository) AnswerService {
	return &answerService{files: files, repo: repo}
}

func (s *answerService) Upload(ctx context.Context, in UploadInput) (*model.Answer, error) {
	a := &model.Answer{
		Title:      in.Title,
		Question:   in.Question,
		UploadDate: in.UploadDate,
		GsPaper:    in.GsPaper,
		Source:     in.Source,
	}

	if in.File != nil {
		sf, err := s.files.Save(ctx, in.FileName, in.File)
		if err != nil {
			return nil, fmt.Errorf("store upload: %w", err)
		}
		mimeType := in.MimeType
		a.FileName = &sf.Name
		a.FilePath = &sf.Path
		a.MimeType = &mimeType
	}

	stored, err := s.repo.Create(ctx, a)
	if err != nil {
		// Rollback: don't leave a payload on disk that no record references.
		if a.FilePath != nil {
			if rmErr := s.files.Remove(*a.FilePath); rmErr != nil {
				log.Printf("rollback of upload %s failed: %v", *a.FilePath, rmErr)
			}
		}
		return nil, fmt.Errorf("save answer: %w", err)
	}
	return stored, nil
}

func (s *answerService) List(ctx context.Context) ([]model.Answer, error) {
	return s.repo.List(ctx)
}

// Delete looks the record up, schedules best-effort removal of its payload,
// then deletes the record. Payload cleanup failures are logged and swallowed:
// record deletion succeeds even when the file is already gone. The two steps
// are not transactional.
func (s *answerService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if a.HasFile() {
		path := *a.FilePath
		go func() {
			if err := s.files.Remove(path); err != nil {
				log.Printf("remove uploaded file %s: %v", path, err)
			}
		}()
	}

	return s.repo.Delete(ctx, id)
}
