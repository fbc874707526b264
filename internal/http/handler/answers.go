package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"answerhub/internal/database"
	"answerhub/internal/service"
	"answerhub/internal/storage"
)

// StoreProbe yields the shared document store handle. *database.Manager
// satisfies it.
type StoreProbe interface {
	Client(ctx context.Context) (database.API, error)
}

// EnsureStore gates every answer route behind the connection manager: the
// request only reaches business logic once the shared store handle exists.
// Configuration and connection failures become a 500 here.
func EnsureStore(store StoreProbe) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := store.Client(c.UserContext()); err != nil {
			code := "CONNECTION_ERROR"
			if errors.Is(err, database.ErrNotConfigured) {
				code = "CONFIGURATION_ERROR"
			}
			return writeError(c, fiber.StatusInternalServerError, code, err.Error())
		}
		return c.Next()
	}
}

// ListAnswers returns all answer records ordered by uploadDate descending.
func ListAnswers(svc service.AnswerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
		return c.JSON(items)
	}
}

// UploadAnswer accepts a multipart form with an optional "file" part plus the
// title, question, uploadDate, gsPaper, and source fields. Field values are
// passed through as-is: presence is the only validation this endpoint does.
func UploadAnswer(svc service.AnswerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := service.UploadInput{
			Title:      c.FormValue("title"),
			Question:   c.FormValue("question"),
			UploadDate: c.FormValue("uploadDate"),
			GsPaper:    c.FormValue("gsPaper"),
			Source:     c.FormValue("source"),
		}

		// The file part is optional; a record without an attachment is valid.
		if fh, err := c.FormFile("file"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			defer f.Close()

			ct := fh.Header.Get("Content-Type")
			if ct == "" {
				ct = "application/octet-stream"
			}
			in.File = f
			in.FileName = fh.Filename
			in.MimeType = ct
		}

		a, err := svc.Upload(c.UserContext(), in)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "PERSISTENCE_ERROR", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	}
}

// DeleteAnswer removes a record by identifier along with best-effort cleanup
// of its stored payload.
func DeleteAnswer(svc service.AnswerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "answer not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "PERSISTENCE_ERROR", err.Error())
		}
		return c.JSON(fiber.Map{"message": "answer deleted"})
	}
}

// ServeUpload streams a previously uploaded payload back by file name with
// the content type inferred from its extension.
func ServeUpload(files storage.FileStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path, err := files.Resolve(c.Params("fileName"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
		return c.SendFile(path)
	}
}

// HealthCheck reports whether the document store is reachable.
func HealthCheck(store StoreProbe) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if _, err := store.Client(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness check.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
