package handler

import (
	"errors"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"filearray/internal/http/middleware"
	"filearray/internal/model"
	"filearray/internal/service"
	"filearray/internal/storage"
	"filearray/internal/upload"
)

const presignExpiry = 15 * time.Minute

// recordView is the admin representation of a record. Uploaded mirrors the read-only
// "uploaded files" box of the change form. Links[i] is the presigned URL of Paths[i], or
// empty when signing that path failed.
type recordView struct {
	ID        string     `json:"id"`
	Kind      model.Kind `json:"kind"`
	Paths     []string   `json:"paths"`
	Uploaded  string     `json:"uploaded"`
	Links     []string   `json:"links,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func newRecordView(rec *model.Record) recordView {
	paths := rec.Paths
	if paths == nil {
		paths = []string{}
	}
	return recordView{
		ID:        rec.ID,
		Kind:      rec.Kind,
		Paths:     paths,
		Uploaded:  rec.UploadedText(),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

type recordListView struct {
	Items []recordView `json:"data"`
	Total int          `json:"total"`
}

// FieldDescriptor returns what the admin form needs to render the array field.
//
// @Summary Describe the upload field of a record kind
// @Tags admin
// @Produce json
// @Param kind path string true "files or images"
// @Success 200 {object} upload.Descriptor
// @Router /admin/{kind}/field [get]
func FieldDescriptor(adapter *upload.Adapter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(adapter.Descriptor())
	}
}

// ListRecords lists records with limit & offset.
//
// @Summary List records of a kind
// @Tags admin
// @Produce json
// @Param kind path string true "files or images"
// @Param limit query int false "page size" default(10)
// @Param offset query int false "offset" default(0)
// @Success 200 {object} recordListView
// @Failure 400 {object} errorPayload
// @Router /admin/{kind} [get]
func ListRecords(svc service.ArrayService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		out := recordListView{Items: make([]recordView, 0, len(res.Items)), Total: res.Total}
		for i := range res.Items {
			out.Items = append(out.Items, newRecordView(&res.Items[i]))
		}
		return c.JSON(out)
	}
}

// GetRecord returns one record with time-limited download links for its files.
//
// @Summary Get a record
// @Tags admin
// @Produce json
// @Param kind path string true "files or images"
// @Param id path string true "record id"
// @Success 200 {object} recordView
// @Failure 404 {object} errorPayload
// @Router /admin/{kind}/{id} [get]
func GetRecord(svc service.ArrayService, store storage.Storage, log *zap.Logger) fiber.Handler {
	log = orNop(log)
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		rec, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "record not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		view := newRecordView(rec)
		if len(rec.Paths) > 0 {
			view.Links = make([]string, len(rec.Paths))
		}
		for i, p := range rec.Paths {
			link, err := store.PresignGet(c.UserContext(), p, presignExpiry)
			if err != nil {
				log.Warn("presign_failed", zap.String("path", p), zap.Error(err))
				continue
			}
			view.Links[i] = link
		}
		return c.JSON(view)
	}
}

// DownloadFile streams the index-th file of a record through the API.
//
// @Summary Download one file of a record
// @Tags admin
// @Produce octet-stream
// @Param kind path string true "files or images"
// @Param id path string true "record id"
// @Param index path int true "position in the array"
// @Success 200 {file} file
// @Failure 404 {object} errorPayload
// @Router /admin/{kind}/{id}/files/{index} [get]
func DownloadFile(svc service.ArrayService, store storage.Storage, log *zap.Logger) fiber.Handler {
	log = orNop(log)
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		idx, err := strconv.Atoi(c.Params("index"))
		if err != nil || idx < 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INDEX", "invalid file index")
		}

		rec, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "record not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if idx >= len(rec.Paths) {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
		}

		body, info, err := store.Get(c.UserContext(), rec.Paths[idx])
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
			}
			log.Error("download_failed", zap.String("path", rec.Paths[idx]), zap.Error(err))
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		c.Attachment(path.Base(rec.Paths[idx]))
		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		return c.SendStream(body, int(info.Size))
	}
}

// SaveRecord validates the submitted batch and saves it into a new record (no :id) or over
// an existing one.
//
// @Summary Create or replace the files of a record
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param kind path string true "files or images"
// @Param id path string false "record id"
// @Param files formData file false "files to upload (repeatable)"
// @Param files-clear formData string false "clear checkbox"
// @Param files-urls formData string false "newline separated links (URL mode)"
// @Success 200 {object} recordView
// @Success 201 {object} recordView
// @Failure 400 {object} errorPayload
// @Router /admin/{kind} [post]
// @Router /admin/{kind}/{id} [post]
func SaveRecord(svc service.ArrayService, adapter *upload.Adapter, log *zap.Logger) fiber.Handler {
	log = orNop(log)
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id != "" {
			if _, err := uuid.Parse(id); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
			}
		}

		sub, err := readSubmission(c, adapter.Config())
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", "cannot read form submission")
		}

		batch, err := adapter.Validate(c.UserContext(), sub)
		if err != nil {
			return writeValidationError(c, adapter.Config().Name, err)
		}
		defer batch.Close()

		rec, err := svc.Save(c.UserContext(), service.SaveInput{RecordID: id, Batch: batch, Commit: true})
		switch {
		case errors.Is(err, service.ErrCleanupDispatch):
			// the record is committed; the superseded files stay in storage
			log.Error("cleanup_dispatch_lost",
				zap.String("request_id", middleware.RequestIDFromContext(c.UserContext())),
				zap.String("record_id", rec.ID),
				zap.Error(err),
			)
		case errors.Is(err, service.ErrNotFound):
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "record not found")
		case err != nil:
			log.Error("save_failed",
				zap.String("request_id", middleware.RequestIDFromContext(c.UserContext())),
				zap.String("record_id", id),
				zap.Error(err),
			)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		status := fiber.StatusOK
		if id == "" {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(newRecordView(rec))
	}
}

// DeleteRecord removes the record and, synchronously, every file it references.
//
// @Summary Delete a record and its files
// @Tags admin
// @Param kind path string true "files or images"
// @Param id path string true "record id"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /admin/{kind}/{id} [delete]
func DeleteRecord(svc service.ArrayService, log *zap.Logger) fiber.Handler {
	log = orNop(log)
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "record not found")
			}
			log.Error("delete_failed",
				zap.String("request_id", middleware.RequestIDFromContext(c.UserContext())),
				zap.String("record_id", id),
				zap.Error(err),
			)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// readSubmission collects the raw field input from a multipart or urlencoded form.
func readSubmission(c *fiber.Ctx, cfg upload.FieldConfig) (upload.Submission, error) {
	var sub upload.Submission
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return sub, err
		}
		sub.Files = form.File[cfg.Name]
		sub.Clear = checked(first(form.Value[cfg.ClearName()]))
		sub.URLs = first(form.Value[cfg.URLsName()])
		return sub, nil
	}
	sub.Clear = checked(c.FormValue(cfg.ClearName()))
	sub.URLs = c.FormValue(cfg.URLsName())
	return sub, nil
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

func first(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// checked follows HTML checkbox semantics: any value but "" or "false" is on.
func checked(v string) bool {
	return v != "" && !strings.EqualFold(v, "false")
}
