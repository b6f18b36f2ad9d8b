package http

import (
	"errors"
	"io"
	"time"

	"github.com/NeuralTrust/TakeALook/pkg/app/ingest"
	"github.com/NeuralTrust/TakeALook/pkg/app/processor"
	"github.com/NeuralTrust/TakeALook/pkg/config"
	"github.com/NeuralTrust/TakeALook/pkg/domain/logfile"
	"github.com/NeuralTrust/TakeALook/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	uploadFormField = "file"
	waitMargin      = 5 * time.Second
)

type uploadLogHandler struct {
	logger      *logrus.Logger
	service     ingest.Service
	uploadedBy  string
	waitTimeout time.Duration
}

func NewUploadLogHandler(
	logger *logrus.Logger,
	service ingest.Service,
	cfg *config.Config,
) Handler {
	return &uploadLogHandler{
		logger:      logger,
		service:     service,
		uploadedBy:  cfg.Upload.UploadedBy,
		waitTimeout: cfg.Processing.Timeout + waitMargin,
	}
}

// Handle @Summary Upload a log file
// @Description Stores the file and queues it for classification. With wait=true the response carries the final status and severity summary.
// @Tags Logs
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Log file (.log or .txt, optionally .gz, .br or .zst compressed)"
// @Param wait query bool false "Wait for classification to finish"
// @Success 200 {object} response.UploadOutput "Stored log"
// @Failure 400 {object} map[string]interface{} "No file uploaded"
// @Failure 409 {object} response.DuplicateOutput "File already exists"
// @Failure 413 {object} map[string]interface{} "File too large"
// @Failure 415 {object} map[string]interface{} "Unsupported file type"
// @Failure 503 {object} map[string]interface{} "Processing queue is full"
// @Router /api/v1/logs/upload [post]
func (h *uploadLogHandler) Handle(c *fiber.Ctx) error {
	fh, err := c.FormFile(uploadFormField)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded"})
	}
	f, err := fh.Open()
	if err != nil {
		h.logger.WithError(err).Error("failed to open uploaded file")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Uploaded file could not be read"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		h.logger.WithError(err).Error("failed to read uploaded file")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Uploaded file could not be read"})
	}

	accepted, err := h.service.Ingest(c.UserContext(), ingest.Upload{
		FileName:   fh.Filename,
		Data:       data,
		UploadedBy: h.uploadedBy,
	})
	if err != nil {
		return h.handleError(c, err)
	}

	out := response.UploadOutput{
		LogFile: *accepted.Log,
		Status:  logfile.StatusProcessing,
	}
	if c.QueryBool("wait") {
		h.await(c, accepted.Outcome, &out)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// await blocks until the outcome arrives, the client goes away or the
// processing timeout plus a margin elapses. The log stays processing in
// the last two cases.
func (h *uploadLogHandler) await(c *fiber.Ctx, outcome <-chan processor.Outcome, out *response.UploadOutput) {
	timer := time.NewTimer(h.waitTimeout)
	defer timer.Stop()

	select {
	case o, ok := <-outcome:
		if !ok {
			return
		}
		out.Status = o.Status
		out.Summary = o.Counts
		out.Lines = o.Lines
		out.LogFile.Status = o.Status
		if o.Err != nil {
			out.FailureReason = o.Err.Error()
		}
	case <-c.UserContext().Done():
	case <-timer.C:
		h.logger.WithField("log_id", out.ID).Warn("upload wait timed out")
	}
}

func (h *uploadLogHandler) handleError(c *fiber.Ctx, err error) error {
	var dup *ingest.DuplicateError
	switch {
	case errors.As(err, &dup):
		return c.Status(fiber.StatusConflict).JSON(response.DuplicateOutput{
			Message: "File already exists",
			LogID:   dup.LogID.String(),
		})
	case errors.Is(err, ingest.ErrUndecodable):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ingest.ErrUnsupportedFileType):
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{"error": "Only .log and .txt files are allowed"})
	case errors.Is(err, ingest.ErrFileTooLarge):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, processor.ErrQueueFull), errors.Is(err, processor.ErrShutdown):
		c.Set(fiber.HeaderRetryAfter, "30")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Processing queue is full, retry later"})
	default:
		h.logger.WithError(err).Error("failed to upload file")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload file"})
	}
}
