package ingest

import (
	"context"
	"crypto/md5" //nolint:gosec
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	appLogfile "github.com/NeuralTrust/TakeALook/pkg/app/logfile"
	"github.com/NeuralTrust/TakeALook/pkg/app/processor"
	domain "github.com/NeuralTrust/TakeALook/pkg/domain/errors"
	"github.com/NeuralTrust/TakeALook/pkg/domain/logfile"
	"github.com/NeuralTrust/TakeALook/pkg/infra/httpx"
	"github.com/NeuralTrust/TakeALook/pkg/infra/prometheus"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/unicode"
)

const (
	resultAccepted  = "accepted"
	resultDuplicate = "duplicate"
	resultInvalid   = "invalid"
	resultRejected  = "rejected"
)

type Config struct {
	MaxSize           int
	AllowedExtensions []string
}

type Upload struct {
	FileName   string
	Data       []byte
	UploadedBy string
}

// Accepted is a stored log in status processing plus the channel its
// outcome arrives on.
type Accepted struct {
	Log     *logfile.LogFile
	Outcome <-chan processor.Outcome
}

//go:generate mockery --name=Service --dir=. --output=./mocks --filename=ingest_service_mock.go --case=underscore --with-expecter
type Service interface {
	Ingest(ctx context.Context, upload Upload) (*Accepted, error)
}

type service struct {
	logger    *logrus.Logger
	cfg       Config
	allowed   map[string]struct{}
	repo      logfile.Repository
	finder    appLogfile.Finder
	processor processor.Processor
}

func NewService(
	logger *logrus.Logger,
	cfg Config,
	repo logfile.Repository,
	finder appLogfile.Finder,
	proc processor.Processor,
) Service {
	allowed := make(map[string]struct{}, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	return &service{
		logger:    logger,
		cfg:       cfg,
		allowed:   allowed,
		repo:      repo,
		finder:    finder,
		processor: proc,
	}
}

// Fingerprint is the lowercase hex md5 of content.
func Fingerprint(content string) string {
	sum := md5.Sum([]byte(content)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

func (s *service) Ingest(ctx context.Context, upload Upload) (*Accepted, error) {
	content, err := s.decode(upload)
	if err != nil {
		prometheus.UploadsTotal.WithLabelValues(resultInvalid).Inc()
		return nil, err
	}

	hash := Fingerprint(content)
	log := s.logger.WithFields(logrus.Fields{
		"file_name": upload.FileName,
		"file_hash": hash,
	})

	id, err := s.finder.FindIDByHash(ctx, hash)
	switch {
	case err == nil:
		prometheus.UploadsTotal.WithLabelValues(resultDuplicate).Inc()
		log.WithField("log_id", id).Info("duplicate upload")
		return nil, &DuplicateError{LogID: id}
	case !domain.IsNotFound(err):
		return nil, fmt.Errorf("failed to check fingerprint: %w", err)
	}

	entity := &logfile.LogFile{
		FileName:   upload.FileName,
		FileHash:   hash,
		FileSize:   len(content),
		Content:    content,
		UploadedBy: upload.UploadedBy,
		Status:     logfile.StatusProcessing,
	}
	if err := s.repo.Create(ctx, entity); err != nil {
		if errors.Is(err, logfile.ErrDuplicateHash) {
			return nil, s.concurrentDuplicate(ctx, hash)
		}
		return nil, fmt.Errorf("failed to create log: %w", err)
	}

	outcome, err := s.processor.Submit(ctx, processor.Task{
		LogID:      entity.ID,
		FileName:   entity.FileName,
		FileHash:   hash,
		Content:    content,
		UploadedBy: entity.UploadedBy,
	})
	if err != nil {
		prometheus.UploadsTotal.WithLabelValues(resultRejected).Inc()
		log.WithError(err).Error("failed to submit log for processing")
		s.discard(ctx, entity.ID, hash)
		return nil, fmt.Errorf("failed to submit log %s: %w", entity.ID, err)
	}
	s.finder.Remember(ctx, hash, entity.ID)

	prometheus.UploadsTotal.WithLabelValues(resultAccepted).Inc()
	log.WithField("log_id", entity.ID).Info("log accepted for processing")
	return &Accepted{Log: entity, Outcome: outcome}, nil
}

// decode checks the extension, inflates compressed uploads and normalizes
// the text to valid UTF-8, one U+FFFD per maximal invalid subsequence.
func (s *service) decode(upload Upload) (string, error) {
	inner, encoding := httpx.SplitEncoding(upload.FileName)
	if _, ok := s.allowed[strings.ToLower(filepath.Ext(inner))]; !ok {
		return "", ErrUnsupportedFileType
	}
	data, err := httpx.Decode(encoding, upload.Data, s.cfg.MaxSize)
	if err != nil {
		if errors.Is(err, httpx.ErrDecodedTooLarge) {
			return "", ErrFileTooLarge
		}
		return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	text, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	return string(text), nil
}

// discard removes a log that never reached the processor so the same
// content can be uploaded again.
func (s *service) discard(ctx context.Context, id uuid.UUID, hash string) {
	s.finder.Forget(ctx, hash)
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithField("log_id", id).Error("failed to delete rejected log")
	}
}

// concurrentDuplicate resolves a unique index violation raised by an upload
// of the same content that committed first.
func (s *service) concurrentDuplicate(ctx context.Context, hash string) error {
	prometheus.UploadsTotal.WithLabelValues(resultDuplicate).Inc()
	existing, err := s.repo.GetByHash(ctx, hash)
	if err != nil {
		return fmt.Errorf("failed to load existing log: %w", err)
	}
	s.finder.Remember(ctx, hash, existing.ID)
	return &DuplicateError{LogID: existing.ID}
}
