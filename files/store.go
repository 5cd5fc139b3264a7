// ABOUTME: Filesystem storage for campaign document attachments
// ABOUTME: Writes uploads under ULID-stamped names and keeps rows and files in step
package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/models"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// ErrFileMissing means a document row points at a file that is no longer on
// disk. Surfaces show it as a "file missing" state.
var ErrFileMissing = fmt.Errorf("%w: file missing", models.ErrNotFound)

const documentPrefix = "doc"

type Store struct {
	dir string
	log logrus.FieldLogger

	mu      sync.Mutex
	entropy io.Reader
}

func NewStore(dir string, logger logrus.FieldLogger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create upload dir: %v", models.ErrStorage, err)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Store{
		dir:     dir,
		log:     logger,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// Save writes r to <prefix>-<ULID>-<sanitised name> and returns the full path.
// A partially written file is removed before the error is returned.
func (s *Store) Save(prefix, name string, r io.Reader) (string, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("%s-%s-%s", prefix, s.newID(), SanitizeName(name)))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: write %s: %v", models.ErrStorage, filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: close %s: %v", models.ErrStorage, filepath.Base(path), err)
	}

	return path, nil
}

// Open reads a stored file. A missing file yields ErrFileMissing.
func (s *Store) Open(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileMissing, filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", models.ErrStorage, filepath.Base(path), err)
	}
	return data, nil
}

// Exists reports whether the stored file is still on disk.
func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Remove deletes a stored file. Removing a file that is already gone is not
// an error.
func (s *Store) Remove(path string) error {
	err := os.Remove(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("%w: remove %s: %v", models.ErrStorage, filepath.Base(path), err)
}

// AttachDocument stores the upload and records it against the campaign. If the
// row can't be written the file is removed again, so neither exists without
// the other.
func (s *Store) AttachDocument(ctx context.Context, q db.Querier, campaignID int64, name string, r io.Reader) (*models.Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: document name is required", models.ErrValidation)
	}

	path, err := s.Save(documentPrefix, name, r)
	if err != nil {
		return nil, err
	}

	doc := &models.Document{CampaignID: campaignID, Name: name, FilePath: path}
	if err := db.AddDocument(ctx, q, doc); err != nil {
		if rmErr := s.Remove(path); rmErr != nil {
			s.log.WithError(rmErr).WithField("path", path).Warn("failed to clean up orphaned upload")
		}
		return nil, err
	}

	return doc, nil
}

// DeleteCampaign removes the campaign and its dependent rows, then deletes the
// document files best-effort. File failures are logged, not returned.
func (s *Store) DeleteCampaign(ctx context.Context, q db.Querier, campaignID int64) error {
	docs, err := db.ListDocuments(ctx, q, campaignID)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if err := db.DeleteCampaign(ctx, q, campaignID); err != nil {
		return err
	}

	for _, doc := range docs {
		if err := s.Remove(doc.FilePath); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"campaign_id": campaignID,
				"document_id": doc.ID,
			}).Warn("failed to remove document file")
		}
	}
	return nil
}

// SanitizeName keeps letters, digits, dot, dash and underscore; everything
// else becomes an underscore.
func SanitizeName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "file"
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := strings.TrimLeft(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}
