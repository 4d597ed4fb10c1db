package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dev-arham/ecommerce-server/pkg/config"
	"github.com/dev-arham/ecommerce-server/pkg/enums"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
)

// PublicPathPrefix is the URL prefix uploaded files are served under.
const PublicPathPrefix = "/image"

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Service stores uploaded images on disk under a per-kind directory.
type Service interface {
	Save(ctx context.Context, input SaveInput) (*Stored, error)
	List(ctx context.Context, kind enums.MediaKind) ([]Stored, error)
	Remove(ctx context.Context, kind enums.MediaKind, filename string) error
	RootDir() string
}

// SaveInput carries one uploaded file.
type SaveInput struct {
	Kind     enums.MediaKind
	Filename string
	Size     int64
	Content  io.Reader
}

// Stored describes a persisted upload.
type Stored struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}

type service struct {
	rootDir  string
	maxBytes int64
	now      func() time.Time
}

// NewService wires the upload store and ensures the root directory exists.
func NewService(cfg config.MediaConfig) (Service, error) {
	root := strings.TrimSpace(cfg.RootDir)
	if root == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "media root directory required")
	}
	if cfg.MaxUploadMB <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "media max upload size must be positive")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create media root")
	}
	return &service{
		rootDir:  root,
		maxBytes: int64(cfg.MaxUploadMB) * 1024 * 1024,
		now:      time.Now,
	}, nil
}

func (s *service) RootDir() string {
	return s.rootDir
}

func (s *service) Save(ctx context.Context, input SaveInput) (*Stored, error) {
	if !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid media type.")
	}
	ext := strings.ToLower(filepath.Ext(input.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Only jpg, jpeg and png files are allowed.")
	}
	if input.Size > s.maxBytes {
		return nil, s.sizeError()
	}
	if input.Content == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "File content is required.")
	}

	dir := filepath.Join(s.rootDir, input.Kind.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create media directory")
	}

	filename := s.uniqueName(input.Filename, ext)
	path := filepath.Join(dir, filename)
	dst, err := os.Create(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create media file")
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(input.Content, s.maxBytes+1))
	if err != nil {
		os.Remove(path)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write media file")
	}
	if written > s.maxBytes {
		os.Remove(path)
		return nil, s.sizeError()
	}

	return &Stored{
		Filename: filename,
		URL:      fmt.Sprintf("%s/%s/%s", PublicPathPrefix, input.Kind, filename),
		Size:     written,
	}, nil
}

// List reports the stored files of a kind with their sizes.
func (s *service) List(ctx context.Context, kind enums.MediaKind) ([]Stored, error) {
	if !kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid media type.")
	}

	entries, err := os.ReadDir(filepath.Join(s.rootDir, kind.String()))
	if err != nil {
		if os.IsNotExist(err) {
			return []Stored{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read media directory")
	}

	files := make([]Stored, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, Stored{
			Filename: entry.Name(),
			URL:      fmt.Sprintf("%s/%s/%s", PublicPathPrefix, kind, entry.Name()),
			Size:     info.Size(),
		})
	}
	return files, nil
}

// Remove deletes a previously stored file. Missing files are not an error.
func (s *service) Remove(ctx context.Context, kind enums.MediaKind, filename string) error {
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "Invalid media type.")
	}
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) || base != filename {
		return pkgerrors.New(pkgerrors.CodeValidation, "Invalid filename.")
	}
	err := os.Remove(filepath.Join(s.rootDir, kind.String(), base))
	if err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove media file")
	}
	return nil
}

// uniqueName builds <base>_<unix>_<rand><ext> from the client filename.
func (s *service) uniqueName(original, ext string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = sanitizeBase(base)
	suffix := make([]byte, 3)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("%s_%d_%s%s", base, s.now().Unix(), hex.EncodeToString(suffix), ext)
}

func sanitizeBase(base string) string {
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}

func (s *service) sizeError() error {
	return pkgerrors.New(pkgerrors.CodeValidation,
		fmt.Sprintf("File exceeds the %dMB upload limit.", s.maxBytes/(1024*1024)))
}
