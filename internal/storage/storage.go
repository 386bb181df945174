package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// регистрация декодеров для image.DecodeConfig
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImageStore — внешний коллаборатор хранения картинок: принимает байты,
// возвращает ссылку на сохранённый блоб.
type ImageStore interface {
	Store(ctx context.Context, filename string, data []byte) (string, error)
}

// Dimensions читает только заголовок изображения и возвращает (width, height).
func Dimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// DiskStore кладёт блобы в media-каталог на диске.
type DiskStore struct {
	dir string
	log *zap.Logger
}

func NewDiskStore(dir string, log *zap.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &DiskStore{dir: dir, log: log}, nil
}

func (s *DiskStore) Store(_ context.Context, filename string, data []byte) (string, error) {
	name := fmt.Sprintf("%s_%s", uuid.NewString(), sanitizeFilename(filename))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	s.log.Debug("Изображение сохранено", zap.String("path", path))
	return name, nil
}

func sanitizeFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "image"
	}
	return base
}
