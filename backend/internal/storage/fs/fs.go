package fs

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/IKUN2788/Lost-pet/backend/internal/service"
	"github.com/IKUN2788/Lost-pet/shared/config"
	"github.com/IKUN2788/Lost-pet/shared/domain"
	"github.com/IKUN2788/Lost-pet/shared/logger"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

var (
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrImageTooLarge        = errors.New("image dimensions exceed decode budget")
	ErrUndecodable          = errors.New("file is not a decodable image")
)

// Storage keeps every image flat in one directory under a generated name.
type Storage struct {
	rootPath        string
	allowed         map[string]bool
	maxDimension    int
	jpegQuality     int
	maxDecodedBytes int64
}

var (
	_ service.MediaStorage   = (*Storage)(nil)
	_ service.GCMediaStorage = (*Storage)(nil)
)

func New(cfg *config.Public) (*Storage, error) {
	// Clean guards against roots like "media/../"
	p := filepath.Clean(cfg.MediaDir)
	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", p, err)
	}

	allowed := make(map[string]bool, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	return &Storage{
		rootPath:        p,
		allowed:         allowed,
		maxDimension:    cfg.MaxImageDimension,
		jpegQuality:     cfg.JpegQuality,
		maxDecodedBytes: cfg.MaxDecodedImageBytes,
	}, nil
}

// Store re-encodes an uploaded image into the media directory and returns the
// generated name. Only the extension of originalFilename is kept.
func (s *Storage) Store(data io.Reader, originalFilename string) (domain.StoredFilename, error) {
	ext, ok := s.extension(originalFilename)
	if !ok {
		imagesRejected.WithLabelValues("extension").Inc()
		return "", fmt.Errorf("%w: %q", ErrUnsupportedExtension, originalFilename)
	}

	img, err := s.decode(data)
	if err != nil {
		imagesRejected.WithLabelValues("decode").Inc()
		return "", err
	}
	img = fitWithin(img, s.maxDimension)

	filename := uuid.New().String() + "." + ext
	fullPath := filepath.Join(s.rootPath, filename)

	dst, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		imagesRejected.WithLabelValues("io").Inc()
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}

	if err := s.encode(dst, img, ext); err != nil {
		dst.Close()
		os.Remove(fullPath) // partial file, best effort
		imagesRejected.WithLabelValues("io").Inc()
		return "", fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(fullPath)
		imagesRejected.WithLabelValues("io").Inc()
		return "", fmt.Errorf("failed to flush %s: %w", filename, err)
	}

	imagesStored.Inc()
	return filename, nil
}

// Remove deletes a stored image. Failures are logged and swallowed: callers
// treat file cleanup as advisory.
func (s *Storage) Remove(filename domain.StoredFilename) {
	if err := s.DeleteFile(filename); err != nil {
		filesRemoved.WithLabelValues("error").Inc()
		logger.Log.Warn("failed to remove media file", "file", filename, "error", err)
		return
	}
	filesRemoved.WithLabelValues("ok").Inc()
}

// DeleteFile removes a single file. A file that is already gone is not an error.
func (s *Storage) DeleteFile(filename string) error {
	fullPath, err := s.resolve(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// WalkFiles lists the names of all regular files in the media directory.
func (s *Storage) WalkFiles() ([]string, error) {
	entries, err := os.ReadDir(s.rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read media directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (s *Storage) GetFileModTime(filename string) (time.Time, error) {
	fullPath, err := s.resolve(filename)
	if err != nil {
		return time.Time{}, err
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to stat file: %w", err)
	}
	return info.ModTime(), nil
}

// resolve maps a stored name to its path, refusing anything that is not a
// plain name inside the media directory.
func (s *Storage) resolve(filename string) (string, error) {
	if filename == "" || filename == "." || filename == ".." || filepath.Base(filename) != filename {
		return "", fmt.Errorf("invalid media filename %q", filename)
	}
	return filepath.Join(s.rootPath, filename), nil
}

func (s *Storage) extension(originalFilename string) (string, bool) {
	i := strings.LastIndex(originalFilename, ".")
	if i < 0 {
		return "", false
	}
	ext := strings.ToLower(originalFilename[i+1:])
	return ext, s.allowed[ext]
}

func (s *Storage) decode(data io.Reader) (image.Image, error) {
	raw, err := io.ReadAll(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	// Headers are checked first: a crafted file can claim 65535x65535 and make
	// Decode allocate gigabytes.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	if s.maxDecodedBytes > 0 && int64(cfg.Width)*int64(cfg.Height)*4 > s.maxDecodedBytes {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	return img, nil
}

func (s *Storage) encode(w io.Writer, img image.Image, ext string) error {
	switch ext {
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(w, img)
	case "gif":
		return gif.Encode(w, img, nil)
	default:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: s.jpegQuality})
	}
}

// fitWithin downscales img so neither side exceeds maxSide, keeping the
// aspect ratio. Smaller images are returned unchanged.
func fitWithin(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}

	nw, nh := maxSide, maxSide
	if w >= h {
		nh = h * maxSide / w
	} else {
		nw = w * maxSide / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
