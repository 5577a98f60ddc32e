package media

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	avatarDir  = "profile_pics"
	receiptDir = "receipt_pics"

	// uploaded avatars are scaled down before saving
	avatarSize = 125

	maxUploadBytes = 10 << 20 // 10 MiB
)

var (
	ErrMissingFile         = errors.New("no file was uploaded")
	ErrUnsupportedFileType = errors.New("unsupported file type, please upload a jpg or png image")
)

// Store writes uploaded pictures under a root directory. Stored paths are
// relative to the root so they can be served as static files.
type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	for _, dir := range []string{avatarDir, receiptDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("could not create media directory: %v", err)
		}
	}
	return &Store{root: root}, nil
}

// randomName keeps the original extension but replaces the name with random
// hex so uploads never collide.
func randomName(original string) (string, error) {
	ext := strings.ToLower(filepath.Ext(original))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", ErrUnsupportedFileType
	}
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("could not generate file name: %v", err)
	}
	return hex.EncodeToString(buf) + ext, nil
}

// SaveAvatar stores the uploaded profile picture resized to a square
// thumbnail and returns its relative path.
func (s *Store) SaveAvatar(r *http.Request, field string) (string, error) {
	file, header, err := openUpload(r, field)
	if err != nil {
		return "", err
	}
	defer file.Close()

	name, err := randomName(header.Filename)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(file)
	if err != nil {
		return "", ErrUnsupportedFileType
	}
	thumbnail := imaging.Thumbnail(img, avatarSize, avatarSize, imaging.Lanczos)

	relPath := filepath.Join(avatarDir, name)
	if err := imaging.Save(thumbnail, filepath.Join(s.root, relPath)); err != nil {
		return "", fmt.Errorf("could not save avatar: %v", err)
	}
	return relPath, nil
}

// SaveReceipt stores the uploaded receipt picture as-is and returns its
// relative path.
func (s *Store) SaveReceipt(r *http.Request, field string) (string, error) {
	file, header, err := openUpload(r, field)
	if err != nil {
		return "", err
	}
	defer file.Close()

	name, err := randomName(header.Filename)
	if err != nil {
		return "", err
	}

	relPath := filepath.Join(receiptDir, name)
	dst, err := os.Create(filepath.Join(s.root, relPath))
	if err != nil {
		return "", fmt.Errorf("could not save receipt: %v", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("could not save receipt: %v", err)
	}
	return relPath, nil
}

func openUpload(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, ErrMissingFile
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, ErrMissingFile
	}
	return file, header, nil
}
