package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
)

func multipartUpload(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/user/avatar", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSaveAvatar_ResizesToThumbnail(t *testing.T) {
	store, err := NewStore(t.TempDir())
	assert.NoError(t, err)

	req := multipartUpload(t, "picture", "me.png", testPNG(t, 600, 400))
	relPath, err := store.SaveAvatar(req, "picture")
	assert.NoError(t, err)
	assert.Equal(t, avatarDir, filepath.Dir(relPath))
	assert.True(t, strings.HasSuffix(relPath, ".png"))

	saved, err := imaging.Open(filepath.Join(store.root, relPath))
	assert.NoError(t, err)
	bounds := saved.Bounds()
	assert.Equal(t, avatarSize, bounds.Dx())
	assert.Equal(t, avatarSize, bounds.Dy())
}

func TestSaveAvatar_RejectsUnsupportedExtension(t *testing.T) {
	store, err := NewStore(t.TempDir())
	assert.NoError(t, err)

	req := multipartUpload(t, "picture", "notes.txt", []byte("not an image"))
	_, err = store.SaveAvatar(req, "picture")
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestSaveAvatar_MissingFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/user/avatar", nil)
	_, err = store.SaveAvatar(req, "picture")
	assert.ErrorIs(t, err, ErrMissingFile)
}

func TestSaveReceipt_KeepsOriginalBytes(t *testing.T) {
	store, err := NewStore(t.TempDir())
	assert.NoError(t, err)

	content := testPNG(t, 300, 500)
	req := multipartUpload(t, "receipt", "receipt.png", content)
	relPath, err := store.SaveReceipt(req, "receipt")
	assert.NoError(t, err)
	assert.Equal(t, receiptDir, filepath.Dir(relPath))

	saved, err := imaging.Open(filepath.Join(store.root, relPath))
	assert.NoError(t, err)
	assert.Equal(t, 300, saved.Bounds().Dx())
	assert.Equal(t, 500, saved.Bounds().Dy())
}

func TestRandomName_UniquePerUpload(t *testing.T) {
	first, err := randomName("me.jpg")
	assert.NoError(t, err)
	second, err := randomName("me.jpg")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(first, ".jpg"))
}
