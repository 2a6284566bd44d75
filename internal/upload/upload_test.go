package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	files := req.MultipartForm.File["image"]
	require.Len(t, files, 1)
	return files[0]
}

func newTestSaver(t *testing.T) *Saver {
	t.Helper()
	return &Saver{
		WorkDir:   filepath.Join(t.TempDir(), "assets", "images"),
		PublicDir: filepath.Join(t.TempDir(), "public", "assets", "images"),
	}
}

func TestSaveImage_WritesBothCopies(t *testing.T) {
	s := newTestSaver(t)

	data := bytes.Repeat([]byte{0x89, 0x50, 0x4e, 0x47}, 256) // 1 KiB
	fh := makeFileHeader(t, "photo.png", "image/png", data)

	publicPath, err := s.SaveImage(fh)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(publicPath, "/assets/images/product-"), publicPath)
	require.True(t, strings.HasSuffix(publicPath, ".png"))

	filename := filepath.Base(publicPath)

	workCopy, err := os.ReadFile(filepath.Join(s.WorkDir, filename))
	require.NoError(t, err)
	require.Equal(t, data, workCopy)

	publicCopy, err := os.ReadFile(filepath.Join(s.PublicDir, filename))
	require.NoError(t, err)
	require.Equal(t, data, publicCopy)
}

func TestSaveImage_RejectsNonImage(t *testing.T) {
	s := newTestSaver(t)

	fh := makeFileHeader(t, "notes.txt", "text/plain", []byte("not an image"))

	_, err := s.SaveImage(fh)
	require.ErrorIs(t, err, ErrNotImage)

	_, statErr := os.Stat(s.WorkDir)
	require.True(t, os.IsNotExist(statErr), "rejected upload must not create directories")
}

func TestSaveImage_RejectsOversized(t *testing.T) {
	s := newTestSaver(t)

	data := bytes.Repeat([]byte{0xff}, 6<<20) // 6 MiB
	fh := makeFileHeader(t, "big.jpg", "image/jpeg", data)

	_, err := s.SaveImage(fh)
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestSaveImage_UniqueNames(t *testing.T) {
	s := newTestSaver(t)

	data := []byte{0x89, 0x50, 0x4e, 0x47}
	first, err := s.SaveImage(makeFileHeader(t, "a.png", "image/png", data))
	require.NoError(t, err)
	second, err := s.SaveImage(makeFileHeader(t, "a.png", "image/png", data))
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestRemove_DeletesBothCopies(t *testing.T) {
	s := newTestSaver(t)

	data := []byte{0x89, 0x50, 0x4e, 0x47}
	publicPath, err := s.SaveImage(makeFileHeader(t, "a.png", "image/png", data))
	require.NoError(t, err)

	require.NoError(t, s.Remove(publicPath))

	filename := filepath.Base(publicPath)
	_, err = os.Stat(filepath.Join(s.WorkDir, filename))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(s.PublicDir, filename))
	require.True(t, os.IsNotExist(err))
}
