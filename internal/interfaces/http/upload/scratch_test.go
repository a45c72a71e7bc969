package upload

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name, mimeType string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+name+`"`)
	h.Set("Content-Type", mimeType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, _ = part.Write(data)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestSaveAndRelease(t *testing.T) {
	store := NewStore(t.TempDir())
	f, err := store.Save(fileHeader(t, "Photo.PNG", "image/png", []byte("pixels")))
	require.NoError(t, err)

	assert.Equal(t, "Photo.PNG", f.Filename())
	assert.Equal(t, "image/png", f.MimeType())
	assert.EqualValues(t, 6, f.Size())
	assert.Contains(t, f.Path(), ".png")

	data, err := f.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))

	f.Release(context.Background())
	f.Release(context.Background())
	_, statErr := os.Stat(f.Path())
	assert.True(t, os.IsNotExist(statErr))

	_, err = f.Bytes()
	require.Error(t, err)
}

func TestScratchNamesAreUnique(t *testing.T) {
	a := scratchName("a.pdf")
	b := scratchName("a.pdf")
	assert.NotEqual(t, a, b)
	assert.NotContains(t, scratchName("../../etc/passwd"), "/")
}
