package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) multipartRequest(t *testing.T, path, token, field, filename, mime string, content []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	hdr.Set("Content-Type", mime)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAvatarUpload(t *testing.T) {
	env := setupEnv(t)
	_, token := env.createUser(t, "up1@example.com", "user")
	require.NoError(t, os.MkdirAll(filepath.Join(env.cfg.UploadDir, "avatars"), 0o755))

	resp := env.multipartRequest(t, "/api/users/me/avatar", token, "avatar", "me.png", "image/png", []byte("fake-png-bytes"))
	require.Equal(t, 200, resp.StatusCode)
	body := decodeMap(t, resp)
	rel := body["avatar_path"].(string)
	assert.Contains(t, rel, "avatars/")

	// The file actually lands on disk.
	_, err := os.Stat(filepath.Join(env.cfg.UploadDir, filepath.FromSlash(rel)))
	assert.NoError(t, err)

	resp = env.request(t, "GET", "/api/users/me", token, nil)
	assert.Equal(t, rel, decodeMap(t, resp)["avatar_path"])
}

func TestAvatarUploadRejectsWrongType(t *testing.T) {
	env := setupEnv(t)
	_, token := env.createUser(t, "up2@example.com", "user")
	require.NoError(t, os.MkdirAll(filepath.Join(env.cfg.UploadDir, "avatars"), 0o755))

	resp := env.multipartRequest(t, "/api/users/me/avatar", token, "avatar", "evil.txt", "text/plain", []byte("not an image"))
	require.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "Only JPEG, PNG and WebP images are allowed", decodeMap(t, resp)["error"])
}

func TestAvatarUploadRejectsOversized(t *testing.T) {
	env := setupEnv(t)
	env.cfg.MaxFileSize = 16 // shrink the ceiling instead of uploading megabytes
	_, token := env.createUser(t, "up3@example.com", "user")
	require.NoError(t, os.MkdirAll(filepath.Join(env.cfg.UploadDir, "avatars"), 0o755))

	resp := env.multipartRequest(t, "/api/users/me/avatar", token, "avatar", "big.png", "image/png", bytes.Repeat([]byte("x"), 64))
	require.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "File too large", decodeMap(t, resp)["error"])
}

func TestAvatarRequired(t *testing.T) {
	env := setupEnv(t)
	_, token := env.createUser(t, "up4@example.com", "user")

	resp := env.request(t, "POST", "/api/users/me/avatar", token, nil)
	assert.Equal(t, 400, resp.StatusCode)
}
