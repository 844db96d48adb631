package handler

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadHandler_Upload(t *testing.T) {
	env := newTestEnv()
	payload := base64.StdEncoding.EncodeToString([]byte("voice-bytes"))

	w := env.do(t, http.MethodPost, "/upload", map[string]interface{}{
		"file_data": payload, "file_name": "voice.webm", "file_type": "audio/webm", "folder": "voice",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	name := body["file_name"].(string)
	assert.True(t, strings.HasSuffix(name, ".webm"))
	assert.NotEqual(t, "voice.webm", name)
	assert.Equal(t, float64(len("voice-bytes")), body["file_size"])
	assert.Equal(t, "https://cdn.example.test/bucket/voice/"+name, body["url"])

	w2 := env.do(t, http.MethodPost, "/upload", map[string]interface{}{
		"file_data": payload, "file_name": "voice.webm", "file_type": "audio/webm", "folder": "voice",
	})
	require.Equal(t, http.StatusOK, w2.Code)
	assert.NotEqual(t, body["url"], decode(t, w2)["url"])
}

func TestUploadHandler_Errors(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/upload", map[string]interface{}{"file_name": "a.txt"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "file_data is required", errorOf(t, w))

	w = env.do(t, http.MethodPost, "/upload", map[string]interface{}{"file_data": "***"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "file_data is not valid base64", errorOf(t, w))

	env.store.Err = errors.New("bucket unreachable")
	w = env.do(t, http.MethodPost, "/upload", map[string]interface{}{"file_data": "aGk="})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "bucket unreachable", errorOf(t, w))
}
