package services

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"relay-messenger/internal/repository/repotest"
	relay_errors "relay-messenger/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadService_StoresDecodedBytes(t *testing.T) {
	store := repotest.NewObjectStore()
	svc := NewUploadService(store)
	payload := []byte("hello, relay")

	res, err := svc.Upload(context.Background(), UploadInput{
		FileData: base64.StdEncoding.EncodeToString(payload),
		FileName: "notes.final.txt",
		FileType: "text/plain",
		Folder:   "docs",
	})
	require.NoError(t, err)

	assert.Equal(t, len(payload), res.FileSize)
	assert.True(t, strings.HasSuffix(res.FileName, ".txt"))
	assert.NotEqual(t, "notes.final.txt", res.FileName)
	assert.Equal(t, "https://cdn.example.test/bucket/docs/"+res.FileName, res.URL)
	body, contentType, ok := store.Object("docs/" + res.FileName)
	require.True(t, ok)
	assert.Equal(t, payload, body)
	assert.Equal(t, "text/plain", contentType)
}

func TestUploadService_DefaultsAndDataURL(t *testing.T) {
	store := repotest.NewObjectStore()
	svc := NewUploadService(store)

	res, err := svc.Upload(context.Background(), UploadInput{
		FileData: "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte{0x89, 0x50, 0x4e, 0x47}),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.FileSize)
	assert.True(t, strings.HasSuffix(res.FileName, ".bin"))
	assert.Contains(t, res.URL, "/files/")
	_, contentType, ok := store.Object("files/" + res.FileName)
	require.True(t, ok)
	assert.Equal(t, DefaultUploadFileType, contentType)
}

func TestUploadService_RepeatedUploadsGetDistinctNames(t *testing.T) {
	svc := NewUploadService(repotest.NewObjectStore())
	in := UploadInput{FileData: base64.StdEncoding.EncodeToString([]byte("same")), FileName: "a.jpg"}

	first, err := svc.Upload(context.Background(), in)
	require.NoError(t, err)
	second, err := svc.Upload(context.Background(), in)
	require.NoError(t, err)

	assert.NotEqual(t, first.FileName, second.FileName)
	assert.NotEqual(t, first.URL, second.URL)
}

func TestUploadService_RejectsMissingOrInvalidData(t *testing.T) {
	store := repotest.NewObjectStore()
	svc := NewUploadService(store)

	_, err := svc.Upload(context.Background(), UploadInput{})
	assert.ErrorIs(t, err, relay_errors.ErrInvalidInput)

	_, err = svc.Upload(context.Background(), UploadInput{FileData: "%%% not base64 %%%"})
	assert.ErrorIs(t, err, relay_errors.ErrInvalidInput)
	assert.Zero(t, store.Len())
}

func TestUploadService_StoreFailureIsReturned(t *testing.T) {
	store := repotest.NewObjectStore()
	store.Err = errors.New("s3: access denied")
	svc := NewUploadService(store)

	_, err := svc.Upload(context.Background(), UploadInput{FileData: base64.StdEncoding.EncodeToString([]byte("x"))})
	require.Error(t, err)
	assert.NotErrorIs(t, err, relay_errors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "access denied")
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, "png", fileExtension("photo.png"))
	assert.Equal(t, "gz", fileExtension("archive.tar.gz"))
	assert.Equal(t, "bin", fileExtension("README"))
	assert.Equal(t, "bin", fileExtension("trailing."))
}
