package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	relay_errors "relay-messenger/pkg/errors"

	"github.com/google/uuid"
)

const (
	DefaultUploadFileName = "file"
	DefaultUploadFileType = "application/octet-stream"
	DefaultUploadFolder   = "files"
)

// ObjectStore is the slice of object storage the upload gateway needs.
type ObjectStore interface {
	PutObject(ctx context.Context, key, contentType string, body []byte) error
	FileURL(key string) string
}

type UploadService struct {
	store ObjectStore
}

func NewUploadService(store ObjectStore) *UploadService {
	return &UploadService{store: store}
}

type UploadInput struct {
	FileData string
	FileName string
	FileType string
	Folder   string
}

type UploadResult struct {
	URL      string
	FileName string
	FileSize int
}

func (s *UploadService) Upload(ctx context.Context, in UploadInput) (UploadResult, error) {
	if in.FileData == "" {
		return UploadResult{}, fmt.Errorf("%w: file_data is required", relay_errors.ErrInvalidInput)
	}
	data, err := decodeBase64Payload(in.FileData)
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: file_data is not valid base64", relay_errors.ErrInvalidInput)
	}

	if in.FileName == "" {
		in.FileName = DefaultUploadFileName
	}
	if in.FileType == "" {
		in.FileType = DefaultUploadFileType
	}
	folder := strings.Trim(in.Folder, "/")
	if folder == "" {
		folder = DefaultUploadFolder
	}

	name := uuid.NewString() + "." + fileExtension(in.FileName)
	key := folder + "/" + name
	if err := s.store.PutObject(ctx, key, in.FileType, data); err != nil {
		return UploadResult{}, err
	}

	return UploadResult{
		URL:      s.store.FileURL(key),
		FileName: name,
		FileSize: len(data),
	}, nil
}

// decodeBase64Payload accepts plain base64 or a data URL.
func decodeBase64Payload(raw string) ([]byte, error) {
	if strings.HasPrefix(raw, "data:") {
		if i := strings.Index(raw, ","); i >= 0 {
			raw = raw[i+1:]
		}
	}
	raw = strings.TrimSpace(raw)
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(raw)
	}
	return data, err
}

func fileExtension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return "bin"
	}
	return name[i+1:]
}
