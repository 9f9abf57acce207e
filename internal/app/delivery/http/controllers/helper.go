package controllers

import (
	"edulink-service/internal/pkg/constvars"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 10 * time.Second

func actorFromContext(r *http.Request) (userID, role string) {
	userID, _ = r.Context().Value(constvars.ContextUserIDKey).(string)
	role, _ = r.Context().Value(constvars.ContextUserRoleKey).(string)
	return userID, role
}

// readUploadedFile pulls the "file" part out of a multipart form and
// returns its content, name, and MIME type.
func readUploadedFile(r *http.Request, maxSizeInMegabyte int) ([]byte, string, string, error) {
	maxSize := int64(maxSizeInMegabyte) << 20
	if err := r.ParseMultipartForm(maxSize); err != nil {
		return nil, "", "", err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize))
	if err != nil {
		return nil, "", "", err
	}

	contentType := header.Header.Get(constvars.HeaderContentType)
	if contentType == "" {
		contentType = constvars.MIMEOctetStream
	}
	return data, header.Filename, contentType, nil
}
