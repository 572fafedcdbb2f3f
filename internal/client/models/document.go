package models

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultFilename names documents uploaded without a name.
	DefaultFilename = "document"
	// DefaultMimeType is used when the upload carries no content type.
	DefaultMimeType = "application/octet-stream"
)

// Document is metadata about a file attached to an entry. FileURL holds an
// inline data URI, an external URL, an s3://bucket/key reference or nothing.
type Document struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	EntryID    string    `json:"entryId"`
	Filename   string    `json:"filename"`
	FileURL    string    `json:"fileUrl"`
	MimeType   string    `json:"mimeType"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// HasContent reports whether the document can be opened.
func (d Document) HasContent() bool {
	return strings.TrimSpace(d.FileURL) != ""
}

// FileInput describes an uploaded file.
type FileInput struct {
	Name     string
	DataURL  string
	MimeType string
}

var ErrNotDataURI = errors.New("not a base64 data URI")

// DataURI is a decoded data: URL.
type DataURI struct {
	MimeType string
	Data     []byte
}

// ParseDataURI decodes "data:<mime>;base64,<payload>".
func ParseDataURI(raw string) (DataURI, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(raw), "data:")
	if !ok {
		return DataURI{}, ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return DataURI{}, ErrNotDataURI
	}

	params := strings.Split(meta, ";")
	if params[len(params)-1] != "base64" {
		return DataURI{}, ErrNotDataURI
	}

	mime := params[0]
	if mime == "" {
		mime = DefaultMimeType
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return DataURI{}, fmt.Errorf("decode data URI payload: %w", err)
	}
	return DataURI{MimeType: mime, Data: data}, nil
}

// EncodeDataURI is the inverse of ParseDataURI.
func EncodeDataURI(mime string, data []byte) string {
	if mime == "" {
		mime = DefaultMimeType
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// NormalizePortalURL makes a user-entered portal address openable by adding
// an https:// scheme unless it already starts with http:// or https://.
// Blank input yields "".
func NormalizePortalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	return "https://" + raw
}
