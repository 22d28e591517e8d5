package models

import (
	"strings"
	"time"
)

// Media kinds, each persisted to its own upload directory
const (
	MediaKindOtoscope    = "otoscope"
	MediaKindStethoscope = "stethoscope"
	MediaKindDocument    = "document"
)

// allowedExtensions maps each media kind to its accepted file extensions
var allowedExtensions = map[string][]string{
	MediaKindOtoscope:    {".jpg", ".jpeg", ".png", ".webp", ".mp4", ".mov"},
	MediaKindStethoscope: {".wav", ".mp3", ".m4a", ".ogg"},
	MediaKindDocument:    {".pdf"},
}

// MediaFile represents a stored diagnostic media upload
type MediaFile struct {
	ID          int64     `json:"id"`
	PatientID   *int      `json:"patient_id,omitempty"`
	Kind        string    `json:"kind"`
	FileName    string    `json:"file_name"`
	StoredPath  string    `json:"stored_path"`
	ContentType string    `json:"content_type,omitempty"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedBy  string    `json:"uploaded_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsValidMediaKind reports whether kind names a known upload category
func IsValidMediaKind(kind string) bool {
	_, ok := allowedExtensions[kind]
	return ok
}

// IsAllowedExtension reports whether ext is accepted for the given kind
func IsAllowedExtension(kind, ext string) bool {
	for _, allowed := range allowedExtensions[kind] {
		if strings.EqualFold(ext, allowed) {
			return true
		}
	}
	return false
}
