package media

import (
	"path/filepath"
	"strings"
)

// MaxFileSize is the configured upload ceiling (100 MB).
const MaxFileSize = 100 * 1024 * 1024

var supportedMIMETypes = map[string]string{
	"video/mp4":        "mp4",
	"video/webm":       "webm",
	"video/ogg":        "ogg",
	"video/quicktime":  "mov",
	"video/x-msvideo":  "avi",
	"video/x-matroska": "mkv",
}

var acceptedExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".ogg":  true,
	".ogv":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
}

// Validate checks a file's declared MIME type, size and filename extension
// before any bytes are processed. The returned error is one of the taxonomy
// sentinels.
func Validate(filename, mimeType string, size int64) error {
	if _, ok := supportedMIMETypes[normalizeMIME(mimeType)]; !ok {
		return ErrUnsupportedFormat
	}
	if size > MaxFileSize {
		return ErrFileTooLarge
	}
	if !acceptedExtensions[strings.ToLower(filepath.Ext(filename))] {
		return ErrInvalidExtension
	}
	return nil
}

// FormatTag maps a MIME type to the short format label shown in the catalog.
func FormatTag(mimeType string) string {
	if tag, ok := supportedMIMETypes[normalizeMIME(mimeType)]; ok {
		return tag
	}
	if parts := strings.SplitN(mimeType, "/", 2); len(parts) == 2 && parts[1] != "" {
		return parts[1]
	}
	return "mp4"
}

func normalizeMIME(mimeType string) string {
	// strip any ";codecs=..." parameter
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
