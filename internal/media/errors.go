package media

import "errors"

// Upload pipeline error taxonomy. None of these abort a batch: each failed
// file is logged and skipped while the rest continue.
var (
	ErrUnsupportedFormat = errors.New("unsupported media format")
	ErrFileTooLarge      = errors.New("file exceeds maximum upload size")
	ErrInvalidExtension  = errors.New("file extension not accepted")
	ErrUnsupportedMedia  = errors.New("media could not be decoded")
	ErrProcessingTimeout = errors.New("media processing timed out")
	ErrThumbnailFailure  = errors.New("thumbnail generation failed")
)
