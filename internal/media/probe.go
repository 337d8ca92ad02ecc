package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// ProbeResult carries the metadata extracted from a media file. A zero
// Duration means the container exposed no usable duration and the caller
// should synthesize one.
type ProbeResult struct {
	Duration float64
	Width    int
	Height   int
}

// Resolution renders the probed dimensions as "WxH", or "" when unknown.
func (r *ProbeResult) Resolution() string {
	if r.Width <= 0 || r.Height <= 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Prober inspects a stored media file and reports its metadata. A decode
// failure is returned as an error; a missing prober binary surfaces as
// exec.ErrNotFound so the pipeline can fall back to synthesized metadata.
type Prober interface {
	Probe(ctx context.Context, location string) (*ProbeResult, error)
}

// FFProbe shells out to ffprobe for metadata extraction.
type FFProbe struct {
	binary string
}

func NewFFProbe() *FFProbe {
	return &FFProbe{binary: "ffprobe"}
}

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

func (f *FFProbe) Probe(ctx context.Context, location string) (*ProbeResult, error) {
	cmd := exec.CommandContext(ctx, f.binary,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		location,
	)

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("ffprobe: %w", err)
	}

	var parsed ffprobeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, fmt.Errorf("ffprobe output: %w", err)
	}

	result := &ProbeResult{}
	if parsed.Format.Duration != "" {
		if d, err := strconv.ParseFloat(parsed.Format.Duration, 64); err == nil {
			result.Duration = d
		}
	}
	for _, s := range parsed.Streams {
		if s.CodecType == "video" && s.Width > 0 && s.Height > 0 {
			result.Width = s.Width
			result.Height = s.Height
			break
		}
	}
	return result, nil
}
