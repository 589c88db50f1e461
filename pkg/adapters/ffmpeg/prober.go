package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/user/flashframes/pkg/ports"
)

// Prober reads container metadata with ffprobe.
type Prober struct {
	ffprobePath string
}

// NewProber locates ffprobe and returns a Prober.
func NewProber() (*Prober, error) {
	p, err := FindFFprobe()
	if err != nil {
		return nil, err
	}
	return &Prober{ffprobePath: p}, nil
}

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
	Format  ffprobeFormat   `json:"format"`
}

type ffprobeStream struct {
	CodecName    string `json:"codec_name"`
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	NbFrames     string `json:"nb_frames"`
	Duration     string `json:"duration"`
}

type ffprobeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
}

// Probe runs ffprobe on path.
func (p *Prober) Probe(ctx context.Context, path string) (ports.VideoInfo, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.ffprobePath,
		"-v", "error",
		"-show_format",
		"-show_streams",
		"-of", "json",
		path,
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return ports.VideoInfo{}, fmt.Errorf("ffprobe: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	info, err := parseProbeOutput(stdout.Bytes())
	if err != nil {
		return ports.VideoInfo{}, err
	}
	info.Path = path
	return info, nil
}

func parseProbeOutput(data []byte) (ports.VideoInfo, error) {
	var out ffprobeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return ports.VideoInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	var video *ffprobeStream
	for i := range out.Streams {
		if out.Streams[i].CodecType == "video" {
			video = &out.Streams[i]
			break
		}
	}
	if video == nil {
		return ports.VideoInfo{}, fmt.Errorf("no video stream found")
	}

	info := ports.VideoInfo{
		Container: out.Format.FormatName,
		Codec:     video.CodecName,
		Width:     video.Width,
		Height:    video.Height,
	}

	// Frames exist only as long as the video stream lasts; the container
	// duration also covers longer audio.
	info.Duration = parseDuration(video.Duration)
	if info.Duration == 0 {
		info.Duration = parseDuration(out.Format.Duration)
	}

	info.FrameRate = parseFrameRate(video.AvgFrameRate)
	if info.FrameRate == 0 {
		info.FrameRate = parseFrameRate(video.RFrameRate)
	}

	if n, err := strconv.Atoi(video.NbFrames); err == nil {
		info.FrameCount = n
	} else if info.FrameRate > 0 {
		info.FrameCount = int(info.Duration*info.FrameRate + 0.5)
	}

	if info.Duration <= 0 {
		return info, fmt.Errorf("container reports no duration")
	}
	return info, nil
}

// parseDuration returns 0 for missing, "N/A" or non-positive values.
func parseDuration(s string) float64 {
	d, err := strconv.ParseFloat(s, 64)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}

// parseFrameRate parses ffprobe rationals such as "30000/1001".
func parseFrameRate(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		v, _ := strconv.ParseFloat(s, 64)
		return v
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}

var _ ports.VideoProber = (*Prober)(nil)
