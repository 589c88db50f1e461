// Package smartprobe selects a metadata backend per file: box parsing for
// ISO-BMFF containers, ffprobe for everything else.
package smartprobe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/user/flashframes/pkg/adapters/ffmpeg"
	"github.com/user/flashframes/pkg/adapters/mp4probe"
	"github.com/user/flashframes/pkg/ports"
)

// Backend names the prober that produced a result.
type Backend string

const (
	// BackendMP4 parses MP4/MOV boxes in-process.
	BackendMP4 Backend = "mp4ff"
	// BackendFFprobe runs the ffprobe executable.
	BackendFFprobe Backend = "ffprobe"
)

// ErrNoBackend is returned when no prober can handle the file.
var ErrNoBackend = errors.New("smartprobe: no metadata backend available")

// isoBoxTypes are box types that may appear at offset 4 of an ISO-BMFF file.
var isoBoxTypes = [][]byte{
	[]byte("ftyp"), []byte("moov"), []byte("mdat"), []byte("free"), []byte("wide"), []byte("skip"),
}

// Prober implements ports.VideoProber by delegating to mp4 or ffprobe.
type Prober struct {
	mp4     ports.VideoProber
	ffprobe ports.VideoProber // nil when ffprobe is not installed
	logger  ports.Logger

	lastBackend Backend
}

// New creates a Prober. ffprobe is optional; without it only MP4/MOV inputs
// can be probed.
func New(logger ports.Logger) *Prober {
	p := &Prober{
		mp4:    mp4probe.New(),
		logger: logger.WithComponent("probe"),
	}
	if fp, err := ffmpeg.NewProber(); err == nil {
		p.ffprobe = fp
	}
	return p
}

// NewWith creates a Prober with explicit backends (ffprobe may be nil).
func NewWith(mp4, ffprobe ports.VideoProber, logger ports.Logger) *Prober {
	return &Prober{mp4: mp4, ffprobe: ffprobe, logger: logger.WithComponent("probe")}
}

// Backend returns the backend used by the last successful Probe.
func (p *Prober) Backend() Backend {
	return p.lastBackend
}

// Probe reads metadata for path.
func (p *Prober) Probe(ctx context.Context, path string) (ports.VideoInfo, error) {
	iso, err := IsISOBMFF(path)
	if err != nil {
		return ports.VideoInfo{}, err
	}

	if iso {
		info, err := p.mp4.Probe(ctx, path)
		if err == nil {
			p.lastBackend = BackendMP4
			return info, nil
		}
		if p.ffprobe == nil {
			return ports.VideoInfo{}, err
		}
		p.logger.Debug("Box parsing failed, falling back to ffprobe: %s", err)
	}

	if p.ffprobe == nil {
		return ports.VideoInfo{}, fmt.Errorf("%w: %s is not MP4/MOV and ffprobe is missing", ErrNoBackend, path)
	}
	info, err := p.ffprobe.Probe(ctx, path)
	if err != nil {
		return ports.VideoInfo{}, err
	}
	p.lastBackend = BackendFFprobe
	return info, nil
}

// IsISOBMFF sniffs the first box header of the file.
func IsISOBMFF(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header := make([]byte, 8)
	if _, err := io.ReadFull(f, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	return sniffISOBMFF(header), nil
}

func sniffISOBMFF(header []byte) bool {
	if len(header) < 8 {
		return false
	}
	for _, t := range isoBoxTypes {
		if bytes.Equal(header[4:8], t) {
			return true
		}
	}
	return false
}

var _ ports.VideoProber = (*Prober)(nil)
