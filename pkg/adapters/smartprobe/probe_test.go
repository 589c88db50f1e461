package smartprobe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/flashframes/pkg/adapters/logger"
	"github.com/user/flashframes/pkg/mocks"
	"github.com/user/flashframes/pkg/ports"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

var ftypHeader = []byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm'}

func TestSniffISOBMFF(t *testing.T) {
	if !sniffISOBMFF(ftypHeader) {
		t.Error("expected ftyp header to be ISO-BMFF")
	}
	if sniffISOBMFF([]byte{0x1A, 0x45, 0xDF, 0xA3, 0, 0, 0, 0}) {
		t.Error("expected Matroska header not to be ISO-BMFF")
	}
	if sniffISOBMFF([]byte{1, 2}) {
		t.Error("expected short header not to be ISO-BMFF")
	}
}

func TestProbe_MP4UsesBoxParser(t *testing.T) {
	path := writeFile(t, "a.mp4", ftypHeader)
	mp4 := &mocks.VideoProber{Info: ports.VideoInfo{Duration: 10}}
	ff := &mocks.VideoProber{Err: errors.New("should not be called")}

	p := NewWith(mp4, ff, logger.NewNoop())
	info, err := p.Probe(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Duration != 10 {
		t.Errorf("expected duration 10, got %v", info.Duration)
	}
	if p.Backend() != BackendMP4 {
		t.Errorf("expected mp4 backend, got %s", p.Backend())
	}
	if ff.Calls != 0 {
		t.Errorf("expected ffprobe not to be called, got %d calls", ff.Calls)
	}
}

func TestProbe_FallsBackToFFprobe(t *testing.T) {
	path := writeFile(t, "a.mov", ftypHeader)
	mp4 := &mocks.VideoProber{Err: errors.New("bad box")}
	ff := &mocks.VideoProber{Info: ports.VideoInfo{Duration: 4}}

	p := NewWith(mp4, ff, logger.NewNoop())
	info, err := p.Probe(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Duration != 4 || p.Backend() != BackendFFprobe {
		t.Errorf("expected ffprobe result, got %+v via %s", info, p.Backend())
	}
}

func TestProbe_NonMP4WithoutFFprobe(t *testing.T) {
	path := writeFile(t, "a.mkv", []byte{0x1A, 0x45, 0xDF, 0xA3, 0, 0, 0, 0})
	mp4 := &mocks.VideoProber{}

	p := NewWith(mp4, nil, logger.NewNoop())
	_, err := p.Probe(context.Background(), path)
	if !errors.Is(err, ErrNoBackend) {
		t.Errorf("expected ErrNoBackend, got %v", err)
	}
	if mp4.Calls != 0 {
		t.Error("expected box parser to be skipped for non-ISO input")
	}
}

func TestProbe_MissingFile(t *testing.T) {
	p := NewWith(&mocks.VideoProber{}, nil, logger.NewNoop())
	if _, err := p.Probe(context.Background(), filepath.Join(t.TempDir(), "none.mp4")); err == nil {
		t.Error("expected error for missing file")
	}
}
