// Package mp4probe reads video metadata from ISO-BMFF (MP4/MOV) containers
// by parsing boxes, without decoding any samples.
package mp4probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/user/flashframes/pkg/ports"
)

var (
	// ErrNoVideoTrack is returned when the file has no "vide" handler track.
	ErrNoVideoTrack = errors.New("mp4probe: no video track found")

	// ErrNoDuration is returned when neither the track nor the movie header
	// carries a duration.
	ErrNoDuration = errors.New("mp4probe: container reports no duration")
)

// Prober implements ports.VideoProber for MP4/MOV files.
type Prober struct{}

// New creates a new Prober.
func New() *Prober {
	return &Prober{}
}

// Probe parses the file at path.
func (p *Prober) Probe(ctx context.Context, path string) (ports.VideoInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	info, err := ProbeReader(f)
	if err != nil {
		return ports.VideoInfo{}, err
	}
	info.Path = path
	return info, nil
}

// ProbeReader parses MP4 data from reader.
func ProbeReader(reader io.ReadSeeker) (ports.VideoInfo, error) {
	file, err := mp4.DecodeFile(reader)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	moov := file.Moov
	if file.IsFragmented() && file.Init != nil {
		moov = file.Init.Moov
	}
	if moov == nil {
		return ports.VideoInfo{}, fmt.Errorf("decode mp4: missing moov box")
	}

	trak := videoTrack(moov)
	if trak == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}

	info := ports.VideoInfo{Container: "mp4"}
	if file.Ftyp != nil && file.Ftyp.MajorBrand() == "qt  " {
		info.Container = "mov"
	}
	info.Codec, info.Width, info.Height = sampleEntry(trak)

	timescale := trak.Mdia.Mdhd.Timescale
	var duration uint64
	var samples int

	if file.IsFragmented() {
		duration, samples, err = fragmentedTotals(file, moov, trak.Tkhd.TrackID)
		if err != nil {
			return ports.VideoInfo{}, err
		}
	} else {
		duration = trak.Mdia.Mdhd.Duration
		if minf := trak.Mdia.Minf; minf != nil && minf.Stbl != nil && minf.Stbl.Stsz != nil {
			samples = int(minf.Stbl.Stsz.SampleNumber)
		}
	}

	// Some muxers leave the media header duration at zero; fall back to mvhd.
	if duration == 0 && moov.Mvhd != nil && moov.Mvhd.Timescale != 0 {
		timescale = moov.Mvhd.Timescale
		duration = moov.Mvhd.Duration
	}

	info.Duration, info.FrameRate = timing(timescale, duration, samples)
	info.FrameCount = samples
	if info.Duration <= 0 {
		return info, ErrNoDuration
	}
	return info, nil
}

// timing converts a duration in timescale units and a sample count into
// seconds and frames per second.
func timing(timescale uint32, duration uint64, samples int) (seconds, fps float64) {
	if timescale == 0 {
		return 0, 0
	}
	seconds = float64(duration) / float64(timescale)
	if seconds > 0 && samples > 0 {
		fps = float64(samples) / seconds
	}
	return seconds, fps
}

func videoTrack(moov *mp4.MoovBox) *mp4.TrakBox {
	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Mdhd == nil {
			continue
		}
		if trak.Mdia.Hdlr.HandlerType == "vide" {
			return trak
		}
	}
	return nil
}

func sampleEntry(trak *mp4.TrakBox) (codec string, width, height int) {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return "unknown", 0, 0
	}
	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		codec = codecName(child.Type())
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			width, height = int(vse.Width), int(vse.Height)
		}
		if codec != "unknown" {
			return codec, width, height
		}
	}
	return "unknown", width, height
}

// codecName maps a sample entry four-character code to a codec name.
func codecName(boxType string) string {
	switch boxType {
	case "avc1", "avc3":
		return "h264"
	case "hvc1", "hev1":
		return "hevc"
	case "av01":
		return "av1"
	case "vp09":
		return "vp9"
	case "mp4v":
		return "mpeg4"
	default:
		return "unknown"
	}
}

func fragmentedTotals(file *mp4.File, moov *mp4.MoovBox, trackID uint32) (uint64, int, error) {
	var trex *mp4.TrexBox
	if moov.Mvex != nil {
		for _, t := range moov.Mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	var duration uint64
	var samples int
	for _, seg := range file.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd.TrackID != trackID {
					continue
				}
				full, err := frag.GetFullSamples(trex)
				if err != nil {
					return 0, 0, fmt.Errorf("get samples: %w", err)
				}
				for _, s := range full {
					duration += uint64(s.Dur)
				}
				samples += len(full)
			}
		}
	}
	return duration, samples, nil
}

var _ ports.VideoProber = (*Prober)(nil)
