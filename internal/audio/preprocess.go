package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// MediaDecodeError reports input that could not be decoded (corrupt file or
// unsupported codec). It is unrecoverable for the current generate attempt
// and must reach the caller; the preprocessor never hands back an empty or
// truncated buffer instead.
type MediaDecodeError struct {
	Path string
	Err  error
}

func (e *MediaDecodeError) Error() string {
	return fmt.Sprintf("failed to decode media %s: %v", e.Path, e.Err)
}

func (e *MediaDecodeError) Unwrap() error {
	return e.Err
}

// EncodedAudio is the preprocessed track, ready for base64 embedding in a
// transcription request.
type EncodedAudio struct {
	Bytes       []byte
	MIMEType    string
	SampleCount int
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Streams []struct {
		SampleRate string `json:"sample_rate"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Preprocess shrinks an arbitrary media file down to a small mono 16 kHz
// WAV: the full audio track is decoded to float samples, the first channel
// is retained (a plain channel pick, not a weighted downmix — known
// limitation), the signal is resampled to 16 kHz, and the result is
// quantized into a 44-byte-header PCM container.
func Preprocess(ctx context.Context, mediaPath string) (*EncodedAudio, error) {
	samples, err := decodeAndResample(ctx, mediaPath)
	if err != nil {
		return nil, err
	}
	return encodeSamples(samples), nil
}

// decodeAndResample runs the decode/downmix/resample pipeline, producing the
// mono 16 kHz signal every downstream consumer works with.
func decodeAndResample(ctx context.Context, mediaPath string) ([]float32, error) {
	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return nil, &MediaDecodeError{Path: mediaPath, Err: err}
	}

	sourceRate, err := probeSampleRate(ctx, mediaPath)
	if err != nil {
		return nil, &MediaDecodeError{Path: mediaPath, Err: err}
	}

	samples, err := decodeFirstChannel(mediaPath)
	if err != nil {
		return nil, &MediaDecodeError{Path: mediaPath, Err: err}
	}

	return Resample(samples, sourceRate, TargetSampleRate), nil
}

func encodeSamples(samples []float32) *EncodedAudio {
	return &EncodedAudio{
		Bytes:       EncodeWAV(Quantize(samples), TargetSampleRate),
		MIMEType:    "audio/wav",
		SampleCount: len(samples),
	}
}

// decodes the full audio track to little-endian float32, first channel only
func decodeFirstChannel(mediaPath string) ([]float32, error) {
	var buf bytes.Buffer

	err := ffmpeg.Input(mediaPath).
		Output("pipe:", ffmpeg.KwArgs{
			"f":  "f32le",
			"af": "pan=mono|c0=c0",
			"vn": "",
		}).
		WithOutput(&buf).
		Silent(true).
		Run()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg decode failed: %w", err)
	}

	raw := buf.Bytes()
	if len(raw) == 0 {
		return nil, fmt.Errorf("decoded audio track is empty")
	}

	samples := make([]float32, len(raw)/4)
	for i := range samples {
		bits := binary.LittleEndian.Uint32(raw[i*4:])
		samples[i] = math.Float32frombits(bits)
	}

	return samples, nil
}

// Resample converts samples from one rate to another by linear
// interpolation. Identical rates return a copy.
func Resample(samples []float32, fromRate, toRate int) []float32 {
	if fromRate == toRate || len(samples) == 0 {
		out := make([]float32, len(samples))
		copy(out, samples)
		return out
	}

	ratio := float64(fromRate) / float64(toRate)
	outLen := int(float64(len(samples)) / ratio)
	if outLen < 1 {
		outLen = 1
	}

	out := make([]float32, outLen)
	for i := range out {
		pos := float64(i) * ratio
		idx := int(pos)
		if idx >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := float32(pos - float64(idx))
		out[i] = samples[idx]*(1-frac) + samples[idx+1]*frac
	}

	return out
}

// Quantize clips float samples to [-1, 1] and converts them to 16-bit PCM.
func Quantize(samples []float32) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		out[i] = int16(math.Round(float64(s) * 32767))
	}
	return out
}

// sample rate of the first audio stream
func probeSampleRate(ctx context.Context, mediaPath string) (int, error) {
	probe, err := runFFprobe(ctx, mediaPath, "-show_streams", "-select_streams", "a:0")
	if err != nil {
		return 0, err
	}

	if len(probe.Streams) == 0 {
		return 0, fmt.Errorf("no audio stream in %s", mediaPath)
	}

	rate, err := strconv.Atoi(probe.Streams[0].SampleRate)
	if err != nil || rate <= 0 {
		return 0, fmt.Errorf("invalid sample rate %q", probe.Streams[0].SampleRate)
	}

	return rate, nil
}

// Duration reports the media duration via ffprobe.
func Duration(ctx context.Context, mediaPath string) (time.Duration, error) {
	probe, err := runFFprobe(ctx, mediaPath, "-show_format")
	if err != nil {
		return 0, err
	}

	seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

func runFFprobe(ctx context.Context, mediaPath string, args ...string) (*ffprobeOutput, error) {
	cmdArgs := append([]string{
		"-v", "quiet",
		"-print_format", "json",
	}, args...)
	cmdArgs = append(cmdArgs, mediaPath)

	cmd := exec.CommandContext(ctx, "ffprobe", cmdArgs...)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out.Bytes(), &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	return &probe, nil
}
