package audio

import (
	"context"
	"time"
)

// Chunk is one fixed-duration slice of the preprocessed track, encoded as
// its own standalone container. Offset is the chunk's start relative to the
// whole track; timestamps transcribed within a chunk are re-based onto the
// track timeline by adding it.
type Chunk struct {
	Index  int
	Offset float64 // seconds from the start of the track
	Audio  *EncodedAudio
}

// PreprocessChunks runs the same decode/downmix/resample pipeline as
// Preprocess, then splits the 16 kHz signal into chunkDuration slices so
// arbitrarily long media stays within per-request payload limits. A
// non-positive duration yields a single chunk covering the whole track.
func PreprocessChunks(
	ctx context.Context,
	mediaPath string,
	chunkDuration time.Duration,
) ([]Chunk, error) {
	samples, err := decodeAndResample(ctx, mediaPath)
	if err != nil {
		return nil, err
	}

	parts := splitSamples(samples, TargetSampleRate, chunkDuration)

	chunks := make([]Chunk, len(parts))
	offset := 0
	for i, part := range parts {
		chunks[i] = Chunk{
			Index:  i,
			Offset: float64(offset) / float64(TargetSampleRate),
			Audio:  encodeSamples(part),
		}
		offset += len(part)
	}

	return chunks, nil
}

// splitSamples cuts the signal into chunkDuration slices; the last slice
// holds the remainder. The slices alias the input buffer.
func splitSamples(
	samples []float32,
	sampleRate int,
	chunkDuration time.Duration,
) [][]float32 {
	chunkLen := int(chunkDuration.Seconds() * float64(sampleRate))
	if chunkLen <= 0 || len(samples) == 0 {
		return [][]float32{samples}
	}

	var parts [][]float32
	for start := 0; start < len(samples); start += chunkLen {
		end := start + chunkLen
		if end > len(samples) {
			end = len(samples)
		}
		parts = append(parts, samples[start:end])
	}

	return parts
}
