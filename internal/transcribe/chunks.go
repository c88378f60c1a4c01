package transcribe

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"tala/internal/audio"
	"tala/internal/timecode"
)

// optional interface for transcribers that process chunked audio with a
// bounded worker pool
type ConcurrentTranscriber interface {
	Transcriber
	TranscribeChunks(
		ctx context.Context,
		chunks []audio.Chunk,
		concurrency int,
	) (*Result, error)
}

func (t *GeminiTranscriber) TranscribeChunks(
	ctx context.Context,
	chunks []audio.Chunk,
	concurrency int,
) (*Result, error) {
	return transcribeChunksConcurrent(ctx, chunks, concurrency, t.Transcribe)
}

type chunkResult struct {
	index    int
	language string
	items    []Item
	err      error
}

// transcribeChunksConcurrent fans chunks out to a bounded worker pool,
// re-bases each chunk's timecodes onto the track timeline, and merges the
// per-chunk transcripts back in chunk order.
func transcribeChunksConcurrent(
	ctx context.Context,
	chunks []audio.Chunk,
	concurrency int,
	fn func(ctx context.Context, enc *audio.EncodedAudio) (*Result, error),
) (*Result, error) {
	if len(chunks) == 0 {
		return &Result{}, nil
	}

	if concurrency <= 0 {
		concurrency = 3
	}
	if concurrency > len(chunks) {
		concurrency = len(chunks)
	}

	workChan := make(chan audio.Chunk, len(chunks))
	resultChan := make(chan chunkResult, len(chunks))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chunk := range workChan {
				result, err := fn(ctx, chunk.Audio)
				if err != nil {
					resultChan <- chunkResult{index: chunk.Index, err: err}
					continue
				}
				resultChan <- chunkResult{
					index:    chunk.Index,
					language: result.Language,
					items:    offsetItems(result.Items, chunk.Offset),
				}
			}
		}()
	}

	for _, chunk := range chunks {
		workChan <- chunk
	}
	close(workChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	ordered := make([]chunkResult, 0, len(chunks))
	for result := range resultChan {
		if result.err != nil {
			return nil, fmt.Errorf("chunk %d failed: %w", result.index, result.err)
		}
		ordered = append(ordered, result)
	}

	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].index < ordered[j].index
	})

	merged := &Result{}
	for _, result := range ordered {
		if merged.Language == "" {
			merged.Language = result.language
		}
		merged.Items = append(merged.Items, result.items...)
	}

	return merged, nil
}

// offsetItems re-bases chunk-relative timecodes onto the track timeline by
// adding the chunk's start offset to each timestamp.
func offsetItems(items []Item, offset float64) []Item {
	if offset == 0 {
		return items
	}

	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = item
		out[i].Start = timecode.Format(timecode.Parse(item.Start) + offset)
		out[i].End = timecode.Format(timecode.Parse(item.End) + offset)
	}
	return out
}
