package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// Item is one caption text keyed by its stable event identifier. The same
// shape is used for input and output; results are matched back onto the
// document by identifier, and any identifier absent from the response keeps
// its prior text unchanged.
type Item struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// interface for text translation
type Translator interface {
	Translate(ctx context.Context, items []Item) ([]Item, error)
}

// optional interface for translators that support concurrent batch processing
type ConcurrentTranslator interface {
	Translator
	TranslateWithConcurrency(
		ctx context.Context,
		items []Item,
		concurrency int,
	) ([]Item, error)
}

// translation service provider
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

const DefaultBatchSize = 50

type Options struct {
	InputLanguage  string
	TargetLanguage string
	Model          string
	Prompt         string
	BatchSize      int // items per API request (default 50)
}

func (o Options) batchSize() int {
	if o.BatchSize > 0 {
		return o.BatchSize
	}
	return DefaultBatchSize
}

// creates Translator based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Translator, error) {
	if opts.TargetLanguage == "" {
		return nil, fmt.Errorf("target language is required")
	}

	switch provider {
	case ProviderGemini:
		return NewGeminiTranslator(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAITranslator(ctx, apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicTranslator(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported translation provider: %s", provider)
	}
}

// batchFunc is one provider API call over a single batch of items.
type batchFunc func(ctx context.Context, batch []Item) ([]Item, error)

// translateInBatches splits items into batches and runs fn over each in
// order. Providers share this loop so one failed batch fails the whole call
// and no partial result reaches the document.
func translateInBatches(
	ctx context.Context,
	items []Item,
	batchSize int,
	fn batchFunc,
) ([]Item, error) {
	if len(items) == 0 {
		return []Item{}, nil
	}

	var all []Item
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}

		results, err := fn(ctx, items[i:end])
		if err != nil {
			return nil, fmt.Errorf("batch %d failed: %w", i/batchSize, err)
		}
		all = append(all, results...)
	}

	return all, nil
}

// translateBatchesConcurrent fans batches out to a bounded worker pool.
// Workers pull batch indices from a shared queue; results are reassembled in
// batch order and the first failed batch cancels the rest and fails the
// whole call.
func translateBatchesConcurrent(
	ctx context.Context,
	items []Item,
	batchSize int,
	concurrency int,
	fn batchFunc,
) ([]Item, error) {
	if len(items) == 0 {
		return []Item{}, nil
	}

	if concurrency <= 0 {
		concurrency = 3
	}

	var batches [][]Item
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[i:end])
	}

	if len(batches) == 1 {
		return fn(ctx, batches[0])
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type batchResult struct {
		index   int
		results []Item
		err     error
	}

	workChan := make(chan int)
	resultChan := make(chan batchResult, len(batches))

	var wg sync.WaitGroup
	for i := 0; i < concurrency && i < len(batches); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case batchIdx, ok := <-workChan:
					if !ok {
						return
					}

					results, err := fn(ctx, batches[batchIdx])
					if err != nil {
						cancel()
					}
					resultChan <- batchResult{
						index:   batchIdx,
						results: results,
						err:     err,
					}
				}
			}
		}()
	}

	go func() {
		defer close(workChan)
		for i := range batches {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	collected := make([][]Item, len(batches))
	var firstErr error
	for result := range resultChan {
		if result.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf(
					"batch %d failed: %w",
					result.index,
					result.err,
				)
			}
			continue
		}
		collected[result.index] = result.results
	}

	if firstErr != nil {
		return nil, firstErr
	}

	var all []Item
	for _, results := range collected {
		all = append(all, results...)
	}

	return all, nil
}

// BuildPrompt creates the translation prompt for LLM providers
func BuildPrompt(opts Options, items []Item) string {
	var sb strings.Builder

	if opts.InputLanguage != "" {
		sb.WriteString(fmt.Sprintf(
			"Translate the following %s caption texts to %s.\n\n",
			opts.InputLanguage,
			opts.TargetLanguage,
		))
	} else {
		sb.WriteString(fmt.Sprintf(
			"Translate the following caption texts to %s.\n\n",
			opts.TargetLanguage,
		))
	}

	sb.WriteString("IMPORTANT INSTRUCTIONS:\n")
	sb.WriteString(
		"1. Translate ONLY the text content, preserving the meaning.\n",
	)
	sb.WriteString("2. Preserve line breaks in the same positions.\n")
	sb.WriteString("3. Return ONLY a JSON array with the same structure.\n")
	sb.WriteString("4. Each object must have 'id' and 'text' fields.\n")
	sb.WriteString(
		"5. The 'id' values must match the input identifiers exactly.\n",
	)
	sb.WriteString("6. Do not add any explanation or markdown formatting.\n\n")

	if opts.Prompt != "" {
		sb.WriteString(
			fmt.Sprintf("Additional instructions: %s\n\n", opts.Prompt),
		)
	}

	sb.WriteString("Input JSON:\n")

	inputJSON, _ := json.MarshalIndent(items, "", "  ")
	sb.Write(inputJSON)

	sb.WriteString("\n\nOutput the translated JSON array only:")

	return sb.String()
}
