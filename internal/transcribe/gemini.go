package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"tala/internal/audio"
)

// implements Transcriber using Google Gemini
type GeminiTranscriber struct {
	client  *genai.Client
	model   string
	options Options
}

// detected language plus segments from Gemini's JSON response
type geminiTranscript struct {
	Language string `json:"language"`
	Segments []Item `json:"segments"`
}

func NewGeminiTranscriber(ctx context.Context, apiKey string, opts Options) (*GeminiTranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &GeminiTranscriber{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

// Transcribe submits the preprocessed audio inline and parses the timed
// transcript out of the model response.
func (t *GeminiTranscriber) Transcribe(ctx context.Context, enc *audio.EncodedAudio) (*Result, error) {
	if enc == nil || len(enc.Bytes) == 0 {
		return nil, fmt.Errorf("no audio to transcribe")
	}

	prompt := t.buildPrompt()

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(enc.Bytes, enc.MIMEType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := t.client.Models.GenerateContent(ctx, t.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	transcript, err := t.parseResponse(result)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcription: %w", err)
	}

	return &Result{
		Language: transcript.Language,
		Items:    transcript.Segments,
	}, nil
}

func (t *GeminiTranscriber) buildPrompt() string {
	var sb strings.Builder

	sb.WriteString("Generate a detailed transcript of this audio. ")
	sb.WriteString("For each sentence or phrase, provide the start timecode, end timecode, the speaker if identifiable, and the exact text spoken. ")
	sb.WriteString("Format your response as a JSON object with a 'language' field naming the detected language ")
	sb.WriteString("and a 'segments' array of objects with 'start', 'end', 'speaker', and 'text' fields, ")
	sb.WriteString("where 'start' and 'end' are timecodes formatted as HH:MM:SS,mmm. ")

	if t.options.Language != "" {
		sb.WriteString(fmt.Sprintf("The audio is in %s. ", t.options.Language))
	}

	if t.options.Prompt != "" {
		sb.WriteString(t.options.Prompt)
		sb.WriteString(" ")
	}

	sb.WriteString("Return ONLY the JSON object, no other text or markdown formatting.")

	return sb.String()
}

func (t *GeminiTranscriber) parseResponse(result *genai.GenerateContentResponse) (*geminiTranscript, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var responseText string
	for _, candidate := range result.Candidates {
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					responseText += part.Text
				}
			}
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text in Gemini response")
	}

	return extractTranscript(cleanJSONResponse(responseText))
}

// extractTranscript scans for the first decodable JSON value in the text,
// tolerating preamble and trailing chatter around it. A bare segments array
// is accepted alongside the full wrapper object.
func extractTranscript(text string) (*geminiTranscript, error) {
	for i := 0; i < len(text); i++ {
		if text[i] != '{' && text[i] != '[' {
			continue
		}

		decoder := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			continue
		}

		if text[i] == '[' {
			var items []Item
			if err := json.Unmarshal(raw, &items); err == nil && len(items) > 0 {
				return &geminiTranscript{Segments: items}, nil
			}
			continue
		}

		var transcript geminiTranscript
		if err := json.Unmarshal(raw, &transcript); err == nil && len(transcript.Segments) > 0 {
			return &transcript, nil
		}
	}

	return nil, fmt.Errorf("no valid transcript JSON found in response")
}

// removes markdown formatting from the response
func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)

	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")

	return strings.TrimSpace(s)
}
