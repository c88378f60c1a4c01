package transcribe

import "testing"

func TestExtractTranscript(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantCount    int
		wantLanguage string
		wantErr      bool
	}{
		{
			name: "wrapper object with language",
			input: `{"language": "english", "segments": [
				{"start": "00:00:00,000", "end": "00:00:02,500", "text": "Hello world"},
				{"start": "00:00:02,500", "end": "00:00:05,000", "text": "How are you"}
			]}`,
			wantCount:    2,
			wantLanguage: "english",
		},
		{
			name: "bare segments array",
			input: `[
				{"start": "00:00:00,000", "end": "00:00:02,500", "text": "Hello"}
			]`,
			wantCount: 1,
		},
		{
			name: "preamble and trailing chatter",
			input: `Here is your transcript:
			{"language": "spanish", "segments": [{"start": "00:00:01,000", "end": "00:00:03,000", "text": "Hola"}]}
			That's all!`,
			wantCount:    1,
			wantLanguage: "spanish",
		},
		{
			name: "speaker labels carried through",
			input: `{"segments": [
				{"start": "00:00:00,000", "end": "00:00:01,000", "speaker": "Alice", "text": "Hi"}
			]}`,
			wantCount: 1,
		},
		{
			name:    "no JSON",
			input:   `I could not transcribe this audio.`,
			wantErr: true,
		},
		{
			name:    "empty segments",
			input:   `{"language": "english", "segments": []}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transcript, err := extractTranscript(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", transcript)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(transcript.Segments) != tt.wantCount {
				t.Errorf("got %d segments, want %d", len(transcript.Segments), tt.wantCount)
			}
			if tt.wantLanguage != "" && transcript.Language != tt.wantLanguage {
				t.Errorf("language = %q, want %q", transcript.Language, tt.wantLanguage)
			}
		})
	}
}

func TestCleanJSONResponse(t *testing.T) {
	input := "```json\n[{\"start\": \"00:00:00,000\"}]\n```"
	want := `[{"start": "00:00:00,000"}]`
	if got := cleanJSONResponse(input); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
