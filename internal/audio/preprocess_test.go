package audio

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestPreprocessMissingFile(t *testing.T) {
	_, err := Preprocess(context.Background(), filepath.Join(t.TempDir(), "absent.mp4"))
	if err == nil {
		t.Fatal("expected error for missing media file")
	}

	var decodeErr *MediaDecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("expected *MediaDecodeError, got %T", err)
	}
	if decodeErr.Path == "" {
		t.Error("error does not identify the input path")
	}
}
