package services_test

import (
	"errors"
	"strings"
	"testing"

	"reclip/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	err := services.Wrap(services.ErrAcquisition, "acquire", "download", "yt-dlp exited 1", nil)
	if !errors.Is(err, services.ErrAcquisition) {
		t.Fatalf("expected ErrAcquisition, got %v", err)
	}
	if !strings.Contains(err.Error(), "acquire: download: yt-dlp exited 1") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := services.Wrap(services.ErrPublish, "publish", "upload", "remote call failed", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to survive errors.Is")
	}
	if !errors.Is(err, services.ErrPublish) {
		t.Fatal("expected publish marker to survive errors.Is")
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "stage", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected ErrTransient fallback, got %v", err)
	}
}

func TestClassification(t *testing.T) {
	if !services.IsSkip(services.Wrap(services.ErrNoContent, "segments", "build", "no matches", nil)) {
		t.Fatal("ErrNoContent should classify as skip")
	}
	if services.IsSkip(services.Wrap(services.ErrPublish, "publish", "", "", nil)) {
		t.Fatal("ErrPublish should not classify as skip")
	}
	if !services.IsRetryable(services.ErrAcquisition) {
		t.Fatal("ErrAcquisition should be retryable")
	}
	if services.IsRetryable(services.ErrConfiguration) {
		t.Fatal("ErrConfiguration should not be retryable")
	}
}
