package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEwayBillGetReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ewaybill.png")
	if err := os.WriteFile(path, []byte("\x89PNG bill"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	svc := NewEwayBillService(nil, path, 0)
	encoded, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !strings.HasPrefix(encoded, "data:image/png;base64,") {
		t.Errorf("expected data URL, got %q", encoded)
	}
}

func TestEwayBillMissingFile(t *testing.T) {
	svc := NewEwayBillService(nil, filepath.Join(t.TempDir(), "absent.png"), 0)
	if _, err := svc.Get(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}
