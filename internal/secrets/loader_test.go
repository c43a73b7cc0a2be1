package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	keyFile := filepath.Join(dir, "key")
	if err := os.WriteFile(keyFile, []byte("  from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	emptyFile := filepath.Join(dir, "empty")
	if err := os.WriteFile(emptyFile, []byte("\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CAR_ADVISOR_TEST_KEY", " from-env ")

	tests := []struct {
		name    string
		src     Source
		expect  string
		wantErr bool
	}{
		{name: "file wins", src: Source{File: keyFile, Value: "inline", Env: "CAR_ADVISOR_TEST_KEY"}, expect: "from-file"},
		{name: "inline before env", src: Source{Value: " inline ", Env: "CAR_ADVISOR_TEST_KEY"}, expect: "inline"},
		{name: "env fallback", src: Source{Env: "CAR_ADVISOR_TEST_KEY"}, expect: "from-env"},
		{name: "empty file", src: Source{File: emptyFile, Value: "inline"}, wantErr: true},
		{name: "missing file", src: Source{File: filepath.Join(dir, "absent")}, wantErr: true},
		{name: "nothing", src: Source{Name: "gemini api key", Env: "CAR_ADVISOR_UNSET_KEY"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestLoadNotConfigured(t *testing.T) {
	_, err := Load(Source{Name: "gemini api key"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
