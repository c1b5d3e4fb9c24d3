package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindRoot(t *testing.T) {
	// baseDir/
	//   farm/ (.myagri)
	//     parcelles/
	//       nord/
	//   custom/ (.agri)
	//   empty/
	baseDir := t.TempDir()
	farmDir := filepath.Join(baseDir, "farm")
	subDir := filepath.Join(farmDir, "parcelles")
	nestedDir := filepath.Join(subDir, "nord")
	customDir := filepath.Join(baseDir, "custom")
	emptyDir := filepath.Join(baseDir, "empty")

	for _, dir := range []string{
		filepath.Join(farmDir, ".myagri"),
		nestedDir,
		filepath.Join(customDir, ".agri"),
		emptyDir,
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	// A plain file named like the system directory is not a marker.
	if err := os.WriteFile(filepath.Join(emptyDir, ".myagri"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		startPath string
		systemDir string
		wantRoot  string
		wantErr   bool
	}{
		{name: "Start at Root", startPath: farmDir, wantRoot: farmDir},
		{name: "Start in Subdir", startPath: subDir, wantRoot: farmDir},
		{name: "Start Nested Deeply", startPath: nestedDir, wantRoot: farmDir},
		{name: "Custom System Dir", startPath: customDir, systemDir: ".agri", wantRoot: customDir},
		{name: "No Root Found", startPath: emptyDir, systemDir: ".agri-missing", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath, tt.systemDir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FindRoot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrRootNotFound) {
					t.Errorf("expected ErrRootNotFound, got %v", err)
				}
				return
			}
			if filepath.Clean(got) != filepath.Clean(tt.wantRoot) {
				t.Errorf("FindRoot() = %v, want %v", got, tt.wantRoot)
			}
		})
	}
}

func TestResolveStorePath(t *testing.T) {
	inTemp := filepath.Join(os.TempDir(), "already-safe")

	tests := []struct {
		name      string
		path      string
		forceTemp bool
		want      string
	}{
		{name: "Passthrough", path: "farm", want: "farm"},
		{name: "Empty Means Current Dir", path: "", want: "."},
		{name: "Temp Paths Are Trusted", path: inTemp, forceTemp: true, want: inTemp},
		{name: "Re-rooted", path: "/srv/farm", forceTemp: true, want: filepath.Join(os.TempDir(), "myagri-dev", "farm")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveStorePath(tt.path, tt.forceTemp); got != tt.want {
				t.Errorf("ResolveStorePath() = %q, want %q", got, tt.want)
			}
		})
	}
}
