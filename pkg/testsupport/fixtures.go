package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// LoadFixture reads a fixture file.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// CopyFixtureDir copies the regular files directly under src into a fresh
// temporary directory and returns its path. Subdirectories are not copied.
func CopyFixtureDir(t testing.TB, src string) string {
	t.Helper()

	entries, err := os.ReadDir(src)
	if err != nil {
		t.Fatalf("read fixture dir %s: %v", src, err)
	}

	dst := t.TempDir()
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		data, err := LoadFixture(filepath.Join(src, entry.Name()))
		if err != nil {
			t.Fatalf("read fixture %s: %v", entry.Name(), err)
		}
		if err := os.WriteFile(filepath.Join(dst, entry.Name()), data, 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", entry.Name(), err)
		}
	}
	return dst
}

// AssertGoldenDir compares every file in golden with the file of the same
// name in dir, byte for byte.
func AssertGoldenDir(t testing.TB, dir, golden string) {
	t.Helper()

	entries, err := os.ReadDir(golden)
	if err != nil {
		t.Fatalf("read golden dir %s: %v", golden, err)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		want, err := LoadFixture(filepath.Join(golden, entry.Name()))
		if err != nil {
			t.Fatalf("read golden %s: %v", entry.Name(), err)
		}
		got, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			t.Fatalf("read output %s: %v", entry.Name(), err)
		}
		if string(got) != string(want) {
			t.Errorf("%s does not match golden file\n--- got ---\n%s\n--- want ---\n%s", entry.Name(), got, want)
		}
	}
}
