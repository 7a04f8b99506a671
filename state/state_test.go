package state

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/covview/pkg/colormap"
)

func TestStoreOperations(t *testing.T) {
	tmpDir := t.TempDir()
	store := Open(tmpDir)

	t.Run("Load empty state", func(t *testing.T) {
		st, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(st) != 0 {
			t.Errorf("Load() returned non-empty state: %v", st)
		}
		if !st.Autorange() {
			t.Error("Autorange() should default to true")
		}
		if st.Contig() != "" {
			t.Errorf("Contig() = %q, want empty", st.Contig())
		}
	})

	t.Run("Session values round trip", func(t *testing.T) {
		st, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		st.SetColors(colormap.Map{"ctrl": "#ff0000", "treated": "rgb(0, 0, 255)"})
		st.SetAutorange(false)
		st.SetContig("chr2")
		if err := store.Save(st); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		if _, err := os.Stat(filepath.Join(tmpDir, ".covview", "state.yml")); err != nil {
			t.Fatalf("state file not created: %v", err)
		}

		loaded, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		colors := loaded.Colors()
		if colors["ctrl"] != "#ff0000" || colors["treated"] != "rgb(0, 0, 255)" {
			t.Errorf("Colors() = %v", colors)
		}
		if loaded.Autorange() {
			t.Error("Autorange() = true, want false")
		}
		if loaded.Contig() != "chr2" {
			t.Errorf("Contig() = %q, want chr2", loaded.Contig())
		}
	})

	t.Run("Save leaves no temporary files", func(t *testing.T) {
		entries, err := os.ReadDir(filepath.Join(tmpDir, ".covview"))
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 || entries[0].Name() != "state.yml" {
			t.Errorf("unexpected files in state directory: %v", entries)
		}
	})

	t.Run("Failed update writes nothing", func(t *testing.T) {
		err := store.Update(func(st State) error {
			st.SetContig("chr9")
			return fmt.Errorf("abort")
		})
		if err == nil {
			t.Fatal("Update() should return the callback error")
		}
		loaded, _ := store.Load()
		if loaded.Contig() != "chr2" {
			t.Errorf("Contig() = %q after failed update, want chr2", loaded.Contig())
		}
	})
}

func TestWorkingDirectoryHelpers(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	st := State{}
	st.SetContig("chr1")
	st.SetAutorange(false)
	if err := Save(st); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := Delete(KeyContig); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Contig() != "" {
		t.Error("contig still present after Delete()")
	}
	if loaded.Autorange() {
		t.Error("Delete() should keep other keys")
	}

	s, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if s.Path() != filepath.Join(tmpDir, ".covview", "state.yml") {
		t.Errorf("Path() = %s", s.Path())
	}
}

func TestLoadCorruptState(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ".covview"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ".covview", "state.yml"), []byte("colors: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(tmpDir).Load(); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}
