package config_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/reoring/launchcast/config"
)

func TestHolder_Reload(t *testing.T) {
	path := writeConfig(t, "query:\n  limit: 5\n")

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	if got := h.Get().Query.Limit; got != 5 {
		t.Fatalf("initial limit = %d, want 5", got)
	}

	if err := os.WriteFile(path, []byte("query:\n  limit: 20\n"), 0644); err != nil {
		t.Fatalf("write new config: %v", err)
	}
	if err := h.Reload(); err != nil {
		t.Fatalf("Reload error: %v", err)
	}
	if got := h.Get().Query.Limit; got != 20 {
		t.Fatalf("reloaded limit = %d, want 20", got)
	}
}

func TestHolder_ReloadKeepsOldOnError(t *testing.T) {
	path := writeConfig(t, "query:\n  limit: 5\n")

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	if err := os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0644); err != nil {
		t.Fatalf("write bad config: %v", err)
	}
	if err := h.Reload(); err == nil {
		t.Fatal("expected reload error")
	}
	if got := h.Get().Query.Limit; got != 5 {
		t.Fatalf("old config should be kept, limit = %d", got)
	}
}

func TestHolder_OnChange(t *testing.T) {
	path := writeConfig(t, "query:\n  limit: 5\n")

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	var mu sync.Mutex
	var seen []int
	h.OnChange(func(c *config.Config) {
		mu.Lock()
		seen = append(seen, c.Query.Limit)
		mu.Unlock()
	})

	if err := os.WriteFile(path, []byte("query:\n  limit: 7\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := h.Reload(); err != nil {
		t.Fatalf("Reload error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 || seen[0] != 7 {
		t.Fatalf("callbacks = %v, want [7]", seen)
	}
}

func TestHolder_ReloadUnchangedDoesNotNotify(t *testing.T) {
	path := writeConfig(t, "query:\n  limit: 5\n")

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	calls := 0
	h.OnChange(func(*config.Config) { calls++ })

	// Same settings, different text.
	if err := os.WriteFile(path, []byte("# touched\nquery:\n  limit: 5\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := h.Reload(); err != nil {
		t.Fatalf("Reload error: %v", err)
	}
	if calls != 0 {
		t.Fatalf("listeners ran %d times for an unchanged config", calls)
	}
}

func TestHolder_WatchFileCoalescesBursts(t *testing.T) {
	path := writeConfig(t, "query:\n  limit: 5\n")

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	changed := make(chan int, 16)
	h.OnChange(func(c *config.Config) { changed <- c.Query.Limit })
	if err := h.WatchFile(); err != nil {
		t.Fatalf("WatchFile error: %v", err)
	}

	for _, n := range []string{"11", "12", "13"} {
		if err := os.WriteFile(path, []byte("query:\n  limit: "+n+"\n"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case got := <-changed:
			if got == 13 {
				if h.Get().Query.Limit != 13 {
					t.Fatalf("Get = %d after reload", h.Get().Query.Limit)
				}
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for limit 13, current %d", h.Get().Query.Limit)
		}
	}
}

func TestHolder_WatchFile(t *testing.T) {
	path := writeConfig(t, "query:\n  limit: 5\n")

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	changed := make(chan int, 4)
	h.OnChange(func(c *config.Config) { changed <- c.Query.Limit })

	if err := h.WatchFile(); err != nil {
		t.Fatalf("WatchFile error: %v", err)
	}
	if err := os.WriteFile(path, []byte("query:\n  limit: 9\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case got := <-changed:
			if got == 9 {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

func TestStatic(t *testing.T) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	h := config.Static(cfg)
	defer h.Stop()
	if h.Get() != cfg {
		t.Fatal("Static should return the wrapped config")
	}
	if err := h.Reload(); err != nil {
		t.Fatalf("Reload on a static holder: %v", err)
	}
	if err := h.WatchFile(); err != nil {
		t.Fatalf("WatchFile on a static holder: %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "launchcast.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
