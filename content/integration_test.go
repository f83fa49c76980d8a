package content_test

import (
	"testing"
	"time"

	"termfolio/content"
	"termfolio/mocksite"
)

func TestCachingHTTPStore_EndToEnd(t *testing.T) {
	srv := mocksite.New(
		mocksite.WithFile("~/artist/bio.md", "I make things."),
	)
	defer srv.Close()

	store := content.NewCachingStore(content.NewHTTPStore(srv.URL), time.Minute)

	for i := 0; i < 3; i++ {
		data, err := store.Fetch("~/artist/bio.md")
		if err != nil {
			t.Fatalf("Fetch %d: %v", i, err)
		}
		if string(data) != "I make things." {
			t.Errorf("Fetch %d = %q", i, data)
		}
	}
	if got := srv.FetchCount(); got != 1 {
		t.Errorf("backend fetches = %d, want 1", got)
	}

	// Invalidation forces the next read back to the host.
	srv.SetFile("~/artist/bio.md", "Updated.")
	store.Invalidate("~/artist/bio.md")
	data, err := store.Fetch("~/artist/bio.md")
	if err != nil {
		t.Fatalf("Fetch after invalidate: %v", err)
	}
	if string(data) != "Updated." {
		t.Errorf("Fetch after invalidate = %q", data)
	}
	if got := srv.FetchCount(); got != 2 {
		t.Errorf("backend fetches = %d, want 2", got)
	}
}

func TestHTTPStore_NotFoundFromHost(t *testing.T) {
	srv := mocksite.New()
	defer srv.Close()

	store := content.NewHTTPStore(srv.URL)
	if _, err := store.Fetch("~/ghost.md"); err != content.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
