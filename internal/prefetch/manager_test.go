package prefetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/azagthoth/metallum/internal/cache"
	"github.com/azagthoth/metallum/internal/config"
	mhttp "github.com/azagthoth/metallum/internal/http"
	"github.com/azagthoth/metallum/internal/metallum"
)

func albumPage(title string) string {
	return fmt.Sprintf(`<html><body>
		<h1 class="album_name"><a href="https://example.com/albums/Testband/x/11">%s</a></h1>
		<h2 class="band_name"><a href="https://example.com/bands/Testband/123">Testband</a></h2>
		<dl><dt>Type:</dt><dd>Full-length</dd></dl>
		<table class="table_lyrics">
			<tr class="odd"><td><a name="101"></a>1.</td><td>Song</td><td>04:00</td><td></td></tr>
		</table>
	</body></html>`, title)
}

func newTestManager(t *testing.T, events *[]ProgressEvent, albumHits *int64) *Manager {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bands/_/123":
			w.Write([]byte(`<html><body>
				<h1 class="band_name"><a href="https://example.com/bands/Testband/123">Testband</a></h1>
				<dl><dt>Country of origin:</dt><dd>Norway</dd></dl>
			</body></html>`))
		case "/band/discography/id/123/tab/all":
			w.Write([]byte(`<table>
				<tr><th>Name</th><th>Type</th><th>Year</th></tr>
				<tr><td><a href="https://example.com/albums/Testband/First/11">First</a></td><td>Full-length</td><td>1993</td></tr>
				<tr><td><a href="https://example.com/albums/Testband/Second/22">Second</a></td><td>Full-length</td><td>1995</td></tr>
			</table>`))
		case "/albums/_/_/11":
			atomic.AddInt64(albumHits, 1)
			w.Write([]byte(albumPage("First")))
		case "/albums/_/_/22":
			atomic.AddInt64(albumHits, 1)
			w.Write([]byte(albumPage("Second")))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	client := metallum.NewClient(mhttp.NewClient(mhttp.Config{
		BaseURL: srv.URL,
		Store:   cache.NewMemory(cache.DefaultTTL),
	}))

	settings := config.DefaultSettings()
	settings.ArtworkDir = "" // no covers in the fixtures

	var mu sync.Mutex
	return NewManager(client, settings, func(e ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		*events = append(*events, e)
	})
}

func TestManager_Run(t *testing.T) {
	var events []ProgressEvent
	var albumHits int64
	m := newTestManager(t, &events, &albumHits)
	ctx := context.Background()

	if err := m.Initialize(ctx, []string{"123"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	names := m.BandNames()
	if len(names) != 1 || names[0] != "Testband (Norway)" {
		t.Fatalf("BandNames() = %v", names)
	}

	if err := m.Run(ctx, 4); err != nil {
		t.Fatalf("Run: %v", err)
	}

	fetched, total := m.Progress()
	if fetched != 2 || total != 2 {
		t.Errorf("Progress() = %d/%d, want 2/2", fetched, total)
	}
	if n := atomic.LoadInt64(&albumHits); n != 2 {
		t.Errorf("album pages fetched %d times, want 2", n)
	}

	var success bool
	for _, e := range events {
		if e.Level == LevelSuccess {
			success = true
		}
	}
	if !success {
		t.Error("expected a success event after a clean run")
	}
}

func TestManager_InitializeAllBandsFail(t *testing.T) {
	var events []ProgressEvent
	var albumHits int64
	m := newTestManager(t, &events, &albumHits)

	if err := m.Initialize(context.Background(), []string{"999"}); err == nil {
		t.Fatal("expected error when no band resolves")
	}
}
