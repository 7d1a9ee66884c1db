package prefetch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/azagthoth/metallum/internal/config"
	ioutils "github.com/azagthoth/metallum/internal/io"
	"github.com/azagthoth/metallum/internal/metallum"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a prefetch progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Manager walks band discographies and warms the page cache, so that a later
// interactive session over the same bands is served locally instead of
// waiting out the request throttle page by page. Optionally it saves album
// covers while it is there.
type Manager struct {
	client  *metallum.Client
	artwork *ioutils.ArtworkStore

	bands []*metallum.Band

	totalAlbums   int32
	fetchedAlbums int32

	onProgress func(ProgressEvent)
	mu         sync.RWMutex
}

// NewManager creates a prefetch Manager over an existing client. artwork may
// be nil to skip cover downloads.
func NewManager(client *metallum.Client, settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	var artwork *ioutils.ArtworkStore
	if settings.ArtworkDir != "" {
		artwork = ioutils.NewArtworkStore(client.Fetcher(), ioutils.ArtworkOptions{
			Dir:           settings.ArtworkDir,
			Resize:        settings.ArtworkResize,
			MaxSize:       settings.ArtworkMaxSize,
			ConvertToJPEG: settings.ConvertArtworkToJPG,
		})
	}
	return &Manager{
		client:     client,
		artwork:    artwork,
		onProgress: onProgress,
	}
}

// Initialize fetches the band pages for the given ids. Bands that fail to
// resolve are reported and skipped; Initialize only fails when no band
// resolves at all.
func (m *Manager) Initialize(ctx context.Context, bandIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range bandIDs {
		band, err := m.client.BandForID(ctx, id)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error fetching band %s: %v", id, err), Level: LevelError})
			continue
		}
		m.bands = append(m.bands, band)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Found band: %s (%s)", band.Name, band.Country), Level: LevelInfo})
	}

	if len(m.bands) == 0 && len(bandIDs) > 0 {
		return fmt.Errorf("none of %d bands could be fetched", len(bandIDs))
	}
	return nil
}

// BandNames returns the names of all initialized bands.
func (m *Manager) BandNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.bands))
	for i, band := range m.bands {
		names[i] = fmt.Sprintf("%s (%s)", band.Name, band.Country)
	}
	return names
}

// Run prefetches every initialized band's discography. Concurrency bounds
// the number of albums escalated in flight; the shared fetch layer still
// serializes the actual network requests.
func (m *Manager) Run(ctx context.Context, concurrency int) error {
	if concurrency < 1 {
		concurrency = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	m.mu.RLock()
	bands := m.bands
	m.mu.RUnlock()

	for _, band := range bands {
		albums, err := band.Albums(ctx)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error fetching discography of %s: %v", band.Name, err), Level: LevelError})
			continue
		}
		atomic.AddInt32(&m.totalAlbums, int32(albums.Len()))
		m.progress(ProgressEvent{Message: fmt.Sprintf("Prefetching %d albums of %s", albums.Len(), band.Name), Level: LevelInfo})

		for _, album := range albums.All() {
			g.Go(func() error {
				m.prefetchAlbum(ctx, band.Name, album)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}

	fetched := atomic.LoadInt32(&m.fetchedAlbums)
	total := atomic.LoadInt32(&m.totalAlbums)
	if fetched == total {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Prefetched all %d albums", total), Level: LevelSuccess})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Prefetched %d/%d albums, some failed", fetched, total), Level: LevelWarning})
	}
	return nil
}

// Progress returns how many albums have been fetched so far.
func (m *Manager) Progress() (fetched, total int32) {
	return atomic.LoadInt32(&m.fetchedAlbums), atomic.LoadInt32(&m.totalAlbums)
}

func (m *Manager) prefetchAlbum(ctx context.Context, bandName string, album *metallum.Album) {
	full, err := album.Full(ctx)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error fetching %s: %v", album.Title(), err), Level: LevelError})
		return
	}
	atomic.AddInt32(&m.fetchedAlbums, 1)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetched: %s (%d tracks)", full.Title, len(full.Tracks)), Level: LevelVerbose})

	if m.artwork != nil && full.CoverURL != "" {
		if _, err := m.artwork.SaveCover(ctx, bandName, full.Title, full.CoverURL); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving artwork for %s: %v", full.Title, err), Level: LevelWarning})
		}
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
