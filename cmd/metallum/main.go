package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/azagthoth/metallum/internal/config"
	mhttp "github.com/azagthoth/metallum/internal/http"
	"github.com/azagthoth/metallum/internal/metallum"
	"github.com/azagthoth/metallum/internal/model"
	"github.com/azagthoth/metallum/internal/prefetch"
	"github.com/azagthoth/metallum/internal/render"
)

func usage() {
	fmt.Println("metallum - query the Metal Archives from the command line")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  metallum [options] band <id>")
	fmt.Println("  metallum [options] album <id>")
	fmt.Println("  metallum [options] lyrics <song-id>")
	fmt.Println("  metallum [options] search-bands [search options]")
	fmt.Println("  metallum [options] search-albums [search options]")
	fmt.Println("  metallum [options] search-songs [search options]")
	fmt.Println("  metallum [options] prefetch <band-id> [<band-id>...]")
	fmt.Println()
	fmt.Println("For interactive mode, use: metallum-tui")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
}

func main() {
	var (
		configFlag  = flag.String("config", "", "Path to config file")
		formatFlag  = flag.String("format", "", "Output format: text or json (overrides config)")
		verboseFlag = flag.Bool("verbose", false, "Show debug output")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *formatFlag != "" {
		settings.OutputFormat = *formatFlag
	}

	level := slog.LevelWarn
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	store, err := settings.OpenCache()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening cache: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	client := metallum.NewClient(mhttp.NewClient(mhttp.Config{
		BaseURL:   settings.BaseURL,
		UserAgent: settings.UserAgent,
		Interval:  settings.RequestInterval(),
		Store:     store,
		Logger:    logger,
	}))
	renderer := render.NewRenderer(render.ParseFormat(settings.OutputFormat))

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted, cancelling...")
		cancel()
	}()

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "band":
		err = runBand(ctx, client, renderer, args)
	case "album":
		err = runAlbum(ctx, client, renderer, args)
	case "lyrics":
		err = runLyrics(ctx, client, renderer, args)
	case "search-bands":
		err = runSearchBands(ctx, client, renderer, args)
	case "search-albums":
		err = runSearchAlbums(ctx, client, renderer, args)
	case "search-songs":
		err = runSearchSongs(ctx, client, renderer, args)
	case "prefetch":
		err = runPrefetch(ctx, client, settings, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		usage()
		os.Exit(1)
	}

	if err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "Cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runBand(ctx context.Context, client *metallum.Client, renderer *render.Renderer, args []string) error {
	fs := flag.NewFlagSet("band", flag.ExitOnError)
	similarFlag := fs.Bool("similar", false, "Include similar artists")
	discographyFlag := fs.Bool("discography", false, "List the band's releases")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("band: expected exactly one band id")
	}

	band, err := client.BandForID(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	var similar []model.SimilarArtist
	if *similarFlag {
		artists, err := band.SimilarArtists(ctx)
		if err != nil {
			return err
		}
		similar = artists
	}
	fmt.Print(renderer.Band(&band.Band, similar))

	if *discographyFlag {
		albums, err := band.Albums(ctx)
		if err != nil {
			return err
		}
		fmt.Println()
		for _, album := range albums.All() {
			fmt.Printf("%-10s %-35s %-15s %d\n", album.ID(), album.Title(), album.Type(), album.Year())
		}
	}
	return nil
}

func runAlbum(ctx context.Context, client *metallum.Client, renderer *render.Renderer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("album: expected exactly one album id")
	}

	album, err := client.AlbumForID(ctx, args[0])
	if err != nil {
		return err
	}
	full, err := album.Full(ctx)
	if err != nil {
		return err
	}
	fmt.Print(renderer.Album(full))
	return nil
}

func runLyrics(ctx context.Context, client *metallum.Client, renderer *render.Renderer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("lyrics: expected exactly one song id")
	}

	lyrics, err := client.LyricsForID(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Print(renderer.Lyrics(lyrics))
	return nil
}

func runSearchBands(ctx context.Context, client *metallum.Client, renderer *render.Renderer, args []string) error {
	fs := flag.NewFlagSet("search-bands", flag.ExitOnError)
	var (
		nameFlag      = fs.String("name", "", "Band name")
		strictFlag    = fs.Bool("strict", false, "Exact name match")
		genreFlag     = fs.String("genre", "", "Genre")
		countriesFlag = fs.String("countries", "", "Comma-separated ISO country codes")
		yearFromFlag  = fs.Int("year-from", 0, "Formed no earlier than")
		yearToFlag    = fs.Int("year-to", 0, "Formed no later than")
		statusFlag    = fs.String("status", "", "Comma-separated status values")
		labelFlag     = fs.String("label", "", "Label name")
		pageFlag      = fs.Int("page-start", 0, "Result offset for paging")
	)
	fs.Parse(args)

	search, err := client.SearchBands(ctx, metallum.BandQuery{
		Name:            *nameFlag,
		Strict:          *strictFlag,
		Genre:           *genreFlag,
		Countries:       splitList(*countriesFlag),
		YearCreatedFrom: *yearFromFlag,
		YearCreatedTo:   *yearToFlag,
		Status:          splitList(*statusFlag),
		Label:           *labelFlag,
		PageStart:       *pageFlag,
	})
	if err != nil {
		return err
	}
	fmt.Print(renderer.BandSearch(search))
	return nil
}

func runSearchAlbums(ctx context.Context, client *metallum.Client, renderer *render.Renderer, args []string) error {
	fs := flag.NewFlagSet("search-albums", flag.ExitOnError)
	var (
		titleFlag    = fs.String("title", "", "Album title")
		strictFlag   = fs.Bool("strict", false, "Exact title match")
		bandFlag     = fs.String("band", "", "Band name")
		typesFlag    = fs.String("types", "", "Comma-separated release types")
		yearFromFlag = fs.Int("year-from", 0, "Released no earlier than")
		yearToFlag   = fs.Int("year-to", 0, "Released no later than")
		labelFlag    = fs.String("label", "", "Label name")
		indieFlag    = fs.Bool("indie-label", false, "Independent releases only")
		pageFlag     = fs.Int("page-start", 0, "Result offset for paging")
	)
	fs.Parse(args)

	search, err := client.SearchAlbums(ctx, metallum.AlbumQuery{
		Title:      *titleFlag,
		Strict:     *strictFlag,
		Band:       *bandFlag,
		Types:      splitList(*typesFlag),
		YearFrom:   *yearFromFlag,
		YearTo:     *yearToFlag,
		Label:      *labelFlag,
		IndieLabel: *indieFlag,
		PageStart:  *pageFlag,
	})
	if err != nil {
		return err
	}
	fmt.Print(renderer.AlbumSearch(search))
	return nil
}

func runSearchSongs(ctx context.Context, client *metallum.Client, renderer *render.Renderer, args []string) error {
	fs := flag.NewFlagSet("search-songs", flag.ExitOnError)
	var (
		titleFlag  = fs.String("title", "", "Song title")
		strictFlag = fs.Bool("strict", false, "Exact title match")
		bandFlag   = fs.String("band", "", "Band name")
		albumFlag  = fs.String("album", "", "Album title")
		lyricsFlag = fs.String("lyrics-text", "", "Text in lyrics")
		genreFlag  = fs.String("genre", "", "Genre")
		pageFlag   = fs.Int("page-start", 0, "Result offset for paging")
	)
	fs.Parse(args)

	search, err := client.SearchSongs(ctx, metallum.SongQuery{
		Title:     *titleFlag,
		Strict:    *strictFlag,
		Band:      *bandFlag,
		Album:     *albumFlag,
		Lyrics:    *lyricsFlag,
		Genre:     *genreFlag,
		PageStart: *pageFlag,
	})
	if err != nil {
		return err
	}
	fmt.Print(renderer.SongSearch(search))
	return nil
}

func runPrefetch(ctx context.Context, client *metallum.Client, settings *config.Settings, args []string) error {
	fs := flag.NewFlagSet("prefetch", flag.ExitOnError)
	concurrencyFlag := fs.Int("concurrency", settings.PrefetchConcurrency, "Albums escalated in flight")
	noArtworkFlag := fs.Bool("no-artwork", false, "Skip saving album covers")
	fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("prefetch: expected at least one band id")
	}
	if *noArtworkFlag {
		settings.ArtworkDir = ""
	}

	manager := prefetch.NewManager(client, settings, func(event prefetch.ProgressEvent) {
		prefix := "   "
		switch event.Level {
		case prefetch.LevelError:
			prefix = " ✗ "
		case prefetch.LevelWarning:
			prefix = " ! "
		case prefetch.LevelSuccess:
			prefix = " ✓ "
		case prefetch.LevelInfo:
			prefix = " › "
		}
		fmt.Println(prefix + event.Message)
	})

	if err := manager.Initialize(ctx, fs.Args()); err != nil {
		return err
	}
	return manager.Run(ctx, *concurrencyFlag)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
