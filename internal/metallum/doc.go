// Package metallum parses the Metal Archives website into typed band, album
// and track records.
//
// The package handles three main use cases:
//
//  1. Fetching bands and albums by their numeric site id
//  2. Running advanced band, album and song searches
//  3. Fetching song lyrics by song id
//
// # Fetching Entities
//
// Use the Client to load a band and walk its discography:
//
//	client := metallum.NewClient(fetcher)
//	band, err := client.BandForID(ctx, "3540361100")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	albums, err := band.Albums(ctx)
//
// # Lazy Albums
//
// Albums obtained from a discography listing are partial: id, title, type
// and year come from the listing row and cost nothing to read. Any other
// field fetches the album's own page on first access:
//
//	album := albums.At(0)
//	fmt.Println(album.Title())        // free, from the listing row
//	tracks, err := album.Tracks(ctx)  // fetches the album page once
//
// # Searching
//
// Advanced searches return result rows plus the upstream total match count:
//
//	found, err := client.SearchBands(ctx, metallum.BandQuery{
//	    Name:      "darkthrone",
//	    Countries: []string{"NO"},
//	})
//	for _, r := range found.Results {
//	    band, err := r.Get(ctx)
//	    ...
//	}
package metallum
