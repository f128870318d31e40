package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jfmyers9/spotctl/pkg/spotify"
	"github.com/spf13/cobra"
)

var (
	albumShowTracks  bool
	artistAllAlbums  bool
	topTracksCountry string
)

var albumCmd = &cobra.Command{
	Use:   "album <album-id>",
	Short: "Show an album",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlbum,
}

var albumsCmd = &cobra.Command{
	Use:   "albums <album-id>...",
	Short: "Show several albums",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAlbums,
}

var trackCmd = &cobra.Command{
	Use:   "track <track-id>",
	Short: "Show a track",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTracks(cmd, args[:1], true)
	},
}

var tracksCmd = &cobra.Command{
	Use:   "tracks <track-id>...",
	Short: "Show several tracks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTracks(cmd, args, false)
	},
}

var artistCmd = &cobra.Command{
	Use:   "artist <artist-id>",
	Short: "Show an artist",
	Args:  cobra.ExactArgs(1),
	RunE:  runArtist,
}

var artistsCmd = &cobra.Command{
	Use:   "artists <artist-id>...",
	Short: "Show several artists",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArtists,
}

var artistAlbumsCmd = &cobra.Command{
	Use:   "artist-albums <artist-id>",
	Short: "List an artist's albums",
	Long: `List an artist's albums.

Only the first page is shown unless --all is given, in which case every
page is fetched.`,
	Args: cobra.ExactArgs(1),
	RunE: runArtistAlbums,
}

var topTracksCmd = &cobra.Command{
	Use:   "top-tracks <artist-id>",
	Short: "List an artist's most popular tracks in a country",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopTracks,
}

var relatedCmd = &cobra.Command{
	Use:   "related <artist-id>",
	Short: "List artists similar to an artist",
	Args:  cobra.ExactArgs(1),
	RunE:  runRelated,
}

func init() {
	rootCmd.AddCommand(albumCmd, albumsCmd, trackCmd, tracksCmd, artistCmd, artistsCmd,
		artistAlbumsCmd, topTracksCmd, relatedCmd)

	albumCmd.Flags().BoolVar(&albumShowTracks, "tracks", false, "List the album's tracks")
	artistAlbumsCmd.Flags().BoolVar(&artistAllAlbums, "all", false, "Fetch every page")
	topTracksCmd.Flags().StringVarP(&topTracksCountry, "country", "c", "US", "ISO 3166-1 alpha-2 country code")
}

func runAlbum(cmd *cobra.Command, args []string) error {
	client, cfg, err := loadClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	album, err := client.Albums().Get(ctx, args[0])
	if err != nil {
		return err
	}
	if album == nil {
		return errNoResult
	}

	if !albumShowTracks {
		if jsonOutput {
			return printJSON(cmd, album)
		}
		printAlbums(cmd, []spotify.Album{*album})
		return nil
	}

	page, err := client.Albums().Tracks(ctx, args[0])
	if err != nil {
		return err
	}
	if page == nil {
		return errNoResult
	}
	if jsonOutput {
		return printJSON(cmd, page)
	}

	printer, err := printerFor(cmd, cfg)
	if err != nil {
		return err
	}
	// Album track listings omit the album itself
	for _, t := range page.Items {
		v := newTrackView(t, "")
		v.Album = album.Name
		if err := printer.print(v); err != nil {
			return err
		}
	}
	return nil
}

func runAlbums(cmd *cobra.Command, args []string) error {
	client, _, err := loadClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	albums, err := client.Albums().GetSeveral(context.Background(), args)
	if err != nil {
		return err
	}
	if albums == nil {
		return errNoResult
	}
	if jsonOutput {
		return printJSON(cmd, albums)
	}
	printAlbums(cmd, albums)
	return nil
}

func runTracks(cmd *cobra.Command, ids []string, single bool) error {
	client, cfg, err := loadClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	var tracks []spotify.Track
	if single {
		track, err := client.Tracks().Get(ctx, ids[0])
		if err != nil {
			return err
		}
		if track != nil {
			tracks = []spotify.Track{*track}
		}
	} else {
		tracks, err = client.Tracks().GetSeveral(ctx, ids)
		if err != nil {
			return err
		}
	}
	if tracks == nil {
		return errNoResult
	}

	if jsonOutput {
		return printJSON(cmd, tracks)
	}
	printer, err := printerFor(cmd, cfg)
	if err != nil {
		return err
	}
	return printer.printTracks(tracks)
}

func runArtist(cmd *cobra.Command, args []string) error {
	client, _, err := loadClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	artist, err := client.Artists().Get(context.Background(), args[0])
	if err != nil {
		return err
	}
	if artist == nil {
		return errNoResult
	}
	if jsonOutput {
		return printJSON(cmd, artist)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:         %s\n", artist.ID)
	fmt.Fprintf(out, "Name:       %s\n", artist.Name)
	if len(artist.Genres) > 0 {
		fmt.Fprintf(out, "Genres:     %s\n", strings.Join(artist.Genres, ", "))
	}
	fmt.Fprintf(out, "Popularity: %d\n", artist.Popularity)
	if artist.Followers != nil {
		fmt.Fprintf(out, "Followers:  %d\n", artist.Followers.Total)
	}
	return nil
}

func runArtists(cmd *cobra.Command, args []string) error {
	client, _, err := loadClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	artists, err := client.Artists().GetSeveral(context.Background(), args)
	if err != nil {
		return err
	}
	if artists == nil {
		return errNoResult
	}
	if jsonOutput {
		return printJSON(cmd, artists)
	}
	printArtists(cmd, artists)
	return nil
}

func runArtistAlbums(cmd *cobra.Command, args []string) error {
	client, _, err := loadClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	var page *spotify.Paging[spotify.Album]
	if artistAllAlbums {
		page, err = client.Artists().AllAlbums(ctx, args[0])
	} else {
		page, err = client.Artists().Albums(ctx, args[0])
	}
	if err != nil {
		return err
	}
	if page == nil {
		return errNoResult
	}
	if jsonOutput {
		return printJSON(cmd, page)
	}

	printAlbums(cmd, page.Items)
	if !artistAllAlbums && page.Next != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Showing %d of %d albums, use --all for the rest\n", len(page.Items), page.Total)
	}
	return nil
}

func runTopTracks(cmd *cobra.Command, args []string) error {
	client, cfg, err := loadClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	tracks, err := client.Artists().TopTracks(context.Background(), args[0], topTracksCountry)
	if err != nil {
		return err
	}
	if tracks == nil {
		return errNoResult
	}
	if jsonOutput {
		return printJSON(cmd, tracks)
	}
	printer, err := printerFor(cmd, cfg)
	if err != nil {
		return err
	}
	return printer.printTracks(tracks)
}

func runRelated(cmd *cobra.Command, args []string) error {
	client, _, err := loadClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	artists, err := client.Artists().Related(context.Background(), args[0])
	if err != nil {
		return err
	}
	if artists == nil {
		return errNoResult
	}
	if jsonOutput {
		return printJSON(cmd, artists)
	}
	printArtists(cmd, artists)
	return nil
}

func printAlbums(cmd *cobra.Command, albums []spotify.Album) {
	out := cmd.OutOrStdout()
	for _, a := range albums {
		year := a.ReleaseDate
		if len(year) > 4 {
			year = year[:4]
		}
		fmt.Fprintf(out, "%s\t%s - %s (%s, %d tracks)\n", a.ID, joinArtists(a.Artists), a.Name, year, a.TotalTracks)
	}
}

func printArtists(cmd *cobra.Command, artists []spotify.Artist) {
	out := cmd.OutOrStdout()
	for _, a := range artists {
		fmt.Fprintf(out, "%s\t%s\n", a.ID, a.Name)
	}
}
