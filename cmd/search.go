package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jfmyers9/spotctl/pkg/spotify"
	"github.com/spf13/cobra"
)

var searchType string

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog for artists, albums or tracks",
	Long: `Search the catalog for artists, albums or tracks.

The query may use the field filters supported by Spotify, for example
'artist:daft punk year:2001'. Only the first page of results is shown.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchType, "type", "t", "track", "Result type (artist, album, track)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	client, cfg, err := loadClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	query := strings.Join(args, " ")
	res, err := client.Search(context.Background(), query, spotify.SearchType(searchType))
	if err != nil {
		return err
	}
	if res == nil {
		return errNoResult
	}

	if jsonOutput {
		return printJSON(cmd, res)
	}

	out := cmd.OutOrStdout()
	switch {
	case res.Tracks != nil:
		printer, err := printerFor(cmd, cfg)
		if err != nil {
			return err
		}
		return printer.printTracks(res.Tracks.Items)
	case res.Artists != nil:
		printArtists(cmd, res.Artists.Items)
	case res.Albums != nil:
		printAlbums(cmd, res.Albums.Items)
	default:
		fmt.Fprintln(out, "No results")
	}
	return nil
}
