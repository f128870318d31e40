package cmd

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jfmyers9/spotctl/internal/config"
	"github.com/jfmyers9/spotctl/internal/export"
	"github.com/jfmyers9/spotctl/pkg/spotify"
	"github.com/spf13/cobra"
)

var (
	playlistOwner    string
	playlistPublic   bool
	playlistPosition int
	playlistExport   bool
	playlistMarket   string
)

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "Read and modify playlists",
	Long: `Read and modify playlists.

Playlists are addressed by owner and id. The owner defaults to the
authorized user; use --owner for someone else's playlists. Tracks are
given as URIs (spotify:track:<id>); bare ids are converted.`,
}

var playlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the owner's playlists (first page)",
	Args:  cobra.NoArgs,
	RunE:  runPlaylistList,
}

var playlistShowCmd = &cobra.Command{
	Use:   "show <playlist-id>",
	Short: "Show a playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistShow,
}

var playlistTracksCmd = &cobra.Command{
	Use:   "tracks <playlist-id>",
	Short: "List every track of a playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistTracks,
}

var playlistCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a playlist",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlaylistCreate,
}

var playlistAddCmd = &cobra.Command{
	Use:   "add <playlist-id> <track>...",
	Short: "Add tracks to a playlist (at most 100)",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPlaylistAdd,
}

var playlistRemoveCmd = &cobra.Command{
	Use:   "remove <playlist-id> <track>...",
	Short: "Remove every occurrence of tracks from a playlist",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPlaylistRemove,
}

var playlistReplaceCmd = &cobra.Command{
	Use:   "replace <playlist-id> <track>...",
	Short: "Replace the content of a playlist",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPlaylistReplace,
}

var playlistTruncateCmd = &cobra.Command{
	Use:   "truncate <playlist-id>",
	Short: "Remove every track from a playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistTruncate,
}

func init() {
	rootCmd.AddCommand(playlistCmd)
	playlistCmd.AddCommand(playlistListCmd, playlistShowCmd, playlistTracksCmd, playlistCreateCmd,
		playlistAddCmd, playlistRemoveCmd, playlistReplaceCmd, playlistTruncateCmd)

	playlistCmd.PersistentFlags().StringVar(&playlistOwner, "owner", "me", "Playlist owner user id")
	playlistCreateCmd.Flags().BoolVar(&playlistPublic, "public", false, "Make the playlist public")
	playlistAddCmd.Flags().IntVar(&playlistPosition, "position", -1, "Insert at this zero-based position (default: append)")
	playlistTracksCmd.Flags().BoolVar(&playlistExport, "export", false, "Store the tracks in the export database instead of printing them")
	playlistTracksCmd.Flags().StringVar(&playlistMarket, "market", "", "Market (ISO country code) for track relinking")
}

// playlistEnv is what every playlist command needs: a client, the config it
// was built from and the resolved owner.
type playlistEnv struct {
	ctx    context.Context
	client *spotify.Client
	cfg    *config.Config
	owner  string
}

// newPlaylistEnv resolves the owner and returns a ready client. The caller
// closes the client.
func newPlaylistEnv() (*playlistEnv, error) {
	client, cfg, err := loadClient()
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	owner, err := currentUserID(ctx, client, playlistOwner)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return &playlistEnv{ctx: ctx, client: client, cfg: cfg, owner: owner}, nil
}

func runPlaylistList(cmd *cobra.Command, args []string) error {
	env, err := newPlaylistEnv()
	if err != nil {
		return err
	}
	defer func() { _ = env.client.Close() }()
	ctx, client, owner := env.ctx, env.client, env.owner

	page, err := client.Playlists().List(ctx, owner)
	if err != nil {
		return err
	}
	if page == nil {
		return errNoResult
	}
	if jsonOutput {
		return printJSON(cmd, page)
	}

	out := cmd.OutOrStdout()
	for _, pl := range page.Items {
		fmt.Fprintf(out, "%s\t%s (%d tracks)\n", pl.ID, pl.Name, pl.Tracks.Total)
	}
	if page.Next != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Showing %d of %d playlists\n", len(page.Items), page.Total)
	}
	return nil
}

func runPlaylistShow(cmd *cobra.Command, args []string) error {
	env, err := newPlaylistEnv()
	if err != nil {
		return err
	}
	defer func() { _ = env.client.Close() }()
	ctx, client, owner := env.ctx, env.client, env.owner

	pl, err := client.Playlists().Get(ctx, owner, args[0])
	if err != nil {
		return err
	}
	if pl == nil {
		return errNoResult
	}
	if jsonOutput {
		return printJSON(cmd, pl)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Playlist: %s\n", pl.Name)
	if pl.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", pl.Description)
	}
	fmt.Fprintf(out, "Owner: %s\n", pl.Owner.ID)
	fmt.Fprintf(out, "Public: %t\n", pl.Public)
	fmt.Fprintf(out, "Tracks: %d\n", pl.Tracks.Total)
	return nil
}

func runPlaylistTracks(cmd *cobra.Command, args []string) error {
	env, err := newPlaylistEnv()
	if err != nil {
		return err
	}
	defer func() { _ = env.client.Close() }()
	ctx, client, owner := env.ctx, env.client, env.owner

	if playlistExport {
		store, err := openExportStore(env.cfg.ExportDB)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		stored, err := export.New(client, store, logger).ExportPlaylist(ctx, owner, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d tracks\n", stored)
		return nil
	}

	var params url.Values
	if playlistMarket != "" {
		params = url.Values{"market": {playlistMarket}}
	}
	page, err := client.Playlists().Tracks(ctx, owner, args[0], params)
	if err != nil {
		return err
	}
	if page == nil {
		return errNoResult
	}
	if jsonOutput {
		return printJSON(cmd, page.Items)
	}

	printer, err := printerFor(cmd, env.cfg)
	if err != nil {
		return err
	}
	for _, item := range page.Items {
		if err := printer.print(newTrackView(item.Track, item.AddedAt)); err != nil {
			return err
		}
	}
	return nil
}

func runPlaylistCreate(cmd *cobra.Command, args []string) error {
	env, err := newPlaylistEnv()
	if err != nil {
		return err
	}
	defer func() { _ = env.client.Close() }()
	ctx, client, owner := env.ctx, env.client, env.owner

	pl, err := client.Playlists().Create(ctx, owner, strings.Join(args, " "), playlistPublic)
	if err != nil {
		return err
	}
	if pl == nil {
		return errNoResult
	}
	if jsonOutput {
		return printJSON(cmd, pl)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created playlist %s (%s)\n", pl.Name, pl.ID)
	return nil
}

func runPlaylistAdd(cmd *cobra.Command, args []string) error {
	env, err := newPlaylistEnv()
	if err != nil {
		return err
	}
	defer func() { _ = env.client.Close() }()
	ctx, client, owner := env.ctx, env.client, env.owner

	uris := trackURIs(args[1:])
	var snap *spotify.Snapshot
	if playlistPosition >= 0 {
		snap, err = client.Playlists().AddTracksAt(ctx, owner, args[0], uris, playlistPosition)
	} else {
		snap, err = client.Playlists().AddTracks(ctx, owner, args[0], uris)
	}
	if err != nil {
		return err
	}
	if snap == nil {
		return errNoResult
	}

	added := len(uris)
	if added > spotify.MaxIDs {
		added = spotify.MaxIDs
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %d track(s), snapshot %s\n", added, snap.SnapshotID)
	return nil
}

func runPlaylistRemove(cmd *cobra.Command, args []string) error {
	env, err := newPlaylistEnv()
	if err != nil {
		return err
	}
	defer func() { _ = env.client.Close() }()
	ctx, client, owner := env.ctx, env.client, env.owner

	snap, err := client.Playlists().RemoveTracks(ctx, owner, args[0], trackURIs(args[1:]))
	if err != nil {
		return err
	}
	if snap == nil {
		return errNoResult
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %d track(s), snapshot %s\n", len(args)-1, snap.SnapshotID)
	return nil
}

func runPlaylistReplace(cmd *cobra.Command, args []string) error {
	return replacePlaylist(cmd, args[0], trackURIs(args[1:]))
}

func runPlaylistTruncate(cmd *cobra.Command, args []string) error {
	return replacePlaylist(cmd, args[0], nil)
}

func replacePlaylist(cmd *cobra.Command, playlistID string, uris []string) error {
	env, err := newPlaylistEnv()
	if err != nil {
		return err
	}
	defer func() { _ = env.client.Close() }()
	ctx, client, owner := env.ctx, env.client, env.owner

	var ok bool
	if len(uris) == 0 {
		ok, err = client.Playlists().Truncate(ctx, owner, playlistID)
	} else {
		ok, err = client.Playlists().ReplaceTracks(ctx, owner, playlistID, uris)
	}
	if err != nil {
		return err
	}
	if !ok {
		return errNoResult
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Playlist now has %d track(s)\n", len(uris))
	return nil
}

// trackURIs turns bare track ids into spotify:track URIs.
func trackURIs(args []string) []string {
	uris := make([]string, len(args))
	for i, a := range args {
		if strings.HasPrefix(a, "spotify:") {
			uris[i] = a
		} else {
			uris[i] = "spotify:track:" + a
		}
	}
	return uris
}
