package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jfmyers9/spotctl/internal/export"
	"github.com/jfmyers9/spotctl/pkg/spotify"
	"github.com/spf13/cobra"
)

var exportDB string

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the saved tracks of your library",
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every saved track",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var libraryContainsCmd = &cobra.Command{
	Use:   "contains <track-id>...",
	Short: "Check whether tracks are saved",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibraryContains,
}

var librarySaveCmd = &cobra.Command{
	Use:   "save <track-id>...",
	Short: "Save tracks to your library",
	Long: `Save tracks to your library.

At most 100 tracks are saved per invocation; extra ids are ignored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLibrarySave,
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove <track-id>...",
	Short: "Remove tracks from your library",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibraryRemove,
}

var libraryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every saved track to a SQLite database",
	Long: `Export every saved track to a SQLite database.

The database path defaults to export_db from the config
(~/.local/share/spotctl/library.db). Running the export again replaces the
previous copy of the library.`,
	Args: cobra.NoArgs,
	RunE: runLibraryExport,
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryListCmd, libraryContainsCmd, librarySaveCmd, libraryRemoveCmd, libraryExportCmd)

	libraryExportCmd.Flags().StringVar(&exportDB, "db", "", "Database path (overrides config)")
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	client, cfg, err := loadClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	page, err := client.Library().SavedTracks(context.Background())
	if err != nil {
		return err
	}
	if page == nil {
		return errNoResult
	}
	if jsonOutput {
		return printJSON(cmd, page.Items)
	}

	printer, err := printerFor(cmd, cfg)
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

func runLibraryContains(cmd *cobra.Command, args []string) error {
	client, _, err := loadClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	saved, err := client.Library().Contains(context.Background(), args)
	if err != nil {
		return err
	}
	if saved == nil {
		return errNoResult
	}

	out := cmd.OutOrStdout()
	for i, id := range args {
		if i >= len(saved) {
			break
		}
		fmt.Fprintf(out, "%s\t%t\n", id, saved[i])
	}
	return nil
}

func runLibrarySave(cmd *cobra.Command, args []string) error {
	return modifyLibrary(cmd, args, "Saved", func(ctx context.Context, c *spotify.Client) (bool, error) {
		return c.Library().Save(ctx, args)
	})
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	return modifyLibrary(cmd, args, "Removed", func(ctx context.Context, c *spotify.Client) (bool, error) {
		return c.Library().Remove(ctx, args)
	})
}

func modifyLibrary(cmd *cobra.Command, ids []string, verb string, op func(context.Context, *spotify.Client) (bool, error)) error {
	client, _, err := loadClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ok, err := op(context.Background(), client)
	if err != nil {
		return err
	}
	if !ok {
		return errNoResult
	}

	n := len(ids)
	if verb == "Saved" && n > spotify.MaxIDs {
		n = spotify.MaxIDs
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s %d track(s)\n", verb, n)
	return nil
}

func runLibraryExport(cmd *cobra.Command, args []string) error {
	client, cfg, err := loadClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	store, err := openExportStore(cfg.ExportDB)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	exporter := export.New(client, store, logger)
	stored, err := exporter.ExportLibrary(context.Background())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d tracks\n", stored)
	return nil
}

// openExportStore opens the export database, creating its directory.
func openExportStore(configured string) (*export.Store, error) {
	path := configured
	if exportDB != "" {
		path = exportDB
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	logger.Info().Str("db", path).Msg("Using export database")
	return export.NewStore(path)
}
