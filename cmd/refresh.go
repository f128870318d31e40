package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jfmyers9/spotctl/internal/config"
	"github.com/jfmyers9/spotctl/pkg/spotify"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Exchange the stored refresh token for a new access token",
	Long: `Exchange the stored refresh token for a new access token and save it.

The refresh token is read from spotify.refresh_token. Failures are always
reported, whatever --raise-errors says.`,
	Args: cobra.NoArgs,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Spotify.RefreshToken == "" {
		return fmt.Errorf("no refresh token configured, run 'spotctl auth' first")
	}

	tok, err := spotify.RefreshToken(ctx, refreshConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}

	cfg.Spotify.AccessToken = tok.AccessToken
	cfg.Spotify.RefreshToken = tok.RefreshToken
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	logger.Info().Time("expiry", tok.Expiry()).Str("scope", tok.Scope).Msg("Access token refreshed")

	out := cmd.OutOrStdout()
	if expiry := tok.Expiry(); !expiry.IsZero() {
		fmt.Fprintf(out, "✓ Access token refreshed, valid until %s\n", expiry.Local().Format(time.Kitchen))
	} else {
		fmt.Fprintln(out, "✓ Access token refreshed")
	}
	return nil
}

func refreshConfig(cfg *config.Config) spotify.RefreshConfig {
	return spotify.RefreshConfig{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		RefreshToken: cfg.Spotify.RefreshToken,
		AccountsURL:  cfg.Spotify.AccountsURL,
		Retries:      cfg.HTTP.Retries,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		Logger:       zerologAdapter{logger: logger.With().Str("component", "refresh").Logger()},
	}
}
