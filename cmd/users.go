package cmd

import (
	"context"
	"fmt"

	"github.com/jfmyers9/spotctl/pkg/spotify"
	"github.com/spf13/cobra"
)

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the profile of the authorized user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUser(cmd, "")
	},
}

var userCmd = &cobra.Command{
	Use:   "user <user-id>",
	Short: "Show a user's public profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUser(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(meCmd)
	rootCmd.AddCommand(userCmd)
}

func runUser(cmd *cobra.Command, userID string) error {
	client, _, err := loadClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	var user *spotify.User
	if userID == "" {
		user, err = client.Users().Me(ctx)
	} else {
		user, err = client.Users().Get(ctx, userID)
	}
	if err != nil {
		return err
	}
	if user == nil {
		return errNoResult
	}

	if jsonOutput {
		return printJSON(cmd, user)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:        %s\n", user.ID)
	fmt.Fprintf(out, "Name:      %s\n", user.DisplayName)
	if user.Email != "" {
		fmt.Fprintf(out, "Email:     %s\n", user.Email)
	}
	if user.Country != "" {
		fmt.Fprintf(out, "Country:   %s\n", user.Country)
	}
	if user.Product != "" {
		fmt.Fprintf(out, "Product:   %s\n", user.Product)
	}
	fmt.Fprintf(out, "Followers: %d\n", user.Followers.Total)
	return nil
}

// currentUserID resolves "me" or an empty id to the authorized user's id.
func currentUserID(ctx context.Context, client *spotify.Client, userID string) (string, error) {
	if userID != "" && userID != "me" {
		return userID, nil
	}
	me, err := client.Users().Me(ctx)
	if err != nil {
		return "", err
	}
	if me == nil {
		return "", errNoResult
	}
	return me.ID, nil
}
