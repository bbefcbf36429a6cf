package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List favorite launches in the order they were added",
	Args:  cobra.NoArgs,
	RunE:  runFavorites,
}

func runFavorites(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	favorites := app.Service.Favorites()
	if len(favorites) == 0 {
		fmt.Fprintln(out, "No favorites yet. Run 'launchctl toggle <id>' to add one.")
		return nil
	}

	marked := make(map[string]bool, len(favorites))
	for _, l := range favorites {
		marked[l.ID] = true
	}
	writeLaunchTable(out, favorites, marked)
	return nil
}
