package main

import (
	"fmt"

	"launchboard-service/internal/domain/entity"

	"github.com/spf13/cobra"
)

var listFlags struct {
	search string
	year   string
	status string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List launches matching a search, year and status",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	f := listCmd.Flags()
	f.StringVarP(&listFlags.search, "search", "s", "", "Case-insensitive substring of the launch name")
	f.StringVarP(&listFlags.year, "year", "y", "", "UTC launch year, e.g. 2020")
	f.StringVar(&listFlags.status, "status", string(entity.LaunchStatusAll), "One of all, past, upcoming")
}

func runList(cmd *cobra.Command, _ []string) error {
	result, err := app.Service.Search(cmd.Context(), entity.FilterCriteria{
		SearchText: listFlags.search,
		Year:       listFlags.year,
		Status:     entity.ParseLaunchStatus(listFlags.status),
	})
	if err != nil {
		return err
	}
	if result.Err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: showing cached launches: %v\n", result.Err)
	}

	out := cmd.OutOrStdout()
	writeLaunchTable(out, result.Launches, result.Favorite)
	fmt.Fprintf(out, "\n%d of %d launches\n", len(result.Launches), result.Total)
	return nil
}
