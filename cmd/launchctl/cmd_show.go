package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the details of one launch",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	launch, err := app.Service.GetLaunch(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:        %s\n", launch.ID)
	fmt.Fprintf(out, "Name:      %s\n", launch.Name)
	fmt.Fprintf(out, "Date:      %s\n", launch.DateUTC.UTC().Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(out, "Status:    %s\n", outcome(launch))
	fmt.Fprintf(out, "Rocket:    %s\n", launch.Rocket)
	fmt.Fprintf(out, "Launchpad: %s\n", launch.Launchpad)
	fmt.Fprintf(out, "Favorite:  %t\n", app.Service.IsFavorite(launch.ID))
	if launch.PatchImageURL != "" {
		fmt.Fprintf(out, "Patch:     %s\n", launch.PatchImageURL)
	}
	if launch.Details != "" {
		fmt.Fprintf(out, "\n%s\n", launch.Details)
	}
	return nil
}
