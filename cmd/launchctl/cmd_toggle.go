package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Add a launch to favorites, or remove it if already there",
	Args:  cobra.ExactArgs(1),
	RunE:  runToggle,
}

func runToggle(cmd *cobra.Command, args []string) error {
	favorite, launch, err := app.Service.ToggleByID(cmd.Context(), args[0])
	if launch.ID == "" {
		return err
	}

	msg := "Removed %q (%s) from favorites\n"
	if favorite {
		msg = "Added %q (%s) to favorites\n"
	}
	fmt.Fprintf(cmd.OutOrStdout(), msg, launch.Name, launch.ID)
	// A failed write still toggled the in-memory set; report both.
	return err
}
