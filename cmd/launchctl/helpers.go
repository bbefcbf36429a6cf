package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"launchboard-service/internal/domain/entity"
)

func writeLaunchTable(w io.Writer, launches []entity.Launch, favorite map[string]bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tDATE\tNAME\tSTATUS")
	for _, l := range launches {
		star := ""
		if favorite[l.ID] {
			star = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", star, l.ID, l.DateUTC.UTC().Format("2006-01-02"), l.Name, outcome(l))
	}
	tw.Flush()
}

func outcome(l entity.Launch) string {
	switch {
	case l.Upcoming:
		return "upcoming"
	case l.Success == nil:
		return "unknown"
	case *l.Success:
		return "success"
	default:
		return "failure"
	}
}
