package main

import (
	"fmt"

	"github.com/awrzos/portadoc"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	recs, err := deps.History.ListConversions(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", portadoc.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No conversions recorded. Use 'portadoc convert' to create one.")
		return nil
	}

	for _, rec := range recs {
		status := rec.VerifyStatus
		if status == "" {
			status = "-"
		}
		source := rec.SourceURL
		if source == "" {
			source = "(local file)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			rec.UpdatedAt.Format("2006-01-02 15:04"), rec.Slug, status, source)
	}

	return nil
}
