package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	launchcast "github.com/reoring/launchcast"
	"github.com/reoring/launchcast/client"
	"github.com/reoring/launchcast/spacex"
	"github.com/reoring/launchcast/spacex/legacy"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch one v5 launch by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.client().GetLaunch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out, err := launchcast.Encode(spacex.Registry, spacex.SchemaLaunch, l)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func newLatestCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "latest",
		Short: "List launches using the configured query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.client()
			var docs []spacex.Launch
			if limit > 0 {
				page, err := c.QueryLaunches(cmd.Context(), client.Query{
					SortField: a.cfg.Query.SortField,
					SortOrder: a.cfg.Query.SortOrder,
					Limit:     limit,
				})
				if err != nil {
					return err
				}
				docs = page.Docs
			} else {
				var err error
				if docs, err = c.LatestLaunches(cmd.Context()); err != nil {
					return err
				}
			}
			out := make([]any, 0, len(docs))
			for _, l := range docs {
				ext, err := launchcast.Encode(spacex.Registry, spacex.SchemaLaunch, l)
				if err != nil {
					return err
				}
				out = append(out, ext)
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Override the configured page size")
	return cmd
}

func newLegacyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "legacy <flight>",
		Short: "Fetch one v3 launch by flight number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("flight must be a positive integer, got %q", args[0])
			}
			l, err := a.client().GetLegacyLaunch(cmd.Context(), n)
			if err != nil {
				return err
			}
			out, err := launchcast.Encode(legacy.Registry, legacy.SchemaLaunch, l)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}
