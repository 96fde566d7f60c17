package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dalemusser/twindash/internal/app/system/extract"
	"github.com/dalemusser/twindash/internal/app/system/narrative"
	"github.com/dalemusser/twindash/internal/app/system/rowlookup"
	"github.com/dalemusser/twindash/internal/domain/models"
	"github.com/spf13/cobra"
)

func newMembersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "members",
		Short: "List member IDs in sheet order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.logger()
			defer logger.Sync()

			table, err := opts.fetch(cmd.Context(), logger)
			if err != nil {
				return err
			}
			members := rowlookup.ListColumn(table, opts.headerRows, opts.keyColumn)

			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string][]string{"members": members})
			}
			for _, id := range members {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newCoachesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "coaches",
		Short: "List distinct coaches, sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.logger()
			defer logger.Sync()

			table, err := opts.fetch(cmd.Context(), logger)
			if err != nil {
				return err
			}
			coaches, err := rowlookup.DistinctValues(table, opts.headerRows, opts.coachColumn)
			if err != nil {
				return err
			}

			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string][]string{"coaches": coaches})
			}
			for _, c := range coaches {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

type dashboardOutput struct {
	Metrics models.MetricsRecord `json:"metrics"`
	Summary string               `json:"summary"`
	Missing []string             `json:"missing,omitempty"`
}

func newDashboardCmd(opts *options) *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "dashboard <member_id>",
		Short: "Print one member's metrics and summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger()
			defer logger.Sync()

			mapping, err := opts.mapping()
			if err != nil {
				return err
			}
			if err := mapping.Validate(); err != nil {
				return err
			}
			renderer, err := narrative.New()
			if template != "" {
				renderer, err = narrative.Load(template)
			}
			if err != nil {
				return err
			}

			table, err := opts.fetch(cmd.Context(), logger)
			if err != nil {
				return err
			}

			id := args[0]
			row, err := rowlookup.Find(table, opts.headerRows, opts.keyColumn, id)
			if errors.Is(err, rowlookup.ErrNotFound) {
				return fmt.Errorf("member ID %s not found", id)
			}
			if err != nil {
				return err
			}

			record := extract.Extract(table, row, mapping, models.DefaultValue)
			summary, err := renderer.Render(record)
			if err != nil {
				return err
			}

			out := dashboardOutput{Metrics: record, Summary: summary, Missing: record.Missing()}
			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, field := range models.MetricFields {
				v, _ := record.Get(field)
				mark := ""
				if !v.Present {
					mark = "(missing)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", field, v.Text, mark)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&template, "template", "", "text/template file replacing the built-in summary")
	return cmd
}
