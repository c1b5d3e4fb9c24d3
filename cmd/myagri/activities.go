package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	lifecycleadapter "github.com/aretw0/myagri/pkg/adapters/lifecycle"
	"github.com/aretw0/myagri/pkg/core"
	"github.com/aretw0/myagri/pkg/query"
)

var (
	listQuery    string
	listTags     []string
	listType     string
	listStatus   string
	listJSON     bool
	addTags      []string
	addType      string
	addPriority  string
	addBody      string
	addDate      string
	watchPattern string
)

var activitiesCmd = &cobra.Command{
	Use:     "activities",
	Aliases: []string{"act"},
	Short:   "Track farm activities",
}

var activitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List activities matching the filters",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		filter := query.Filter{
			Query:    listQuery,
			Tags:     listTags,
			Category: core.Category(listType),
		}
		visible := query.ByStatus(query.Search(svc.Records(), filter), core.Status(listStatus))

		if listJSON {
			writeJSON(cmd.OutOrStdout(), visible)
			return
		}
		printRecords(cmd.OutOrStdout(), visible)
	},
}

var activitiesAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add an activity",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		ctx := context.WithValue(context.Background(), core.ChangeReasonKey, "add activity")
		rec, err := svc.Add(ctx, core.Draft{
			Kind:     core.KindActivity,
			Title:    strings.Join(args, " "),
			Body:     addBody,
			Tags:     addTags,
			Category: core.Category(addType),
			Priority: core.Priority(addPriority),
			Date:     addDate,
		})
		if err != nil {
			fatal("Failed to add activity", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s - %s\n", rec.ID, rec.Title)
	},
}

var activitiesCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark an activity as completed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setStatus(cmd, args[0], core.StatusCompleted)
	},
}

var activitiesStatusCmd = &cobra.Command{
	Use:   "status <id> <pending|in-progress|completed>",
	Short: "Change the status of an activity",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		st, err := core.ParseStatus(args[1])
		if err != nil {
			fatal("Invalid status", err)
		}
		setStatus(cmd, args[0], st)
	},
}

var activitiesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an activity",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()
		id := args[0]
		if _, ok := svc.Get(id); !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "No activity %s, nothing to delete\n", id)
			return
		}
		ctx := context.WithValue(context.Background(), core.ChangeReasonKey, "delete activity "+id)
		if err := svc.Remove(ctx, id); err != nil {
			fatal("Failed to delete activity", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
	},
}

var activitiesTagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every tag in use",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, tag := range query.AllTags(openService().Records()) {
			fmt.Fprintln(cmd.OutOrStdout(), tag)
		}
	},
}

var activitiesWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes made to the store on disk until interrupted",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		events, err := svc.Watch(ctx, watchPattern)
		if err != nil {
			fatal("Failed to watch store", err)
		}

		src := lifecycleadapter.NewStoreSource(events)
		if err := src.Start(ctx); err != nil {
			fatal("Failed to start event source", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", storePath())
		for e := range src.Events() {
			fmt.Fprintln(cmd.OutOrStdout(), e.String())
		}
	},
}

func setStatus(cmd *cobra.Command, id string, st core.Status) {
	svc := openService()
	if _, ok := svc.Get(id); !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "No activity %s, nothing to update\n", id)
		return
	}
	ctx := context.WithValue(context.Background(), core.ChangeReasonKey, fmt.Sprintf("set %s to %s", id, st))
	if err := svc.SetStatus(ctx, id, st); err != nil {
		fatal("Failed to update activity", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", id, st)
}

func printRecords(w io.Writer, records []core.Record) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Date, r.Category, r.Status, r.Title, strings.Join(r.Tags, ","))
	}
	tw.Flush()
}

func writeJSON(w io.Writer, v any) {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fatal("Error encoding JSON", err)
	}
}

func init() {
	rootCmd.AddCommand(activitiesCmd)
	activitiesCmd.AddCommand(activitiesListCmd, activitiesAddCmd, activitiesCompleteCmd,
		activitiesStatusCmd, activitiesDeleteCmd, activitiesTagsCmd, activitiesWatchCmd)

	activitiesListCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Text searched in title and description")
	activitiesListCmd.Flags().StringSliceVarP(&listTags, "tag", "t", nil, "Keep activities with any of these tags (repeatable)")
	activitiesListCmd.Flags().StringVar(&listType, "type", query.All, "Activity type: task, event, note or all")
	activitiesListCmd.Flags().StringVar(&listStatus, "status", query.All, "Status: pending, in-progress, completed or all")
	activitiesListCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")

	activitiesAddCmd.Flags().StringSliceVarP(&addTags, "tag", "t", nil, "Tags (repeatable, default \"nouvelle\")")
	activitiesAddCmd.Flags().StringVar(&addType, "type", string(core.CategoryTask), "Activity type: task, event or note")
	activitiesAddCmd.Flags().StringVar(&addPriority, "priority", string(core.PriorityMedium), "Priority: high, medium or low")
	activitiesAddCmd.Flags().StringVar(&addBody, "body", "", "Description")
	activitiesAddCmd.Flags().StringVar(&addDate, "date", "", "Date as YYYY-MM-DD (default today)")

	activitiesWatchCmd.Flags().StringVar(&watchPattern, "pattern", "*", "Glob on activity ids")
}
