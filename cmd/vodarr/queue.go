package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show the import queue",
	RunE:  runQueueCmd,
}

var queueAddCmd = &cobra.Command{
	Use:   "add <source-id>",
	Short: "Queue a Vimeo video for import",
	Long: `Queue a Vimeo video for import to the destination channel.

Examples:
  vodarr queue add 123456789
  vodarr queue add 123456789 --visibility unlisted --tags "talk,2024"`,
	Args: cobra.ExactArgs(1),
	RunE: runQueueAdd,
}

var queueRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an item from the queue",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueueRemove,
}

var queueClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all completed and failed items",
	Args:  cobra.NoArgs,
	RunE:  runQueueClear,
}

func init() {
	rootCmd.AddCommand(queueCmd)
	queueCmd.AddCommand(queueAddCmd)
	queueCmd.AddCommand(queueRemoveCmd)
	queueCmd.AddCommand(queueClearCmd)

	queueCmd.Flags().StringP("stage", "s", "", "Filter by stage (downloading, uploading, polling, complete, error, ...)")

	queueAddCmd.Flags().String("visibility", "public", "Destination visibility (public, unlisted, private)")
	queueAddCmd.Flags().String("language", "", "Audio language (BCP 47 tag, e.g. en)")
	queueAddCmd.Flags().String("tags", "", "Comma-separated tags")
	queueAddCmd.Flags().String("category", "", "Destination category")
}

func runQueueCmd(cmd *cobra.Command, args []string) error {
	stageFilter, _ := cmd.Flags().GetString("stage")

	client := NewClient(serverURL)
	items, err := client.Queue()
	if err != nil {
		return fmt.Errorf("queue fetch failed: %w", err)
	}

	if stageFilter != "" {
		filtered := make([]ItemResponse, 0)
		for _, item := range items.Items {
			if strings.EqualFold(item.Stage, stageFilter) {
				filtered = append(filtered, item)
			}
		}
		items.Items = filtered
		items.Total = len(filtered)
	}

	if jsonOutput {
		printJSON(items)
		return nil
	}

	printQueue(items)
	return nil
}

func runQueueAdd(cmd *cobra.Command, args []string) error {
	visibility, _ := cmd.Flags().GetString("visibility")
	language, _ := cmd.Flags().GetString("language")
	tags, _ := cmd.Flags().GetString("tags")
	category, _ := cmd.Flags().GetString("category")

	client := NewClient(serverURL)
	item, err := client.Enqueue(EnqueueRequest{
		SourceID:   args[0],
		Visibility: visibility,
		Language:   language,
		Tags:       tags,
		Category:   category,
	})
	if err != nil {
		return fmt.Errorf("enqueue failed: %w", err)
	}

	if jsonOutput {
		printJSON(item)
		return nil
	}

	fmt.Printf("Queued import %s (source %s)\n", item.ID, item.SourceID)
	return nil
}

func runQueueRemove(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	if err := client.RemoveItem(args[0]); err != nil {
		return fmt.Errorf("remove failed: %w", err)
	}
	fmt.Printf("Removed %s\n", args[0])
	return nil
}

func runQueueClear(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	resp, err := client.ClearDone()
	if err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	fmt.Printf("Removed %d finished items\n", resp.Removed)
	return nil
}

func printQueue(q *ListQueueResponse) {
	if len(q.Items) == 0 {
		fmt.Println("Queue is empty")
		return
	}

	fmt.Printf("Import Queue (%d):\n\n", q.Total)
	fmt.Printf("  %-36s %-20s %-36s %s\n", "ID", "STAGE", "TITLE", "STATUS")
	fmt.Println("  " + strings.Repeat("-", 100))

	for _, item := range q.Items {
		title := item.Title
		if title == "" {
			title = item.SourceID
		}
		if len(title) > 36 {
			title = title[:33] + "..."
		}
		status := item.StatusText
		if item.Stage == "error" && item.ErrorMessage != "" {
			status = item.ErrorMessage
		}
		fmt.Printf("  %-36s %-20s %-36s %s\n", item.ID, item.Stage, title, status)
	}
}
