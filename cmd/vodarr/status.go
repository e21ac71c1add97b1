package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Server status and queue summary",
	Long: `Show server status, queue stage counts, and the last scan.

Examples:
  vodarr status            # Human-readable dashboard
  vodarr status --json     # Raw JSON`,
	Args: cobra.NoArgs,
	RunE: runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}

	printStatus(serverURL, status)
	return nil
}

func printStatus(server string, s *StatusResponse) {
	fmt.Printf("vodarr v%s | Server: %s | Status: %s\n\n", s.Version, server, s.Status)

	fmt.Println("Queue")
	total := 0
	for _, stage := range []string{
		"checking", "fetching_metadata", "downloading", "creating_record",
		"uploading", "uploading_thumbnail", "polling", "complete", "error",
	} {
		if n := s.Queue[stage]; n > 0 {
			fmt.Printf("  %-20s %d\n", stage+":", n)
			total += n
		}
	}
	if total == 0 {
		fmt.Println("  empty")
	}
	fmt.Println()

	fmt.Println("Scan")
	switch s.Scan.State {
	case "idle":
		fmt.Println("  no scan has run yet")
	case "running":
		fmt.Printf("  running (page %d/%d, %d videos so far)\n",
			s.Scan.Page, s.Scan.TotalPages, s.Scan.Videos)
	case "done":
		fmt.Printf("  done: %d videos in %d folders\n", s.Scan.Videos, s.Scan.Folders)
	case "failed":
		fmt.Printf("  failed: %s\n", s.Scan.Error)
	}
}
