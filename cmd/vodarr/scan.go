package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the Vimeo library",
	Long: `Start a library scan and inspect its results.

Examples:
  vodarr scan start                  # Kick off a scan
  vodarr scan status                 # Check scan progress
  vodarr scan videos                 # List scanned videos by folder
  vodarr scan videos "intro talk"    # Fuzzy-search scanned titles`,
}

var scanStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a library scan",
	Args:  cobra.NoArgs,
	RunE:  runScanStart,
}

var scanStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show scan progress",
	Args:  cobra.NoArgs,
	RunE:  runScanStatus,
}

var scanVideosCmd = &cobra.Command{
	Use:   "videos [query...]",
	Short: "List or search scanned videos",
	RunE:  runScanVideos,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.AddCommand(scanStartCmd)
	scanCmd.AddCommand(scanStatusCmd)
	scanCmd.AddCommand(scanVideosCmd)

	scanVideosCmd.Flags().IntP("limit", "n", 20, "Maximum search results")
}

func runScanStart(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	status, err := client.StartScan()
	if err != nil {
		return fmt.Errorf("scan start failed: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}

	fmt.Println("Scan started. Use 'vodarr scan status' to follow progress.")
	return nil
}

func runScanStatus(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	status, err := client.ScanStatus()
	if err != nil {
		return fmt.Errorf("scan status failed: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}

	printScanStatus(status)
	return nil
}

func runScanVideos(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)

	if len(args) > 0 {
		limit, _ := cmd.Flags().GetInt("limit")
		query := strings.Join(args, " ")

		results, err := client.SearchVideos(query, limit)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if jsonOutput {
			printJSON(results)
			return nil
		}

		printMatches(query, results)
		return nil
	}

	videos, err := client.Videos()
	if err != nil {
		return fmt.Errorf("videos fetch failed: %w", err)
	}

	if jsonOutput {
		printJSON(videos)
		return nil
	}

	printVideos(videos)
	return nil
}

func printScanStatus(s *ScanStatus) {
	switch s.State {
	case "idle":
		fmt.Println("No scan has run yet. Use 'vodarr scan start'.")
	case "running":
		if s.TotalPages > 0 {
			fmt.Printf("Scanning: page %d/%d, %d videos in %d folders so far\n",
				s.Page, s.TotalPages, s.Videos, s.Folders)
		} else {
			fmt.Println("Scanning: fetching first page...")
		}
	case "done":
		fmt.Printf("Scan complete: %d videos in %d folders\n", s.Videos, s.Folders)
	case "failed":
		fmt.Printf("Scan failed: %s\n", s.Error)
	}
}

func printVideos(v *VideosResponse) {
	if v.Total == 0 {
		fmt.Println("No videos found. Run 'vodarr scan start' first.")
		return
	}

	fmt.Printf("Library (%d videos):\n", v.Total)
	for _, group := range v.Groups {
		fmt.Printf("\n%s/\n", group.Path)
		for _, video := range group.Videos {
			fmt.Printf("  %-12s %-50s %8s  %s\n",
				video.ID, truncate(video.Title, 50),
				humanize.Bytes(uint64(video.SizeBytes)), formatDuration(video.Duration))
		}
	}
}

func printMatches(query string, r *SearchResponse) {
	if r.Total == 0 {
		fmt.Printf("No matches for %q\n", query)
		return
	}

	fmt.Printf("Matches for %q (%d):\n\n", query, r.Total)
	fmt.Printf("  %-6s %-12s %-50s %s\n", "SCORE", "ID", "TITLE", "SIZE")
	fmt.Println("  " + strings.Repeat("-", 80))

	for _, m := range r.Matches {
		fmt.Printf("  %-6.2f %-12s %-50s %s\n",
			m.Score, m.Video.ID, truncate(m.Video.Title, 50),
			humanize.Bytes(uint64(m.Video.SizeBytes)))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "-"
	}
	if seconds < 3600 {
		return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
