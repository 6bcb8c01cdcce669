package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Varun5711/taskmate/cmd/tui/client"
	"github.com/Varun5711/taskmate/cmd/tui/ui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	defaultURL := os.Getenv("TASKMATE_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:5000"
	}
	apiURL := flag.String("api", defaultURL, "TaskMate API base URL")
	flag.Parse()

	apiClient, err := client.NewClient(*apiURL)
	if err != nil {
		fmt.Printf("Failed to create API client: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		ui.NewModel(apiClient),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
