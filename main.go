package main

import (
	"os"

	"github.com/bobcode99/PodcastAnalyzer-sub000/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
