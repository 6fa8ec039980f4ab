// Package main provides a standalone health probe for container health
// checks and monitoring scripts
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/smartmealplanner/backend/internal/infrastructure/config"
	"github.com/smartmealplanner/backend/pkg/healthcheck"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
	exitCodeError   = 2
)

func main() {
	url := flag.String("url", "", "Health endpoint URL (default http://localhost:$PORT/health)")
	timeout := flag.Duration("timeout", 5*time.Second, "Request timeout")
	retries := flag.Int("retry", 0, "Number of retries on failure")
	retryDelay := flag.Duration("retry-delay", time.Second, "Delay between retries")
	verbose := flag.Bool("verbose", false, "Print the full response")
	flag.Parse()

	if *url == "" {
		cfg, err := config.Load("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
			os.Exit(exitCodeError)
		}
		*url = fmt.Sprintf("http://localhost:%d/health", cfg.Server.Port)
	}

	client := &http.Client{Timeout: *timeout}
	code := exitCodeFailure
	for attempt := 0; attempt <= *retries; attempt++ {
		if attempt > 0 {
			time.Sleep(*retryDelay)
		}
		if code = probe(client, *url, *verbose); code == exitCodeSuccess {
			break
		}
	}
	os.Exit(code)
}

func probe(client *http.Client, url string, verbose bool) int {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid url: %v\n", err)
		return exitCodeError
	}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "health check failed: %v\n", err)
		return exitCodeFailure
	}
	defer resp.Body.Close()

	var body healthcheck.Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		fmt.Fprintf(os.Stderr, "invalid health response: %v\n", err)
		return exitCodeFailure
	}

	fmt.Printf("%s (HTTP %d)\n", body.Status, resp.StatusCode)
	if verbose {
		for _, check := range body.Checks {
			fmt.Printf("  %-10s %s %s\n", check.Name, check.Status, check.Message)
		}
	}
	if resp.StatusCode != http.StatusOK || body.Status == healthcheck.StatusUnhealthy {
		return exitCodeFailure
	}
	return exitCodeSuccess
}
