// Interactive search client. Every line of input updates the active
// filter set through a Querier, so debounce, caching, retry and
// incremental fetching behave exactly as they would under a UI.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joblens/joblens/internal/cache"
	"github.com/joblens/joblens/internal/config"
	"github.com/joblens/joblens/internal/domain"
	"github.com/joblens/joblens/internal/query"
	"github.com/joblens/joblens/pkg/jobsapi"
	"github.com/joblens/joblens/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	client, err := jobsapi.NewClient(jobsapi.Config{BaseURL: cfg.Client.ServerURL})
	if err != nil {
		logger.Error("failed to build API client", "err", err)
		os.Exit(1)
	}

	store := buildStore(cfg, logger)

	q := query.New(client, store, query.Config{
		Debounce:    cfg.Client.Debounce,
		StaleAfter:  cfg.Client.StaleAfter,
		EvictAfter:  cfg.Client.EvictAfter,
		MaxAttempts: cfg.Client.MaxAttempts,
		RetryBase:   cfg.Client.RetryBase,
		RetryCap:    cfg.Client.RetryCap,
	}, logger, render)
	defer q.Close()

	fmt.Printf("Connected to %s\n", cfg.Client.ServerURL)
	fmt.Println("Type a keyword to search. Commands: /location /company /type /remote /salary /posted /more /retry /get /reset /quit")

	repl(q, client)
}

func buildStore(cfg config.Config, logger *logging.Logger) cache.Store {
	if cfg.RedisURL == "" {
		return cache.NewMemory(time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn("redis unavailable, using in-memory cache", "err", err)
		return cache.NewMemory(time.Minute)
	}

	logger.Info("using shared redis cache")
	return cache.NewRedis(client)
}

func repl(q *query.Querier, client *jobsapi.Client) {
	filters := domain.SearchRequest{}
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "/quit" || line == "/exit":
			return

		case line == "/more":
			q.LoadMore()

		case line == "/retry":
			q.Retry()

		case line == "/reset":
			filters = domain.SearchRequest{}
			q.Update(filters)

		case strings.HasPrefix(line, "/get "):
			getJob(client, strings.TrimSpace(strings.TrimPrefix(line, "/get ")))

		case strings.HasPrefix(line, "/"):
			if applyCommand(&filters, line) {
				q.Update(filters)
			}

		default:
			filters.Keyword = line
			q.Update(filters)
		}
	}
}

// applyCommand mutates one filter dimension from a "/name value" line.
func applyCommand(filters *domain.SearchRequest, line string) bool {
	name, value, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	value = strings.TrimSpace(value)

	switch name {
	case "location":
		filters.Location = value
	case "company":
		filters.Company = value
	case "type":
		filters.JobType = value
	case "salary":
		filters.Salary = value
	case "posted":
		filters.DatePosted = value
	case "remote":
		switch strings.ToLower(value) {
		case "on", "true", "yes":
			v := true
			filters.Remote = &v
		case "off", "false", "no":
			v := false
			filters.Remote = &v
		default:
			filters.Remote = nil
		}
	default:
		fmt.Printf("unknown command %q\n", name)
		return false
	}
	return true
}

func getJob(client *jobsapi.Client, id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	j, err := client.Get(ctx, id)
	if err != nil {
		fmt.Printf("lookup failed: %v\n", err)
		return
	}

	fmt.Printf("%s @ %s (%s)\n", j.Title, j.Company, j.Location)
	if j.Salary != "" {
		fmt.Printf("  salary: %s\n", j.Salary)
	}
	fmt.Printf("  %s\n", j.Description)
}

func render(snap query.Snapshot) {
	switch snap.State {
	case query.StateDebouncing:
		// quiet period running, nothing to show yet
	case query.StateInFlight:
		fmt.Println("searching...")
	case query.StateRetryScheduled:
		fmt.Println("connection trouble, retrying...")
	case query.StateExhausted:
		fmt.Println("failed to load jobs, type /retry to try again")
	case query.StateSuccess:
		if len(snap.Jobs) == 0 {
			fmt.Println("no jobs matched")
			return
		}
		for i, j := range snap.Jobs {
			marker := " "
			if j.Urgent {
				marker = "!"
			}
			fmt.Printf("%s %2d. [%s] %s @ %s (%s, %s)\n",
				marker, i+1, j.ID, j.Title, j.Company, j.Location, j.Posted)
		}
		fmt.Printf("showing %d of %d", len(snap.Jobs), snap.Total)
		if snap.HasMore {
			fmt.Print(", type /more for the next page")
		}
		fmt.Println()
	}
}
