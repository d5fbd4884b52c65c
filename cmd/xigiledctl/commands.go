package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/bot"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/catalog"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/persistence"
)

// runExport dumps chat messages from the SQLite transcript as JSON, for the
// same ranges the admin chatdata endpoint serves.
func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	dbPath := fs.String("db", "xigiled.db", "Path to the SQLite database")
	rangeName := fs.String("range", "week", "Time range: today, week, month, or year")
	output := fs.String("output", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	now := time.Now()
	var since time.Time
	switch *rangeName {
	case "today":
		year, month, day := now.Date()
		since = time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	case "week":
		since = now.AddDate(0, 0, -7)
	case "month":
		since = now.AddDate(0, -1, 0)
	case "year":
		since = now.AddDate(-1, 0, 0)
	default:
		return fmt.Errorf("range must be one of today, week, month, year")
	}

	db, err := persistence.Open(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	store := persistence.NewStore(db)
	messages, err := store.Messages(context.Background(), since)
	if err != nil {
		return fmt.Errorf("failed to query messages: %w", err)
	}

	payload, err := json.MarshalIndent(map[string]any{
		"range":    *rangeName,
		"since":    since,
		"count":    len(messages),
		"messages": messages,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	payload = append(payload, '\n')

	if *output == "" {
		_, err = os.Stdout.Write(payload)
		return err
	}
	if err := os.WriteFile(*output, payload, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *output, err)
	}
	fmt.Printf("Exported %d messages to %s.\n", len(messages), *output)
	return nil
}

// runChat drives the conversation engine from the terminal with no server,
// database, or LLM attached. Useful for smoke-testing flow changes.
func runChat(args []string) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	engine := bot.NewEngine(cat, nil, nil, nil)
	state := bot.NewState()
	ctx := context.Background()

	fmt.Println("Local chat (no persistence, no LLM). Type /quit to exit, /state to dump slots.")
	printReply(engine.Handle(ctx, "local", "", state))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "/quit", "/exit":
			return nil
		case "/state":
			dump, _ := json.MarshalIndent(state.Slots, "", "  ")
			fmt.Println(string(dump))
			continue
		}
		printReply(engine.Handle(ctx, "local", line, state))
	}
	return scanner.Err()
}

func printReply(reply bot.Reply) {
	fmt.Println(reply.Text)
	if reply.Buttons != nil && len(reply.Buttons.Buttons) > 0 {
		fmt.Printf("  [%s]\n", strings.Join(reply.Buttons.Buttons, " | "))
	}
	fmt.Printf("  (step: %s)\n", reply.Step)
}
