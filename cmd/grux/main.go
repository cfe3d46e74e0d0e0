package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"grux/chat"
	"grux/cmd/internal/logger"
	"grux/config"
	"grux/gatewayclient"
)

// Minimal line-oriented chat client. It owns nothing: all conversation state
// lives in chat.Session, the way the browser UI would hold it.
func main() {
	config.InitApp()
	logger.Init(config.GetConfig().Logging.Level)

	session := chat.NewSession(gatewayclient.New())
	var staged []chat.Attachment

	fmt.Println("grux chat. /attach <path>, /history, /new, /quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()

		switch {
		case line == "/quit":
			return

		case line == "/new":
			if err := session.Reset(); err != nil {
				fmt.Println("cannot start a new chat while a reply is pending")
				continue
			}
			staged = nil
			fmt.Println("started a new chat")

		case line == "/history":
			printBuckets(session.HistoryBuckets(time.Now()))

		case strings.HasPrefix(line, "/attach "):
			path := strings.TrimSpace(strings.TrimPrefix(line, "/attach "))
			attachment, err := stageAttachment(path)
			if err != nil {
				fmt.Printf("cannot attach %s: %v\n", path, err)
				continue
			}
			staged = append(staged, attachment)
			fmt.Printf("attached %s (%d bytes)\n", attachment.Name, attachment.Size)

		default:
			reply, err := session.Submit(context.Background(), line, staged)
			if errors.Is(err, chat.ErrPending) {
				fmt.Println("still waiting for the previous reply")
				continue
			}
			staged = nil
			if err != nil {
				// GatewayFailure carries the user-facing message
				fmt.Println(err.Error())
				continue
			}
			if reply == nil {
				continue
			}
			fmt.Printf("grux> %s\n", reply.Content)
		}
	}
}

// stageAttachment records file metadata only; the content never leaves the
// client.
func stageAttachment(path string) (chat.Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return chat.Attachment{}, err
	}
	if info.IsDir() {
		return chat.Attachment{}, fmt.Errorf("%s is a directory", path)
	}
	return chat.Attachment{
		Name: filepath.Base(path),
		Size: info.Size(),
		Type: mime.TypeByExtension(filepath.Ext(path)),
	}, nil
}

func printBuckets(buckets chat.Buckets) {
	printBucket("Today", buckets.Today)
	printBucket("Yesterday", buckets.Yesterday)
	printBucket("Last 3 Days", buckets.LastThreeDays)
	printBucket("Last 7 Days", buckets.LastSevenDays)
	printBucket("Older", buckets.Older)
}

func printBucket(label string, entries []chat.HistoryEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Printf("%s:\n", label)
	for _, entry := range entries {
		summary := entry.SummaryText
		if summary == "" {
			summary = "(attachments only)"
		}
		fmt.Printf("  %s  %s\n", entry.CreatedAt.Format("15:04"), summary)
	}
}
