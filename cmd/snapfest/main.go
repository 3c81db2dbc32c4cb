package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/snapfest/gallery/internal/api"
	"github.com/snapfest/gallery/internal/config"
	"github.com/snapfest/gallery/internal/gallery"
	"github.com/snapfest/gallery/internal/history"
	"github.com/snapfest/gallery/internal/logging"
	"github.com/snapfest/gallery/internal/media"
	"github.com/snapfest/gallery/internal/playback"
	"github.com/snapfest/gallery/internal/ui"
	"github.com/snapfest/gallery/internal/upload"
)

func main() {
	if err := logging.Init(); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "upload" {
		runUpload(cfg, os.Args[2:])
		return
	}

	runGallery(cfg)
}

// runUpload handles `snapfest upload [-event name] [-jobs n] files...`.
// The upload path does not need the TUI; results go straight to stdout.
func runUpload(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	event := fs.String("event", "", "event name to tag the files with")
	jobs := fs.Int("jobs", 3, "number of concurrent uploads")
	fs.Parse(args)

	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: snapfest upload [-event name] [-jobs n] files...")
		os.Exit(2)
	}

	client := api.NewClient(cfg, 5*time.Minute, nil)
	uploader := upload.NewUploader(client, *jobs)

	results, err := uploader.UploadAll(context.Background(), paths, *event)
	if err != nil {
		log.Fatalf("Upload aborted: %v", err)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("FAIL  %s: %v\n", r.Path, r.Err)
			continue
		}
		fmt.Printf("ok    %s (%s)\n", r.Path, r.Duration.Round(time.Millisecond))
	}
	if failed > 0 {
		fmt.Printf("%d of %d uploads failed\n", failed, len(results))
		os.Exit(1)
	}
}

func runGallery(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Data directory: ~/.snapfest/
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}
	dataDir := filepath.Join(homeDir, ".snapfest")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := history.Open(filepath.Join(dataDir, "snapfest.db"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	normalizer := media.NewNormalizer(60*time.Second, config.DefaultHeaders(), "")
	client := api.NewClient(cfg, 30*time.Second, normalizer)
	player := playback.NewPlayer(os.Getenv("SNAPFEST_PLAYER"))

	session := gallery.NewSession(gallery.Query{
		Filter:   gallery.ParseFilter(cfg.UI.Filter),
		PageSize: cfg.UI.PageSize,
		Sort:     cfg.UI.Sort,
	})

	appCfg := ui.AppConfig{
		Session: session,
		Columns: cfg.UI.Columns,

		FetchPage: func(q gallery.Query, gen uint64) tea.Cmd {
			return func() tea.Msg {
				page, err := client.FetchPage(ctx, q)
				return ui.PageLoaded{Result: page, Gen: gen, Err: err}
			}
		},
		Normalize: func(item media.Item, index int) tea.Cmd {
			return func() tea.Msg {
				return ui.ItemNormalized{Index: index, Item: normalizer.Normalize(ctx, item)}
			}
		},
		RecordView: func(item media.Item) tea.Cmd {
			return func() tea.Msg {
				err := st.Record(history.Entry{
					ItemID:   item.ID,
					Title:    item.Title,
					Event:    item.Event,
					ViewedAt: time.Now(),
				})
				if err != nil {
					// History is best effort; the viewer opened fine.
					logging.Warn("record view", "id", item.ID, "err", err)
				}
				return ui.ViewRecorded{ItemID: item.ID}
			}
		},
		LoadSeen: func(ids []string) tea.Cmd {
			return func() tea.Msg {
				seen, err := st.Seen(ids)
				return ui.SeenLoaded{Seen: seen, Err: err}
			}
		},

		PlayVideo: func(src string) tea.Cmd {
			return func() tea.Msg {
				if err := player.Play(src); err != nil {
					return ui.PlaybackEvent{State: playback.StateStopped, Err: err}
				}
				return nil
			}
		},
		TogglePlayback: func() tea.Cmd {
			return func() tea.Msg {
				if err := player.Toggle(); err != nil {
					logging.Warn("toggle playback", "err", err)
				}
				return nil
			}
		},
		StopPlayback: func() tea.Cmd {
			return func() tea.Msg {
				player.Stop()
				return nil
			}
		},
		NextPlaybackEvent: func() tea.Cmd {
			return func() tea.Msg {
				ev, ok := <-player.Events()
				if !ok {
					return nil
				}
				return ui.PlaybackEvent{State: ev.State, Err: ev.Err}
			}
		},
	}

	app := ui.NewApp(appCfg)
	program := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		log.Printf("Error running program: %v", err)
	}

	player.Stop()
}
