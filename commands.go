package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cbsinteractive/video-search-client/job"
	"github.com/cbsinteractive/video-search-client/playback"
	"github.com/cbsinteractive/video-search-client/search"
	"github.com/cbsinteractive/video-search-client/tui"
	"github.com/cbsinteractive/video-search-client/upload"
)

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "video-search",
		Short:         "Upload videos for indexing and search the shot catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		a.uploadCmd(),
		a.jobsCmd(),
		a.searchCmd(),
		a.searchImageCmd(),
		a.searchClipCmd(),
		a.playCmd(),
	)
	return root
}

func (a *app) uploadCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "upload <file.mp4> [file.mp4 ...]",
		Short: "Upload videos and create processing jobs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.UserID == "" {
				return fmt.Errorf("no user identity configured; set VSS_USER_ID")
			}

			files, err := readFiles(args)
			if err != nil {
				return err
			}

			if plain {
				sink := newConsoleSink(os.Stdout)
				a.creation.Status = sink
				err := a.creation.Run(cmd.Context(), a.cfg.UserID, files)
				sink.finish()
				return err
			}
			return a.runUploadDashboard(cmd.Context(), files)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "line-based progress output instead of the dashboard")
	return cmd
}

// runUploadDashboard runs the batch behind the bubbletea dashboard: jobs are
// loaded first, then the batch streams progress into the UI while newly
// created jobs appear at the top of the table.
func (a *app) runUploadDashboard(ctx context.Context, files []upload.File) error {
	a.loadJobs(ctx)

	program := tea.NewProgram(tui.NewModel(a.registry.Records()))
	a.registry.OnChange = func(records []job.Record) {
		program.Send(tui.JobsMsg(records))
	}
	a.creation.Status = tui.Sink{Program: program}

	go func() {
		err := a.creation.Run(ctx, a.cfg.UserID, files)
		program.Send(tui.DoneMsg{Err: err})
	}()

	_, err := program.Run()
	return err
}

func (a *app) jobsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "List processing jobs, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadJobs(cmd.Context()); err != nil {
				return err
			}
			printJobs(os.Stdout, a.registry.Records())
			return nil
		},
	}
}

// loadJobs performs the session-start bulk listing fetch.
func (a *app) loadJobs(ctx context.Context) error {
	listings, err := a.api.AllJobs(ctx)
	if err != nil {
		a.log.WithError(err).Error("listing jobs failed")
		return err
	}
	records := make([]job.Record, 0, len(listings))
	for _, l := range listings {
		records = append(records, job.RecordFromListing(l))
	}
	a.registry.LoadAll(records)
	return nil
}

func (a *app) searchCmd() *cobra.Command {
	var play bool
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the shot catalog by text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.searcher.SearchText(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			printResults(os.Stdout, results)
			return a.maybePlay(cmd.Context(), play, results)
		},
	}
	cmd.Flags().BoolVar(&play, "play", false, "play the top result's shot window")
	return cmd
}

func (a *app) searchImageCmd() *cobra.Command {
	var play bool
	cmd := &cobra.Command{
		Use:   "search-image <image>",
		Short: "Search the shot catalog by still image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			results, err := a.searcher.SearchImage(cmd.Context(), data, imageMIMEType(args[0]))
			if err != nil {
				return err
			}
			printResults(os.Stdout, results)
			return a.maybePlay(cmd.Context(), play, results)
		},
	}
	cmd.Flags().BoolVar(&play, "play", false, "play the top result's shot window")
	return cmd
}

func (a *app) searchClipCmd() *cobra.Command {
	var play bool
	cmd := &cobra.Command{
		Use:   "search-clip <clip.mp4>",
		Short: "Search the shot catalog with a short query clip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.UserID == "" {
				return fmt.Errorf("no user identity configured; set VSS_USER_ID")
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			clip := upload.File{Name: filepath.Base(args[0]), Contents: data}

			sink := newConsoleSink(os.Stdout)
			results, err := a.searcher.ClipSearchUpload(cmd.Context(), a.cfg.UserID, clip, a.uploader, sink)
			sink.finish()
			if err != nil {
				return err
			}
			printResults(os.Stdout, results)
			return a.maybePlay(cmd.Context(), play, results)
		},
	}
	cmd.Flags().BoolVar(&play, "play", false, "play the top result's shot window")
	return cmd
}

func (a *app) playCmd() *cobra.Command {
	var startMs, endMs int64
	cmd := &cobra.Command{
		Use:   "play <video-name>",
		Short: "Play a stored video, optionally windowed to a shot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player := &playback.ExecPlayer{Binary: a.cfg.PlayerBinary, Log: a.log}
			if err := a.binder.Bind(cmd.Context(), player, args[0], startMs, endMs); err != nil {
				return err
			}
			return player.Play(cmd.Context())
		},
	}
	cmd.Flags().Int64Var(&startMs, "start", 0, "shot start offset in milliseconds")
	cmd.Flags().Int64Var(&endMs, "end", 0, "shot end offset in milliseconds (0 plays to the end)")
	return cmd
}

// maybePlay plays the first result's shot window with the configured player.
func (a *app) maybePlay(ctx context.Context, play bool, results []search.ResultViewModel) error {
	if !play || len(results) == 0 {
		return nil
	}
	top := results[0]
	player := &playback.ExecPlayer{Binary: a.cfg.PlayerBinary, Log: a.log}
	if err := a.binder.Bind(ctx, player, top.VideoName, top.StartTimeMs, top.EndTimeMs); err != nil {
		return err
	}
	return player.Play(ctx)
}
