package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	ioutils "github.com/kipyin/lego-songbook/internal/io"
	"github.com/kipyin/lego-songbook/internal/library"
	"github.com/kipyin/lego-songbook/internal/model"
	"github.com/kipyin/lego-songbook/internal/pipeline"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Song info document utilities",
	}

	infoCmd.AddCommand(&cobra.Command{
		Use:   "export [path]",
		Short: "Write resources and lyrics of every song to a YAML document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.settings()
			if err != nil {
				return err
			}
			catalog, err := ctx.catalog(cmd.Context())
			if err != nil {
				return err
			}

			path := settings.SongInfo
			if len(args) == 1 {
				path = args[0]
			}
			if err := catalog.ExportSongInfo(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d songs to %s\n", catalog.Len(), path)
			return nil
		},
	})

	infoCmd.AddCommand(&cobra.Command{
		Use:   "load [path]",
		Short: "Merge a YAML song info document and summarize the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := ctx.catalog(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 1 {
				if err := catalog.LoadInfoFromDocument(args[0]); err != nil {
					return err
				}
			}

			rows := make([][]string, 0, catalog.Len())
			for _, song := range catalog.Songs {
				labels := make([]string, 0, len(song.Lyrics))
				for label := range song.Lyrics {
					labels = append(labels, label)
				}
				slices.Sort(labels)
				rows = append(rows, []string{
					song.Title,
					strconv.Itoa(len(song.ResourcesOf(model.ResourceSheet))),
					strconv.Itoa(len(song.ResourcesOf(model.ResourceMedia))),
					strings.Join(labels, ", "),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]column{{title: "Title"}, {title: "Sheets", right: true}, {title: "Media", right: true}, {title: "Lyrics"}},
				rows,
			))
			return nil
		},
	})

	return infoCmd
}

func newResourcesCommand(ctx *commandContext) *cobra.Command {
	var kind string

	resourcesCmd := &cobra.Command{
		Use:   "resources",
		Short: "Search the resource library",
	}
	resourcesCmd.PersistentFlags().StringVarP(&kind, "kind", "k", "media", "Resource kind: sheet or media")

	resourcesCmd.AddCommand(&cobra.Command{
		Use:   "find <title>",
		Short: "List the files of a title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.settings()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			searcher := library.NewSearcher(logger)
			searcher.ThumbnailDir = settings.ThumbnailConfig().DirName
			paths, err := searcher.Find(args[0], model.ResourceType(kind), settings.LibraryRoot)
			if err != nil {
				return err
			}
			for _, path := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	})

	resourcesCmd.AddCommand(&cobra.Command{
		Use:   "scan",
		Short: "List the files of every song in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.settings()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			catalog, err := ctx.catalog(cmd.Context())
			if err != nil {
				return err
			}

			searcher := library.NewSearcher(logger)
			searcher.ThumbnailDir = settings.ThumbnailConfig().DirName
			byTitle, err := searcher.FindBySong(model.ResourceType(kind), settings.LibraryRoot, catalog)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, catalog.Len())
			for _, song := range catalog.Songs {
				paths := byTitle[song.Title]
				rows = append(rows, []string{song.Title, strconv.Itoa(len(paths)), strings.Join(paths, "\n")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]column{{title: "Title"}, {title: "Files", right: true}, {title: "Paths"}},
				rows,
			))
			return nil
		},
	})

	return resourcesCmd
}

func newPagesCommand(ctx *commandContext) *cobra.Command {
	pagesCmd := &cobra.Command{
		Use:   "pages",
		Short: "Page stub utilities",
	}

	var quiet bool
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a page stub for every song without one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.settings()
			if err != nil {
				return err
			}
			catalog, err := ctx.catalog(cmd.Context())
			if err != nil {
				return err
			}
			if err := ioutils.EnsureDir(settings.PageDir); err != nil {
				return err
			}

			created := 0
			var errs []error
			for _, song := range catalog.Songs {
				ok, err := song.CreatePage(settings.PageDir, quiet)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				if ok {
					created++
					fmt.Fprintln(cmd.OutOrStdout(), song.PagePath(settings.PageDir))
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %d pages in %s\n", created, settings.PageDir)
			return errors.Join(errs...)
		},
	}
	createCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Skip songs whose page exists instead of failing")
	pagesCmd.AddCommand(createCmd)

	return pagesCmd
}

func newPlaylistCommand(ctx *commandContext) *cobra.Command {
	var (
		format   string
		name     string
		extended bool
	)

	cmd := &cobra.Command{
		Use:   "playlist",
		Short: "Write a setlist playlist of the catalog recordings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.settings()
			if err != nil {
				return err
			}
			if format != "" {
				settings.Playlist.Format = format
			}
			if name != "" {
				settings.Playlist.Name = name
			}
			if cmd.Flags().Changed("extended") {
				settings.Playlist.Extended = extended
			}

			m, err := ctx.run(cmd.Context(), pipeline.Steps{ScanResources: true, ReadTags: true, Playlist: true})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), m.PlaylistPath())
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Playlist format: m3u, pls, wpl or zpl")
	cmd.Flags().StringVar(&name, "name", "", "Playlist file name without extension")
	cmd.Flags().BoolVar(&extended, "extended", true, "Write #EXTINF lines in M3U playlists")
	return cmd
}

func newTagCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tag",
		Short: "Write catalog data into the ID3 tags of every recording",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.run(cmd.Context(), pipeline.Steps{ScanResources: true, WriteTags: true})
			return err
		},
	}
}

func newThumbsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "thumbs",
		Short: "Write TINY thumbnails of sheet scans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.run(cmd.Context(), pipeline.Steps{Thumbnails: true})
			return err
		},
	}
}

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var tags bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run every site build step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := pipeline.AllSteps()
			steps.WriteTags = tags

			m, err := ctx.run(cmd.Context(), steps)
			if err != nil {
				return err
			}
			done, total := m.GetProgress()
			fmt.Fprintf(cmd.OutOrStdout(), "Built %s: %d/%d steps\n", m.Catalog().Name, done, total)
			return nil
		},
	}

	cmd.Flags().BoolVar(&tags, "tags", false, "Also write ID3 tags into recordings")
	return cmd
}
