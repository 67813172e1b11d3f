package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kipyin/lego-songbook/internal/model"
	"github.com/kipyin/lego-songbook/internal/render"
	"github.com/kipyin/lego-songbook/internal/sortkey"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the songs of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := ctx.catalog(cmd.Context())
			if err != nil {
				return err
			}
			keys, err := ctx.keys()
			if err != nil {
				return err
			}
			printCatalog(cmd.OutOrStdout(), catalog, keys, plain)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print one title per line")
	return cmd
}

func newSortCommand(ctx *commandContext) *cobra.Command {
	var (
		descending bool
		output     string
		plain      bool
	)

	cmd := &cobra.Command{
		Use:   "sort <field>",
		Short: "Sort the catalog by a catalog column",
		Long: "Sort the catalog by a column of its CSV header. Titles sort by pinyin,\n" +
			"other columns by their text. Equal songs keep their catalog order.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.settings()
			if err != nil {
				return err
			}
			catalog, err := ctx.catalog(cmd.Context())
			if err != nil {
				return err
			}
			keys, err := ctx.keys()
			if err != nil {
				return err
			}

			sorted, err := catalog.Sort(args[0], model.SortOptions{
				Descending: descending,
				Format:     settings.Format(),
				Keys:       keys,
			})
			if err != nil {
				return err
			}

			if output != "" {
				if err := sorted.ExportCSV(output, settings.Format()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d songs to %s\n", sorted.Len(), output)
				return nil
			}

			printCatalog(cmd.OutOrStdout(), sorted, keys, plain)
			return nil
		},
	}

	cmd.Flags().BoolVar(&descending, "desc", false, "Sort in descending order")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the sorted catalog to a CSV file")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print one title per line")
	return cmd
}

func newConvertCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert <src> <dst>",
		Short: "Convert a catalog CSV between the legacy and current formats",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := parseFormat(from)
			if err != nil {
				return err
			}
			dst, err := parseFormat(to)
			if err != nil {
				return err
			}

			catalog, err := model.ImportCSV(args[0], src)
			if err != nil {
				return err
			}
			if err := catalog.ExportCSV(args[1], dst); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Converted %d songs from %s to %s\n", catalog.Len(), src, dst)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "legacy", "Source format: legacy or current")
	cmd.Flags().StringVar(&to, "to", "current", "Target format: legacy or current")
	return cmd
}

func parseFormat(s string) (model.Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "legacy":
		return model.FormatLegacy, nil
	case "current", "":
		return model.FormatCurrent, nil
	default:
		return model.FormatCurrent, fmt.Errorf("%w: unknown catalog format %q", model.ErrInvalidArgument, s)
	}
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var style string

	cmd := &cobra.Command{
		Use:   "show <title>",
		Short: "Render the song sheet of a song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := ctx.catalog(cmd.Context())
			if err != nil {
				return err
			}
			song := catalog.Find(args[0])
			if song == nil {
				return fmt.Errorf("song %q not found in %s", args[0], catalog.Name)
			}
			keys, err := ctx.keys()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !isTerminal(out) {
				_, err := io.WriteString(out, render.Markdown(song, keys))
				return err
			}

			r, err := render.NewRenderer(render.Options{Style: style, Keys: keys})
			if err != nil {
				return err
			}
			sheet, err := r.Render(song)
			if err != nil {
				return err
			}
			_, err = io.WriteString(out, sheet)
			return err
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "Glamour style (dark, light, notty); detected by default")
	return cmd
}

func printCatalog(w io.Writer, catalog *model.SongCatalog, keys *sortkey.Builder, plain bool) {
	if plain {
		for _, title := range catalog.Titles() {
			fmt.Fprintln(w, title)
		}
		return
	}

	rows := make([][]string, 0, catalog.Len())
	for i, song := range catalog.Songs {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			song.Title,
			strings.Join(song.SortKey(keys), " "),
			song.OriginalKey,
			song.AlternativeTitleString(),
		})
	}

	fmt.Fprintln(w, renderTable(
		[]column{{title: "#", right: true}, {title: "Title"}, {title: "Pinyin"}, {title: "Key"}, {title: "Also known as"}},
		rows,
	))
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
