package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/himanishpuri/ChordsOfSongs/internal/catalog"
	"github.com/himanishpuri/ChordsOfSongs/pkg/chords"
	"github.com/himanishpuri/ChordsOfSongs/pkg/models"
	"github.com/himanishpuri/ChordsOfSongs/pkg/songbook"
	"github.com/himanishpuri/ChordsOfSongs/pkg/utils"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <songs.json>",
		Short: "add or update the songs of a JSON data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(func(svc songbook.Service) error {
				res, err := svc.ImportFile(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported %s: %d new, %d updated\n", args[0], res.Created, res.Updated)
				for _, msg := range res.Skipped {
					fmt.Fprintf(out, "   skipped: %s\n", msg)
				}
				return nil
			})
		},
	}
}

func newListCmd() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "list songs, optionally narrowed by a filter",
		Long: "list songs, optionally narrowed by a filter\n\nfilters: " +
			joinFilters(catalog.Filters()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(func(svc songbook.Service) error {
				songs, err := svc.ListSongs(cmd.Context(), filter)
				if err != nil {
					return err
				}
				printSongs(cmd, songs)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "alphabetical, fast-english, slow-english, fast-hindi or slow-hindi")
	return cmd
}

func newSearchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "search titles and artists",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(func(svc songbook.Service) error {
				songs, err := svc.Search(cmd.Context(), strings.Join(args, " "), limit)
				if err != nil {
					return err
				}
				printSongs(cmd, songs)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", catalog.HeaderSearchLimit, "maximum number of results")
	return cmd
}

func newShowCmd() *cobra.Command {
	var key string
	var columns int
	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "print a song with its chords, optionally transposed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkColumns(columns); err != nil {
				return err
			}
			return withService(func(svc songbook.Service) error {
				view, err := svc.ViewSong(cmd.Context(), args[0], key, columns)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, view.Heading)
				fmt.Fprintf(out, "Key: %s", view.Sheet.Key)
				if view.Sheet.Interval != 0 {
					fmt.Fprintf(out, " (written in %s, %+d)", view.Sheet.SourceKey, view.Sheet.Interval)
				}
				fmt.Fprint(out, "\n\n", view.Sheet.String())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "key to play in (default: the song's key)")
	cmd.Flags().IntVar(&columns, "columns", 1, "1 or 2 columns")
	return cmd
}

func newPDFCmd() *cobra.Command {
	var key, outPath string
	var columns int
	cmd := &cobra.Command{
		Use:   "pdf <slug>",
		Short: "write a printable chord sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkColumns(columns); err != nil {
				return err
			}
			if outPath == "" {
				outPath = args[0] + ".pdf"
			}
			return withService(func(svc songbook.Service) error {
				var buf bytes.Buffer
				if err := svc.WritePDF(cmd.Context(), &buf, args[0], key, columns); err != nil {
					return err
				}
				return writeOutput(cmd, outPath, buf.Bytes())
			})
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "key to print in (default: the song's key)")
	cmd.Flags().IntVar(&columns, "columns", 2, "1 or 2 columns")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: <slug>.pdf)")
	return cmd
}

func newMIDICmd() *cobra.Command {
	var key, outPath string
	cmd := &cobra.Command{
		Use:   "midi <slug>",
		Short: "write a MIDI file sounding each chord's root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				outPath = args[0] + ".mid"
			}
			return withService(func(svc songbook.Service) error {
				var buf bytes.Buffer
				if err := svc.WriteMIDI(cmd.Context(), &buf, args[0], key); err != nil {
					return err
				}
				return writeOutput(cmd, outPath, buf.Bytes())
			})
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "key to play in (default: the song's key)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: <slug>.mid)")
	return cmd
}

func newKeysCmd() *cobra.Command {
	var current string
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "list the selectable keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var names []string
			for _, k := range chords.KeyOptions(current) {
				if k.Active {
					names = append(names, "["+k.Name+"]")
				} else {
					names = append(names, k.Name)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, " "))
			return nil
		},
	}
	cmd.Flags().StringVar(&current, "current", "", "key to mark as active")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slug>",
		Short: "remove a song from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(func(svc songbook.Service) error {
				song, err := svc.GetSong(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if err := svc.DeleteSong(cmd.Context(), song.Slug); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q by %s (%s)\n", song.Title, song.Artist, song.Slug)
				return nil
			})
		},
	}
}

func printSongs(cmd *cobra.Command, songs []models.Song) {
	out := cmd.OutOrStdout()
	if len(songs) == 0 {
		fmt.Fprintln(out, "No songs found")
		return
	}
	for i, song := range songs {
		fmt.Fprintf(out, "%d. %q by %s [%s]\n", i+1, song.Title, song.Artist, song.Slug)
		fmt.Fprintf(out, "   key %s", song.Key)
		if song.Language != "" || song.Speed != "" {
			fmt.Fprintf(out, ", %s %s", song.Speed, song.Language)
		}
		fmt.Fprintf(out, ", added %s\n", humanize.Time(song.CreatedAt))
	}
}

func checkColumns(columns int) error {
	if columns < 1 || columns > 2 {
		return fmt.Errorf("columns must be 1 or 2, got %d", columns)
	}
	return nil
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if err := utils.EnsureParentDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", path, humanize.Bytes(uint64(len(data))))
	return nil
}

func joinFilters(fs []catalog.Filter) string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
