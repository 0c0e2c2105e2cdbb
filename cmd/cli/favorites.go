package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"moviehub/pkg/models"
)

func newFavoritesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "favorites", Aliases: []string{"fav"}, Short: "Manage favorite movies"}

	var expand bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List favorite ids (or full cards with --expand)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set := a.favStore(cmd).Snapshot()
			if !expand {
				for _, id := range set.IDs() {
					fmt.Fprintln(a.out, id)
				}
				return nil
			}
			cards := make([]models.Card, 0, set.Len())
			for _, id := range set.IDs() {
				m, err := a.cat.Movie(cmd.Context(), id)
				if err != nil {
					a.log.Warn().Err(err).Str("movie_id", id.String()).Msg("favorite lookup skipped")
					continue
				}
				cards = append(cards, models.NewCard(*m, true))
			}
			printCards(a.out, cards)
			return nil
		},
	}
	list.Flags().BoolVar(&expand, "expand", false, "fetch each movie from the catalog")

	toggle := &cobra.Command{
		Use:   "toggle ID",
		Short: "Add or remove a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := models.MovieID(strings.TrimSpace(args[0]))
			if id == "" {
				return fmt.Errorf("movie id required")
			}
			set, on := a.favStore(cmd).Toggle(cmd.Context(), id)
			fmt.Fprintf(a.out, "%s favorite: %t (%d total)\n", id, on, set.Len())
			return nil
		},
	}

	check := &cobra.Command{
		Use:   "check ID",
		Short: "Report whether a movie is a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.out, a.favStore(cmd).Contains(models.MovieID(args[0])))
			return nil
		},
	}

	var outPath string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write favorites to CSV (id, title, year, imdb_rating, genres)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set := a.favStore(cmd).Snapshot()
			rows := make([]models.Movie, 0, set.Len())
			for _, id := range set.IDs() {
				m, err := a.cat.Movie(cmd.Context(), id)
				if err != nil {
					// keep the id so the export is still a complete list
					a.log.Warn().Err(err).Str("movie_id", id.String()).Msg("export without details")
					rows = append(rows, models.Movie{ID: id})
					continue
				}
				rows = append(rows, *m)
			}

			if outPath == "" || outPath == "-" {
				return writeFavoritesCSV(a.out, rows)
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := writeFavoritesCSV(f, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d favorites to %s\n", len(rows), outPath)
			return nil
		},
	}
	export.Flags().StringVarP(&outPath, "out", "o", "", "output CSV path (default stdout)")

	cmd.AddCommand(list, toggle, check, export)
	return cmd
}

func writeFavoritesCSV(w io.Writer, rows []models.Movie) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "title", "year", "imdb_rating", "genres"}); err != nil {
		return err
	}
	for _, m := range rows {
		rec := []string{
			m.ID.String(),
			m.Title,
			m.Year.String(),
			m.IMDBRating.String(),
			strings.Join(m.Genres, "|"),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
