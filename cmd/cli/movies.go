package main

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"moviehub/internal/catalog"
	"moviehub/internal/movies"
	"moviehub/pkg/models"
)

func newMoviesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "movies", Short: "List and inspect catalog movies"}

	var page int
	list := &cobra.Command{
		Use:   "list",
		Short: "Show one page of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := movies.Pager{Page: page, Max: a.maxPage}.Clamp()
			res, err := a.cat.ListMovies(cmd.Context(), p.Page)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Page %d of %d\n", p.Page, p.Max)
			printCards(a.out, toCards(res.Movies, a.favStore(cmd).Snapshot()))
			return nil
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number (clamped to 1..max-page)")

	var asJSON bool
	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show a movie's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := models.MovieID(strings.TrimSpace(args[0]))
			m, err := a.cat.Movie(cmd.Context(), id)
			if errors.Is(err, catalog.ErrNotFound) {
				return fmt.Errorf("movie %s not found", id)
			}
			if err != nil {
				return fmt.Errorf("failed to load movie details: %w", err)
			}
			card := models.NewDetailCard(*m, a.favStore(cmd).Contains(m.ID))
			if asJSON {
				return printJSON(a.out, card)
			}
			printDetail(a.out, card)
			return nil
		},
	}
	show.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	browse := &cobra.Command{
		Use:   "browse",
		Short: "Page through the catalog (n = next, p = prev, f ID = toggle favorite, q = quit)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return browseLoop(cmd, a)
		},
	}

	cmd.AddCommand(list, show, browse)
	return cmd
}

func browseLoop(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()
	favs := a.favStore(cmd)
	listing := movies.NewListing(a.cat.ListMovies, a.maxPage)

	render := func() {
		p := listing.Pager()
		fmt.Fprintf(a.out, "\nPage %d of %d", p.Page, p.Max)
		if !p.HasPrev() {
			fmt.Fprint(a.out, "  (first)")
		}
		if !p.HasNext() {
			fmt.Fprint(a.out, "  (last)")
		}
		fmt.Fprintln(a.out)
		printCards(a.out, toCards(listing.Movies(), favs.Snapshot()))
	}

	if err := listing.Load(ctx); err != nil {
		a.log.Error().Err(err).Msg("load page")
	}
	render()

	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		var (
			changed bool
			err     error
		)
		switch fields[0] {
		case "n", "next":
			changed, err = listing.Next(ctx)
		case "p", "prev":
			changed, err = listing.Prev(ctx)
		case "g", "goto":
			if len(fields) < 2 {
				continue
			}
			n, convErr := strconv.Atoi(fields[1])
			if convErr != nil {
				fmt.Fprintln(a.out, "usage: g PAGE")
				continue
			}
			for listing.Pager().Page < n && listing.Pager().HasNext() && err == nil {
				changed, err = listing.Next(ctx)
			}
			for listing.Pager().Page > n && listing.Pager().HasPrev() && err == nil {
				changed, err = listing.Prev(ctx)
			}
		case "f", "fav":
			if len(fields) < 2 {
				continue
			}
			_, on := favs.Toggle(ctx, models.MovieID(fields[1]))
			fmt.Fprintf(a.out, "favorite %s: %t\n", fields[1], on)
			changed = true
		case "q", "quit":
			return nil
		default:
			fmt.Fprintln(a.out, "commands: n, p, g PAGE, f ID, q")
			continue
		}

		if err != nil {
			a.log.Error().Err(err).Msg("load page")
		}
		if changed {
			render()
		}
	}
	return sc.Err()
}

func newGenresCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "genres", Short: "Browse by genre"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List genres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gs, err := a.cat.Genres(cmd.Context())
			if err != nil {
				a.log.Warn().Err(err).Msg("list genres")
				gs = []models.Genre{}
			}
			for _, g := range gs {
				fmt.Fprintf(a.out, "%-4s %s\n", g.ID, g.Name)
			}
			return nil
		},
	}

	var page int
	byGenre := &cobra.Command{
		Use:   "movies GENRE_ID",
		Short: "List one page of a genre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.cat.GenreMovies(cmd.Context(), args[0], max(page, 1))
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Page %d of %d\n", max(page, 1), max(int(res.Metadata.PageCount), 1))
			printCards(a.out, toCards(res.Movies, a.favStore(cmd).Snapshot()))
			return nil
		},
	}
	byGenre.Flags().IntVar(&page, "page", 1, "page number")

	cmd.AddCommand(list, byGenre)
	return cmd
}
