package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"moviehub/internal/favorites"
	"moviehub/pkg/models"
)

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// printCards writes one line per movie; favorites are starred.
func printCards(w io.Writer, cards []models.Card) {
	if len(cards) == 0 {
		fmt.Fprintln(w, "(no movies)")
		return
	}
	for _, c := range cards {
		star := " "
		if c.Favorite {
			star = "*"
		}
		line := fmt.Sprintf("%s %-6s %s", star, c.ID, c.Title)
		if c.Year != "" {
			line += fmt.Sprintf(" (%s)", c.Year)
		}
		if c.IMDBRating != "" {
			line += fmt.Sprintf("  imdb %s", c.IMDBRating)
		}
		if len(c.Genres) > 0 {
			line += "  [" + strings.Join(c.Genres, ", ") + "]"
		}
		fmt.Fprintln(w, line)
	}
}

func printDetail(w io.Writer, c models.Card) {
	fmt.Fprintf(w, "%s (%s)\n", c.Title, c.Year)
	fmt.Fprintf(w, "  id:       %s\n", c.ID)
	fmt.Fprintf(w, "  favorite: %t\n", c.Favorite)
	fmt.Fprintf(w, "  poster:   %s\n", c.Poster)
	if len(c.Genres) > 0 {
		fmt.Fprintf(w, "  genres:   %s\n", strings.Join(c.Genres, ", "))
	}
	if c.IMDBRating != "" {
		fmt.Fprintf(w, "  imdb:     %s\n", c.IMDBRating)
	}
	if c.Country != "" {
		fmt.Fprintf(w, "  country:  %s\n", c.Country)
	}
	if d := c.Detail; d != nil {
		for _, f := range [][2]string{
			{"director", d.Director},
			{"writer", d.Writer},
			{"actors", d.Actors},
			{"runtime", string(d.Runtime)},
			{"released", string(d.Released)},
			{"awards", d.Awards},
			{"plot", d.Plot},
		} {
			if f[1] != "" && f[1] != "N/A" {
				fmt.Fprintf(w, "  %-9s %s\n", f[0]+":", f[1])
			}
		}
	}
}

func toCards(list []models.Movie, set favorites.Set) []models.Card {
	out := make([]models.Card, 0, len(list))
	for _, m := range list {
		out = append(out, models.NewCard(m, set.Has(m.ID)))
	}
	return out
}
