package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"moviehub/pkg/models"
)

// Source is a catalog a snapshot can be taken from.
type Source interface {
	ListMovies(ctx context.Context, page int) (models.MoviePage, error)
	Movie(ctx context.Context, id models.MovieID) (*models.Movie, error)
	Genres(ctx context.Context) ([]models.Genre, error)
}

// Snapshot copies up to maxPages list pages, the genres, and every listed
// movie's details from src. Movies are deduplicated by id and kept in list
// order. A failed detail lookup keeps the list entry; a failed page ends
// the crawl but keeps what was fetched.
func Snapshot(ctx context.Context, src Source, maxPages int, log zerolog.Logger) (Dataset, error) {
	genres, err := src.Genres(ctx)
	if err != nil {
		return Dataset{}, fmt.Errorf("snapshot genres: %w", err)
	}

	ds := Dataset{Genres: genres, Movies: []models.Movie{}}
	seen := make(map[models.MovieID]bool)

	for page := 1; page <= maxPages; page++ {
		res, err := src.ListMovies(ctx, page)
		if err != nil {
			if errors.Is(err, context.Canceled) || len(ds.Movies) == 0 {
				return Dataset{}, fmt.Errorf("snapshot page %d: %w", page, err)
			}
			log.Warn().Err(err).Int("page", page).Msg("stopping crawl")
			break
		}
		if len(res.Movies) == 0 {
			break
		}

		for _, m := range res.Movies {
			if m.ID == "" || seen[m.ID] {
				continue
			}
			seen[m.ID] = true

			full, err := src.Movie(ctx, m.ID)
			if err != nil {
				log.Warn().Err(err).Str("movie_id", m.ID.String()).Msg("detail lookup failed, keeping summary")
				ds.Movies = append(ds.Movies, m)
				continue
			}
			ds.Movies = append(ds.Movies, *full)
		}

		if last := int(res.Metadata.PageCount); last > 0 && page >= last {
			break
		}
	}

	log.Info().Int("movies", len(ds.Movies)).Int("genres", len(ds.Genres)).Msg("snapshot complete")
	return ds, nil
}

// WriteFile stores ds as indented JSON, creating parent directories.
func (ds Dataset) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return os.Rename(tmp, path)
}
