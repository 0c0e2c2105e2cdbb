package main

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"moviehub/internal/catalog"
	"moviehub/internal/logger"
	"moviehub/internal/mirror"
)

func main() {
	var (
		addr     string
		dataPath string
	)

	cmd := &cobra.Command{
		Use:   "catalog-mirror",
		Short: "Serve a local copy of the movie catalog API",
		Long: "Serves the embedded sample catalog (or --data FILE) under " + mirror.Prefix +
			".\nPoint MOVIEHUB_CATALOG_URL at http://ADDR" + mirror.Prefix + " to use it.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger.New("catalog-mirror", "info")

			ds, err := mirror.LoadFile(dataPath)
			if err != nil {
				return err
			}

			log.Info().
				Str("addr", addr).
				Int("movies", len(ds.Movies)).
				Int("genres", len(ds.Genres)).
				Msg("catalog mirror listening")
			err = http.ListenAndServe(addr, mirror.New(ds, false))
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":9000", "listen address")
	cmd.Flags().StringVar(&dataPath, "data", "", "dataset JSON ({\"genres\":[...],\"movies\":[...]}); empty uses the built-in sample")

	cmd.AddCommand(newSnapshotCmd())
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newSnapshotCmd() *cobra.Command {
	var (
		from    string
		outPath string
		pages   int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Copy a live catalog into a dataset file for the mirror",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger.New("catalog-mirror", "info")
			src := catalog.New(catalog.Options{BaseURL: from, Timeout: timeout})

			ds, err := mirror.Snapshot(cmd.Context(), src, pages, log)
			if err != nil {
				return err
			}
			if err := ds.WriteFile(outPath); err != nil {
				return err
			}
			log.Info().Str("out", outPath).Int("movies", len(ds.Movies)).Msg("dataset written")
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", catalog.DefaultBaseURL, "catalog API base URL")
	cmd.Flags().StringVar(&outPath, "out", "data/mirror.json", "output dataset path")
	cmd.Flags().IntVar(&pages, "pages", 3, "how many list pages to copy")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request timeout")
	return cmd
}
