package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"moviehub/internal/catalog"
	"moviehub/internal/favorites"
	"moviehub/internal/logger"
	"moviehub/internal/storage"
	"moviehub/pkg/utils"
)

const defaultAPIURL = "http://localhost:8080"

// app holds what every command needs; it is filled in before any command
// runs.
type app struct {
	apiURL     string
	tokenPath  string
	statePath  string
	catalogURL string
	timeout    time.Duration
	quiet      time.Duration
	maxPage    int
	logLevel   string

	log zerolog.Logger
	kv  storage.KV
	cat *catalog.Client
	out io.Writer
}

func (a *app) favStore(cmd *cobra.Command) *favorites.Store {
	return favorites.NewStore(cmd.Context(), a.kv, favorites.DefaultKey, a.log)
}

func newRootCmd() *cobra.Command {
	cfg, err := utils.Load()
	if err != nil {
		cfg = utils.Config{
			CatalogURL:  catalog.DefaultBaseURL,
			MaxPage:     25,
			SearchQuiet: 300 * time.Millisecond,
			StatePath:   filepath.Join(utils.DataDir(), "state.json"),
			LogLevel:    "info",
		}
	}

	a := &app{}
	root := &cobra.Command{
		Use:           "moviehub",
		Short:         "Browse the movie catalog, keep favorites and search from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.out = cmd.OutOrStdout()
			a.log = logger.NewConsole("cli", a.logLevel)
			a.kv = storage.NewFile(a.statePath)
			a.cat = catalog.New(catalog.Options{BaseURL: a.catalogURL, Timeout: a.timeout})
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.apiURL, "api", defaultAPIURL, "API server URL (auth commands)")
	pf.StringVar(&a.tokenPath, "token", defaultTokenPath(), "token file path")
	pf.StringVar(&a.statePath, "state", cfg.StatePath, "local state file (favorites, theme)")
	pf.StringVar(&a.catalogURL, "catalog", cfg.CatalogURL, "catalog API base URL")
	pf.DurationVar(&a.timeout, "timeout", cfg.CatalogTimeout, "catalog request timeout (0 = none)")
	pf.DurationVar(&a.quiet, "quiet", cfg.SearchQuiet, "search quiet interval")
	pf.IntVar(&a.maxPage, "max-page", cfg.MaxPage, "last browsable page")
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level")

	root.AddCommand(
		newMoviesCmd(a),
		newGenresCmd(a),
		newSearchCmd(a),
		newFavoritesCmd(a),
		newThemeCmd(a),
		newAuthCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
