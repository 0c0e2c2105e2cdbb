package main

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"moviehub/internal/search"
	"moviehub/pkg/models"
)

func newSearchCmd(a *app) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "search [QUERY]",
		Short: "Search movies by title",
		Long: "With QUERY, runs one search. With --interactive, every stdin line is\n" +
			"the current contents of the search box and searches are debounced.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return interactiveSearch(cmd, a)
			}
			q := strings.Join(args, " ")
			if strings.TrimSpace(q) == "" {
				printCards(a.out, nil)
				return nil
			}
			res, err := a.cat.Search(cmd.Context(), q)
			if err != nil {
				a.log.Debug().Err(err).Msg("search")
				res = nil
			}
			printCards(a.out, toCards(res, a.favStore(cmd).Snapshot()))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "read keystroke states from stdin")
	return cmd
}

func interactiveSearch(cmd *cobra.Command, a *app) error {
	favs := a.favStore(cmd).Snapshot()

	sess := search.NewSession(a.cat, search.Options{
		Quiet: a.quiet,
		Log:   a.log,
		OnChange: func(s search.Snapshot) {
			switch s.Phase {
			case search.PhaseResults:
				fmt.Fprintf(a.out, "results for %q:\n", s.Text)
				printCards(a.out, toCards(s.Results, favs))
			case search.PhaseIdle:
				if strings.TrimSpace(s.Text) == "" {
					fmt.Fprintln(a.out, "(cleared)")
				} else {
					printCards(a.out, []models.Card{})
				}
			}
		},
	})
	defer sess.Close()

	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		sess.Input(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return err
	}

	// let the last keystroke's search finish before exiting
	for {
		s := sess.Snapshot()
		if s.Phase != search.PhasePending && s.Phase != search.PhaseInFlight {
			return nil
		}
		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
}
