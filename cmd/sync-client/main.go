package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"moviehub/internal/logger"
)

type AnyEvent map[string]any

func main() {
	var (
		addr   string
		pretty bool
		types  []string
		retry  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "sync-client",
		Short: "Tail favorite and theme events from the TCP sync server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger.NewConsole("sync-client", "info")
			for {
				if err := run(addr, pretty, types, cmd.OutOrStdout(), log); err != nil {
					log.Warn().Err(err).Msg("disconnected")
				}
				time.Sleep(retry) // auto reconnect
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:7070", "TCP sync server address")
	cmd.Flags().BoolVar(&pretty, "pretty", true, "pretty print JSON events")
	cmd.Flags().StringSliceVar(&types, "type", nil, "only show these event types (favorite.added, favorite.removed, settings.theme)")
	cmd.Flags().DurationVar(&retry, "retry", time.Second, "delay before reconnecting")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(addr string, pretty bool, types []string, out io.Writer, log zerolog.Logger) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	log.Info().Str("addr", addr).Msg("connected")
	return tail(conn, pretty, types, out)
}

// tail copies events from r to out until r ends.
func tail(r io.Reader, pretty bool, types []string, out io.Writer) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Bytes()

		var obj AnyEvent
		if err := json.Unmarshal(line, &obj); err != nil {
			// not JSON? print raw
			fmt.Fprintln(out, string(line))
			continue
		}
		if !wanted(obj, types) {
			continue
		}
		if !pretty {
			fmt.Fprintln(out, string(line))
			continue
		}

		b, _ := json.MarshalIndent(obj, "", "  ")
		fmt.Fprintln(out, string(b))
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return io.EOF
}

func wanted(ev AnyEvent, types []string) bool {
	if len(types) == 0 {
		return true
	}
	t, _ := ev["type"].(string)
	for _, want := range types {
		if strings.EqualFold(strings.TrimSpace(want), t) {
			return true
		}
	}
	return false
}
