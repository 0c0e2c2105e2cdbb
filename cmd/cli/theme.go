package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"moviehub/internal/settings"
)

func newThemeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "theme", Short: "Dark mode preference"}

	show := func(on bool) {
		if on {
			fmt.Fprintln(a.out, "dark")
		} else {
			fmt.Fprintln(a.out, "light")
		}
	}

	get := &cobra.Command{
		Use:  "get",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			show(settings.DarkMode(cmd.Context(), a.kv, settings.DefaultDarkModeKey))
			return nil
		},
	}

	set := &cobra.Command{
		Use:       "set dark|light",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"dark", "light"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var on bool
			switch args[0] {
			case "dark":
				on = true
			case "light":
				on = false
			default:
				b, err := strconv.ParseBool(args[0])
				if err != nil {
					return fmt.Errorf("want dark or light, got %q", args[0])
				}
				on = b
			}
			if err := settings.SetDarkMode(cmd.Context(), a.kv, settings.DefaultDarkModeKey, on); err != nil {
				return err
			}
			show(on)
			return nil
		},
	}

	toggle := &cobra.Command{
		Use:  "toggle",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			on := !settings.DarkMode(cmd.Context(), a.kv, settings.DefaultDarkModeKey)
			if err := settings.SetDarkMode(cmd.Context(), a.kv, settings.DefaultDarkModeKey, on); err != nil {
				return err
			}
			show(on)
			return nil
		},
	}

	cmd.AddCommand(get, set, toggle)
	return cmd
}
