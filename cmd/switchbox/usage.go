package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/switchbox-dev/switchbox/internal/accounts"
	"github.com/switchbox-dev/switchbox/internal/authapi"
	"github.com/switchbox-dev/switchbox/internal/config"
)

// profileOrActive returns the auth file path for name, or the active auth
// file when name is empty.
func profileOrActive(name string) (string, error) {
	if name == "" {
		return config.ActiveAuthPath()
	}
	store, err := openStore()
	if err != nil {
		return "", err
	}
	return resolveProfile(store, name)
}

var usageCmd = &cobra.Command{
	Use:   "usage [name]",
	Short: "Show quota usage for an account (active account when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name string
		if len(args) > 0 {
			name = args[0]
		}
		path, err := profileOrActive(name)
		if err != nil {
			return err
		}
		auth, err := accounts.LoadAuthFile(path)
		if err != nil {
			return err
		}

		usage, err := authapi.NewClient().FetchUsage(cmd.Context(), auth)
		if err != nil {
			return err
		}

		if usage.PlanType != "" {
			fmt.Println("plan:", cyan(usage.PlanType))
		}
		printWindow("primary", usage.PrimaryWindow)
		printWindow("secondary", usage.SecondaryWindow)
		if usage.PrimaryWindow == nil && usage.SecondaryWindow == nil {
			fmt.Println("no rate limit windows reported")
		}
		return nil
	},
}

func printWindow(label string, w *authapi.RateLimitWindow) {
	if w == nil {
		return
	}
	line := fmt.Sprintf("%s: %s used", label, percent(w.UsedPercent))
	if w.WindowMinutes != nil {
		line += fmt.Sprintf(" of a %s window", formatWindow(*w.WindowMinutes))
	}
	if w.ResetsAt != nil {
		line += ", resets " + time.Unix(*w.ResetsAt, 0).Local().Format("2006-01-02 15:04")
	}
	fmt.Println(line)
}

func percent(v float64) string {
	s := fmt.Sprintf("%.1f%%", v)
	switch {
	case v >= 90:
		return red(s)
	case v >= 70:
		return yellow(s)
	default:
		return green(s)
	}
}

func formatWindow(minutes int64) string {
	switch {
	case minutes%(24*60) == 0:
		return fmt.Sprintf("%dd", minutes/(24*60))
	case minutes%60 == 0:
		return fmt.Sprintf("%dh", minutes/60)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

var refreshCmd = &cobra.Command{
	Use:   "refresh [name]",
	Short: "Refresh an account's tokens (active account when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name string
		if len(args) > 0 {
			name = args[0]
		}
		path, err := profileOrActive(name)
		if err != nil {
			return err
		}

		auth, err := authapi.NewClient().RefreshFile(cmd.Context(), path)
		if err != nil {
			return err
		}
		fmt.Println(green("tokens refreshed"), "(last_refresh", auth.LastRefresh+")")
		return nil
	},
}
