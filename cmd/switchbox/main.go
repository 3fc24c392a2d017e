package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/switchbox-dev/switchbox/internal/accounts"
	"github.com/switchbox-dev/switchbox/internal/config"
	"github.com/switchbox-dev/switchbox/internal/utils"
	"github.com/switchbox-dev/switchbox/internal/version"
)

var (
	red    = color.New(color.FgHiRed, color.Bold).SprintFunc()
	green  = color.New(color.FgHiGreen).SprintFunc()
	cyan   = color.New(color.FgHiCyan).SprintFunc()
	yellow = color.New(color.FgHiYellow).SprintFunc()
)

// Loaded once by loadConfig, shared by every subcommand.
var (
	cfg     *config.Config
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:           "switchbox",
	Short:         "Manage codex CLI accounts and mirror them to a WebDAV server",
	Version:       version.Detailed(),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default ~/.switchbox/config.json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		listCmd,
		useCmd,
		addCmd,
		renameCmd,
		rmCmd,
		showCmd,
		importCmd,
		dirCmd,
		usageCmd,
		refreshCmd,
		syncCmd,
		assetsCmd,
		promptsCmd,
		skillsCmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, red("error:"), err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:   level,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	})))

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg, cfgPath = loaded, path

	viper.SetEnvPrefix("SWITCHBOX")
	viper.AutomaticEnv()
	applyEnvOverrides()

	slog.Debug("config loaded",
		"path", cfgPath,
		"webdav_url", cfg.WebDAV.BaseURL,
		"webdav_user", cfg.WebDAV.Username,
		"webdav_password", utils.MaskSecret(cfg.WebDAV.Password))
	return nil
}

// Environment variables override the config file, so WebDAV credentials can
// stay out of it.
func applyEnvOverrides() {
	if v := viper.GetString("webdav_url"); v != "" {
		cfg.WebDAV.BaseURL = v
	}
	if v := viper.GetString("webdav_username"); v != "" {
		cfg.WebDAV.Username = v
	}
	if v := viper.GetString("webdav_password"); v != "" {
		cfg.WebDAV.Password = v
	}
	if v := viper.GetString("webdav_remote_path"); v != "" {
		cfg.WebDAV.RemotePath = v
	}
	if v := viper.GetString("accounts_dir"); v != "" {
		cfg.AccountsDir = v
	}
}

func openStore() (*accounts.Store, error) {
	dir, err := cfg.ResolveAccountsDir()
	if err != nil {
		return nil, err
	}
	activePath, err := config.ActiveAuthPath()
	if err != nil {
		return nil, err
	}
	return accounts.NewStore(dir, activePath), nil
}

// resolveProfile maps a profile name to its file path, erroring when no such
// profile exists.
func resolveProfile(store *accounts.Store, name string) (string, error) {
	result, err := store.Scan()
	if err != nil {
		return "", err
	}
	for _, a := range result.Accounts {
		if a.Name == name {
			return a.Path, nil
		}
	}
	return "", fmt.Errorf("no account named %q, run %s to see what exists", name, cyan("switchbox list"))
}

func requireWebDAV() error {
	if cfg.WebDAV.BaseURL == "" {
		return errors.New("no WebDAV server configured, set webdav.url in " + cfgPath)
	}
	return nil
}
