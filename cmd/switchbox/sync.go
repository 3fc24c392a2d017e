package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/switchbox-dev/switchbox/internal/sync"
	"github.com/switchbox-dev/switchbox/internal/webdav"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror accounts to or from the WebDAV server",
}

func init() {
	syncCmd.AddCommand(syncUpCmd, syncDownCmd, syncTestCmd)
}

func newSyncer() *sync.Syncer {
	return sync.New(webdav.NewClient())
}

var syncUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Upload all local accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireWebDAV(); err != nil {
			return err
		}
		dir, err := cfg.ResolveAccountsDir()
		if err != nil {
			return err
		}
		outcome, err := newSyncer().UploadAccounts(cmd.Context(), cfg.WebDAV, dir)
		if err != nil {
			return err
		}
		return reportOutcome(outcome)
	},
}

var syncDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Download accounts from the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireWebDAV(); err != nil {
			return err
		}
		dir, err := cfg.ResolveAccountsDir()
		if err != nil {
			return err
		}
		outcome, err := newSyncer().DownloadAccounts(cmd.Context(), cfg.WebDAV, dir)
		if err != nil {
			return err
		}
		return reportOutcome(outcome)
	},
}

var syncTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Check the WebDAV connection and credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireWebDAV(); err != nil {
			return err
		}
		msg, err := newSyncer().TestConnection(cmd.Context(), cfg.WebDAV)
		if err != nil {
			return err
		}
		fmt.Println(green("ok:"), msg)
		return nil
	},
}

// reportOutcome prints the run summary and returns an error when any item
// failed, so partial failures still exit nonzero.
func reportOutcome(o *sync.Outcome) error {
	for _, item := range o.Uploaded {
		fmt.Println(green("uploaded"), item)
	}
	for _, item := range o.Downloaded {
		fmt.Println(green("downloaded"), item)
	}
	for _, e := range o.Errors {
		fmt.Println(red("failed"), e.Item+":", e.Message)
	}
	fmt.Printf("%d uploaded, %d downloaded, %d failed\n",
		len(o.Uploaded), len(o.Downloaded), len(o.Errors))

	if !o.OK() {
		return fmt.Errorf("%d items failed", len(o.Errors))
	}
	return nil
}
