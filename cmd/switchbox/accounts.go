package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/switchbox-dev/switchbox/internal/accounts"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		// Seed the store from the tool's own auth file on first run.
		if imported, err := store.ImportDefault(); err == nil && imported {
			fmt.Println(green("imported current login as 'default'"))
		}

		result, err := store.Scan()
		if err != nil {
			return err
		}
		if len(result.Accounts) == 0 {
			fmt.Printf("no accounts in %s, add one with %s\n", result.Dir, cyan("switchbox add"))
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "  NAME\tEMAIL\tPLAN\tUPDATED")
		for _, a := range result.Accounts {
			marker := " "
			name := a.Name
			if a.Active {
				marker = green("*")
				name = green(a.Name)
			}
			updated := time.UnixMilli(a.UpdatedAt).Format("2006-01-02 15:04")
			fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\n", marker, name, a.Email, a.PlanType, updated)
		}
		return w.Flush()
	},
}

var useCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Switch the active account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		path, err := resolveProfile(store, args[0])
		if err != nil {
			return err
		}
		if err := store.Switch(path); err != nil {
			return err
		}
		fmt.Println(green("switched to"), args[0])
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add [name] [auth-file]",
	Short: "Store an auth file as a named account",
	Long: `Store an auth file as a named account.

Reads the auth file argument, or stdin when omitted. With no name the
account is named after the email inside the token.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name string
		if len(args) > 0 {
			name = args[0]
		}

		var content []byte
		var err error
		if len(args) > 1 {
			content, err = os.ReadFile(args[1])
		} else {
			content, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		path, err := store.Add(name, content)
		if err != nil {
			return err
		}
		fmt.Println(green("added"), path)
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		path, err := resolveProfile(store, args[0])
		if err != nil {
			return err
		}
		if _, err := store.Rename(path, args[1]); err != nil {
			return err
		}
		fmt.Printf("%s %s -> %s\n", green("renamed"), args[0], args[1])
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		path, err := resolveProfile(store, args[0])
		if err != nil {
			return err
		}
		if err := store.Delete(path); err != nil {
			return err
		}
		fmt.Println(green("deleted"), args[0])
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print an account's auth file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		path, err := resolveProfile(store, args[0])
		if err != nil {
			return err
		}
		content, err := store.Read(path)
		if err != nil {
			return err
		}
		fmt.Println(content)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the current login as the 'default' account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		imported, err := store.ImportDefault()
		if err != nil {
			return err
		}
		if !imported {
			fmt.Println("nothing to import")
			return nil
		}
		fmt.Println(green("imported current login as 'default'"))
		return nil
	},
}

var dirCmd = &cobra.Command{
	Use:   "dir [path]",
	Short: "Show or change the accounts directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			dir, err := cfg.ResolveAccountsDir()
			if err != nil {
				return err
			}
			fmt.Println(dir)
			return nil
		}

		oldDir, err := cfg.ResolveAccountsDir()
		if err != nil {
			return err
		}
		cfg.AccountsDir = args[0]
		newDir, err := cfg.ResolveAccountsDir()
		if err != nil {
			return err
		}
		if err := cfg.Save(cfgPath); err != nil {
			return err
		}

		// Existing profiles follow the setting so a move is not a data loss.
		copied, err := accounts.CopyProfiles(oldDir, newDir)
		if err != nil {
			return fmt.Errorf("accounts dir changed but profile copy failed: %w", err)
		}
		fmt.Printf("%s %s (%d profiles copied)\n", green("accounts dir set to"), newDir, copied)
		return nil
	},
}
