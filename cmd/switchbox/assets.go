package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/switchbox-dev/switchbox/internal/assets"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Mirror prompts, skills and agent instructions to or from the WebDAV server",
}

func init() {
	assetsCmd.AddCommand(assetsUpCmd, assetsDownCmd)
	promptsCmd.AddCommand(promptsListCmd)
	skillsCmd.AddCommand(skillsListCmd)
}

var assetsUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Upload the local asset tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireWebDAV(); err != nil {
			return err
		}
		layout, err := assets.DefaultLayout()
		if err != nil {
			return err
		}
		outcome, err := newSyncer().UploadAssets(cmd.Context(), cfg.WebDAV, layout.SyncPaths(), cfg.Sync)
		if err != nil {
			return err
		}
		return reportOutcome(outcome)
	},
}

var assetsDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Download assets from the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireWebDAV(); err != nil {
			return err
		}
		layout, err := assets.DefaultLayout()
		if err != nil {
			return err
		}
		outcome, err := newSyncer().DownloadAssets(cmd.Context(), cfg.WebDAV, layout.SyncPaths(), cfg.Sync)
		if err != nil {
			return err
		}
		return reportOutcome(outcome)
	},
}

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Inspect local prompt files",
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List prompts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := assets.DefaultLayout()
		if err != nil {
			return err
		}
		prompts, err := layout.ScanPrompts()
		if err != nil {
			return err
		}
		if len(prompts) == 0 {
			fmt.Println("no prompts in", layout.PromptsDir())
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tDESCRIPTION")
		for _, p := range prompts {
			fmt.Fprintf(w, "%s\t%s\n", cyan(p.Name), p.Description)
		}
		return w.Flush()
	},
}

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Inspect local skill directories",
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := assets.DefaultLayout()
		if err != nil {
			return err
		}
		skills, err := layout.ScanSkills()
		if err != nil {
			return err
		}
		if len(skills) == 0 {
			fmt.Println("no skills in", layout.SkillsDir())
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tDESCRIPTION\tEXTRAS")
		for _, s := range skills {
			fmt.Fprintf(w, "%s\t%s\t%s\n", cyan(s.Name), s.Description, skillExtras(s))
		}
		return w.Flush()
	},
}

func skillExtras(s assets.Skill) string {
	extras := ""
	if s.HasScripts {
		extras += "scripts "
	}
	if s.HasAssets {
		extras += "assets "
	}
	if s.HasReferences {
		extras += "references"
	}
	return extras
}
