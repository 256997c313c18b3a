package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

// ErrDriftFound signals that audit mode detected drift; main maps it to a
// distinct exit code so CI can gate on it.
var ErrDriftFound = errors.New("drift detected")

var (
	cfgFile  string
	repoFlag string
	teamFile string
	quiet    bool
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "addteam",
	Short: "Collaborator management for GitHub repos",
	Long: `addteam reconciles a repo's collaborators against a declared team
config. It reads role groups, explicit entries, and GitHub teams from
team.yaml (or a plain collaborators.txt), compares them with the actual
collaborator and invitation state, and closes the gap: inviting missing
users, fixing permission drift, and optionally removing unlisted or
expired access.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".addteam.yml", "settings file path")
	rootCmd.PersistentFlags().StringVarP(&repoFlag, "repo", "r", "", "target repo as owner/repo (default: origin remote)")
	rootCmd.PersistentFlags().StringVarP(&teamFile, "file", "f", "", "team config file (default: team.yaml, falls back to collaborators.txt)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
