package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const starterTeamConfig = `# Team config for addteam.
#
# Role groups map their label to a permission:
#   admins -> admin, maintainers -> maintain, developers/contributors -> push,
#   reviewers/readers -> pull, triagers -> triage.
# Unknown labels fall back to default_permission. Later entries override
# earlier ones when they name the same user.

default_permission: push

# admins:
#   - alice
# developers:
#   - bob
#   - charlie

# collaborators:
#   - username: contractor
#     permission: push
#     expires: 2026-12-31

# teams:
#   - my-org/backend-team
#   - my-org/frontend-team: pull

# welcome_issue: true
# welcome_message: "Custom welcome message"
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter team.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := teamFile
		if path == "" {
			path = "team.yaml"
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := os.WriteFile(path, []byte(starterTeamConfig), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("Wrote %s. Edit it and run `addteam audit`.\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
