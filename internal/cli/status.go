package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check backend connectivity and session state",
	Long: `Ping the FRA backend and report whether a session is stored locally.
Useful for telling connectivity problems apart from credential problems
before running map or export.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()

		if err := a.client.Health(cmd.Context()); err != nil {
			fmt.Printf("Backend:  unreachable (%s): %v\n", a.cfg.API.BaseURL, err)
		} else {
			fmt.Printf("Backend:  ok (%s)\n", a.cfg.API.BaseURL)
		}

		if user := a.store.User(); a.store.IsAuthenticated() && user != nil {
			fmt.Printf("Session:  logged in as %s (%s)\n", user.Username, user.Role)
		} else {
			fmt.Println("Session:  not logged in")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
