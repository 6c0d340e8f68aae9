package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the initial account",
	Long: `Create the account named by seed_username/seed_password when the
database has no users yet. Running it again is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		created, err := services.AuthService.SeedDefaultUser(cmd.Context(), cfg.SeedUsername, cfg.SeedPassword)
		if err != nil {
			return err
		}

		if !created {
			fmt.Println("Users already exist, nothing to seed")
			return nil
		}

		log.Printf("Seeded initial user %q", cfg.SeedUsername)
		fmt.Printf("User '%s' created successfully\n", cfg.SeedUsername)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
