// Command seed provisions reference data: the color palette, the canonical
// attribute definitions and staff accounts.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/example/motoluxe/internal/config"
	"github.com/example/motoluxe/internal/database"
	"github.com/example/motoluxe/internal/seed"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func connect() *gorm.DB {
	cfg := config.Load()
	return database.Connect(cfg.DatabaseURL)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "seed",
		Short: "Seed catalog reference data",
	}

	root.AddCommand(newColorsCmd(), newAttributesCmd(), newAdminCmd())
	return root
}

func newColorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "Upsert the predefined color palette",
		Run: func(cmd *cobra.Command, args []string) {
			report, err := seed.Colors(connect())
			if err != nil {
				log.Fatalf("seeding colors failed: %v", err)
			}
			fmt.Printf("colors: %d created, %d updated\n", report.Created, report.Updated)
		},
	}
}

func newAttributesCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "attributes",
		Short: "Upsert attribute definitions and migrate legacy ones",
		Run: func(cmd *cobra.Command, args []string) {
			report, err := seed.Attributes(connect(), force)
			if err != nil {
				log.Fatalf("seeding attributes failed: %v", err)
			}

			fmt.Printf("attributes: %d created, %d updated, %d values migrated\n",
				report.Created, report.Updated, report.Migrated)

			for _, name := range report.Skipped {
				fmt.Printf("skipped %q: still holds values, re-run with --force to migrate\n", name)
			}
			for _, name := range report.Duplicates {
				fmt.Printf("warning: %q is defined under multiple type tags\n", name)
			}
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "migrate or delete legacy definitions that still hold values")
	return cmd
}

func newAdminCmd() *cobra.Command {
	var fullName string

	cmd := &cobra.Command{
		Use:   "admin <username> <password>",
		Short: "Create or update a staff account",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			if err := seed.StaffUser(connect(), args[0], fullName, args[1]); err != nil {
				log.Fatalf("provisioning staff user failed: %v", err)
			}
			fmt.Printf("staff user %q ready\n", args[0])
		},
	}

	cmd.Flags().StringVar(&fullName, "name", "", "display name of the account")
	return cmd
}
