package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/junaidrashid-git/bookmarket-api/auth"
	"github.com/junaidrashid-git/bookmarket-api/config"
	"github.com/junaidrashid-git/bookmarket-api/database"
	"github.com/spf13/cobra"
)

var (
	seedAdminEmail    string
	seedAdminPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account and the sample catalog",
	Long: `Seed creates a superuser account and the sample books. Running it again
leaves existing users and books untouched.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedAdminEmail, "admin-email", "admin@bookmarket.com", "email of the superuser to create")
	seedCmd.Flags().StringVar(&seedAdminPassword, "admin-password", "admin123", "password of the superuser to create")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	ctx := cmd.Context()
	name := "Administrador"
	active := true
	_, err = auth.RegisterUser(ctx, db, auth.RegisterInput{
		Email:       seedAdminEmail,
		Password:    seedAdminPassword,
		FullName:    &name,
		IsActive:    &active,
		IsSuperuser: true,
	}, true)
	switch {
	case err == nil:
		log.Printf("✅ Admin %s created", seedAdminEmail)
	case errors.Is(err, auth.ErrEmailTaken):
		log.Printf("ℹ️ Admin %s already exists", seedAdminEmail)
	default:
		return fmt.Errorf("failed to create admin: %w", err)
	}

	created, err := database.SeedBooks(ctx, db)
	if err != nil {
		return err
	}
	log.Printf("🎉 Seeding finished: %d new books", created)
	return nil
}
