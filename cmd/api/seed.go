package main

import (
	"errors"

	"warehouse/internal/database"
	"warehouse/internal/model"
	"warehouse/internal/repository"
	"warehouse/internal/service"
	"warehouse/pkg/apperror"

	"github.com/spf13/cobra"
)

var seedAdmin struct {
	username string
	email    string
	password string
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed default roles, permissions and an administrator",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db, log)

		if err := database.Migrate(db); err != nil {
			return err
		}

		ctx := cmd.Context()
		roleRepo := repository.NewRoleRepository(db)
		audit := service.NewAuditService(repository.NewAuditRepository(db), log)

		permCache, closeCache := newPermissionCache(ctx, cfg, log)
		defer closeCache()

		roles := service.NewRoleService(roleRepo, repository.NewTransactionManager(db), permCache)
		if err := roles.SeedDefaultRolesAndPermissions(ctx); err != nil {
			return err
		}
		log.Info("default roles and permissions seeded")

		if seedAdmin.password == "" {
			log.Info("no --admin-password given, skipping administrator")
			return nil
		}

		users := service.NewUserService(repository.NewUserRepository(db), roleRepo, audit, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		admin, err := users.CreateUser(ctx, service.Actor{}, service.CreateUserRequest{
			Username: seedAdmin.username,
			Email:    seedAdmin.email,
			FullName: "Administrator",
			Password: seedAdmin.password,
			Role:     model.RoleAdmin,
		})
		if errors.Is(err, apperror.ErrDuplicateRecord) {
			log.WithField("email", seedAdmin.email).Info("administrator already exists")
			return nil
		}
		if err != nil {
			return err
		}
		log.WithField("user_id", admin.ID).Info("administrator created")
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedAdmin.username, "admin-username", "admin", "administrator username")
	seedCmd.Flags().StringVar(&seedAdmin.email, "admin-email", "admin@example.com", "administrator email")
	seedCmd.Flags().StringVar(&seedAdmin.password, "admin-password", "", "administrator password (min 6 characters)")
}
