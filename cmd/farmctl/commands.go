package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/auth"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/dto"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/production"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
	"github.com/Mamba1099/milk-farm-sub002/internal/infrastructure/csvimport"
	"github.com/Mamba1099/milk-farm-sub002/internal/infrastructure/postgres"
	"github.com/Mamba1099/milk-farm-sub002/pkg/config"
	"github.com/Mamba1099/milk-farm-sub002/pkg/logger"
)

// cli estado compartido por los subcomandos.
type cli struct {
	v   *viper.Viper
	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	app := &cli{v: config.NewViper()}
	root := &cobra.Command{
		Use:           "farmctl",
		Short:         "Operación de la API de la granja",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Sin Validate: estos comandos no necesitan JWT_SECRET.
			app.cfg = config.FromViper(app.v)
			app.log = logger.New(logger.Config{Env: app.cfg.App.Env, Level: app.cfg.Log.Level, Output: os.Stderr})
			return nil
		},
	}
	root.PersistentFlags().String("database-url", "", "connection string de PostgreSQL (por defecto DATABASE_URL)")
	_ = app.v.BindPFlag("DATABASE_URL", root.PersistentFlags().Lookup("database-url"))

	root.AddCommand(
		newMigrateCmd(app),
		newSeedManagerCmd(app),
		newImportProductionCmd(app),
	)
	return root
}

func newMigrateCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica o revierte las migraciones embebidas",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica todas las migraciones pendientes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := postgres.MigrateUp(app.cfg.DB.ConnectionString()); err != nil {
					return err
				}
				app.log.Info().Msg("migraciones aplicadas")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revierte la última migración",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := postgres.MigrateDown(app.cfg.DB.ConnectionString()); err != nil {
					return err
				}
				app.log.Info().Msg("última migración revertida")
				return nil
			},
		},
	)
	return cmd
}

func newSeedManagerCmd(app *cli) *cobra.Command {
	var email, password, username string
	cmd := &cobra.Command{
		Use:   "seed-manager",
		Short: "Crea la cuenta del farm manager si todavía no existe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := app.pool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{})
			user, err := uc.RegisterUser(ctx, dto.RegisterRequest{
				Username: username,
				Email:    email,
				Password: password,
				Role:     entity.RoleFarmManager,
			})
			if err != nil {
				return fmt.Errorf("crear farm manager: %w", err)
			}
			app.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("farm manager creado")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email del farm manager")
	cmd.Flags().StringVar(&password, "password", "", "contraseña (mínimo 8 caracteres)")
	cmd.Flags().StringVar(&username, "username", "manager", "nombre de usuario")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newImportProductionCmd(app *cli) *cobra.Command {
	var (
		latin1 bool
		comma  string
		userID string
	)
	cmd := &cobra.Command{
		Use:   "import-production FILE.csv",
		Short: "Importa registros de ordeño desde un CSV tag,date,am,pm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := csvimport.Options{Latin1: latin1}
			if comma != "" {
				r := []rune(comma)
				if len(r) != 1 {
					return fmt.Errorf("--comma debe ser un único carácter")
				}
				opts.Comma = r[0]
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("abrir CSV: %w", err)
			}
			defer f.Close()
			rows, err := csvimport.Read(f, opts)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := app.pool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			animals := postgres.NewAnimalRepository(pool)
			im := csvimport.NewImporter(animals,
				production.NewRecordUseCase(postgres.NewTxRunner(pool), postgres.NewProductionRepository(pool), animals))
			res, err := im.Import(ctx, userID, rows)
			if err != nil {
				return fmt.Errorf("importar: %w", err)
			}
			for _, e := range res.Errors {
				app.log.Warn().Int("line", e.Line).Str("tag", e.Tag).Err(e.Err).Msg("fila descartada")
			}
			app.log.Info().
				Int("imported", res.Imported).
				Int("skipped", res.Skipped).
				Int("errors", len(res.Errors)).
				Msg("importación terminada")
			return nil
		},
	}
	cmd.Flags().BoolVar(&latin1, "latin1", false, "el archivo está en ISO-8859-1")
	cmd.Flags().StringVar(&comma, "comma", "", "separador de columnas (por defecto ',')")
	cmd.Flags().StringVar(&userID, "user", "", "ID del usuario que figura como recorded_by")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func (app *cli) pool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, app.cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return pool, nil
}
