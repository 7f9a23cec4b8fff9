package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pandastore/facturacion/internal/application/auth"
	"github.com/pandastore/facturacion/internal/domain/catalog"
	"github.com/pandastore/facturacion/internal/infrastructure/postgres"
)

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Imprime el hash bcrypt para OPERATOR_PASSWORD_HASH (sin argumento lo lee de stdin)",
		Args:  cobra.MaximumNArgs(1),
		// No necesita configuración.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("leer password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func newCatalogCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Administra el catálogo de productos en PostgreSQL",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Inserta el catálogo por defecto (los productos existentes no se tocan)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !app.cfg.DB.Enabled {
				return fmt.Errorf("catalog seed requiere DATABASE_URL o DB_HOST")
			}
			pool, err := postgres.NewPool(cmd.Context(), app.cfg.DB, app.log.WithComponent("postgres"))
			if err != nil {
				return err
			}
			defer pool.Close()

			added, err := postgres.Seed(cmd.Context(), postgres.NewTxRunner(pool), catalog.Default())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d productos agregados\n", added)
			return nil
		},
	})
	return cmd
}
