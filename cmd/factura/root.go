package main

import (
	"github.com/spf13/cobra"

	"github.com/pandastore/facturacion/pkg/config"
	"github.com/pandastore/facturacion/pkg/logger"
)

var version = "1.0.0"

// cli estado compartido por los subcomandos; lo llena PersistentPreRunE.
type cli struct {
	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	app := &cli{}
	var verbose bool

	root := &cobra.Command{
		Use:   "factura",
		Short: "Facturación de PandaStore: PDF, etiquetas y extracción de clientes con IA",
		Long: `factura genera la factura PDF de PandaStore a partir de un JSON,
extrae los datos del cliente de un mensaje libre usando IA y administra
el catálogo de productos.

La configuración se lee de variables de entorno (o .env):
  INVOICE_EXCHANGE_RATE, INVOICE_LOGO_PATH, AI_PROVIDER, GEMINI_API_KEY,
  ANTHROPIC_API_KEY, DATABASE_URL, S3_BUCKET...`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			level := "warn"
			if verbose {
				level = "debug"
			}
			app.cfg = cfg
			app.log = logger.New(logger.Config{Env: "development", Level: level, Out: cmd.ErrOrStderr()})
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log detallado en stderr")

	root.AddCommand(
		newRenderCmd(app),
		newLabelCmd(app),
		newExtractCmd(app),
		newModelsCmd(app),
		newHashPasswordCmd(),
		newCatalogCmd(app),
	)
	return root
}
