package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pandastore/facturacion/internal/application/billing"
	"github.com/pandastore/facturacion/internal/application/usecase"
	infraai "github.com/pandastore/facturacion/internal/infrastructure/ai"
)

func newExtractCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "extract [texto | -]",
		Short: "Extrae nombre, dirección, teléfono y transporte de un mensaje libre",
		Example: `  factura extract "Juan Perez, Reparto Schick casa 12, 8888-0000, Cargo Trans"
  pbpaste | factura extract -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if text == "-" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(raw)
			}

			extractor, err := infraai.NewExtractor(app.cfg.AI)
			if err != nil {
				return err
			}
			client, err := usecase.NewAIUseCase(extractor).ExtractClient(cmd.Context(), text)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(billing.ToClientDTO(*client))
		},
	}
}

func newModelsCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "Lista los modelos de Gemini que soportan generateContent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := infraai.NewGeminiService(app.cfg.AI.GeminiAPIKey, app.cfg.AI.GeminiModel)
			models, err := svc.ListModels(cmd.Context())
			if err != nil {
				return err
			}
			for _, m := range models {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			return nil
		},
	}
}
