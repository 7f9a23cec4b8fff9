package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pandastore/facturacion/internal/application/billing"
	"github.com/pandastore/facturacion/internal/application/dto"
	"github.com/pandastore/facturacion/internal/domain/entity"
	infrapdf "github.com/pandastore/facturacion/internal/infrastructure/pdf"
	"github.com/pandastore/facturacion/internal/infrastructure/storage"
)

func newRenderCmd(app *cli) *cobra.Command {
	var (
		input    string
		output   string
		logoPath string
		archive  bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Genera el PDF de una factura descrita en JSON",
		Example: `  factura render -i factura.json
  factura render -i factura.json -o salida.pdf --logo logo.png
  cat factura.json | factura render -i - --archive`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := readInvoiceRequest(cmd.InOrStdin(), input)
			if err != nil {
				return err
			}
			log := app.log.WithComponent("render")

			logo := req.Logo
			if logo == nil {
				path := logoPath
				if path == "" {
					path = app.cfg.Invoice.LogoPath
				}
				if logo, err = infrapdf.LoadLogo(path); err != nil {
					log.Warn().Err(err).Msg("se genera sin logo")
				}
			}

			var arch billing.DocumentArchive
			if archive {
				if !app.cfg.Storage.Enabled() {
					return fmt.Errorf("--archive requiere S3_BUCKET")
				}
				s3, err := storage.NewS3Archive(cmd.Context(), app.cfg.Storage, app.log.WithComponent("storage"))
				if err != nil {
					return err
				}
				arch = s3
			}

			renderer := infrapdf.NewInvoiceRenderer(entity.PandaStore, infrapdf.WithLogger(log))
			uc := billing.NewRenderUseCase(renderer, arch, nil, app.cfg.Invoice.ExchangeRate, log)
			rec, err := billing.RecordFromRequest(*req, app.cfg.Invoice.ExchangeRate)
			if err != nil {
				return err
			}
			doc, err := uc.Render(cmd.Context(), rec, logo)
			if err != nil {
				return err
			}

			if output == "" {
				output = doc.FileName
			}
			if err := os.WriteFile(output, doc.Content, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", output, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			if doc.ArchiveLocation != "" {
				fmt.Fprintln(cmd.OutOrStdout(), doc.ArchiveLocation)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "archivo JSON de la factura (- = stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "archivo PDF de salida (por defecto factura_<número>_<cliente>.pdf)")
	cmd.Flags().StringVar(&logoPath, "logo", "", "logo a usar en lugar de INVOICE_LOGO_PATH")
	cmd.Flags().BoolVar(&archive, "archive", false, "subir además una copia al bucket S3")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newLabelCmd(app *cli) *cobra.Command {
	var input, output string
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Genera la etiqueta de envío (A6) de una factura descrita en JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := readInvoiceRequest(cmd.InOrStdin(), input)
			if err != nil {
				return err
			}
			rec, err := billing.RecordFromRequest(*req, app.cfg.Invoice.ExchangeRate)
			if err != nil {
				return err
			}
			data, err := infrapdf.NewMarotoLabelGenerator(entity.PandaStore).GenerateLabel(cmd.Context(), rec)
			if err != nil {
				return err
			}
			if output == "" {
				output = "etiqueta_" + rec.Number + ".pdf"
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", output, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "archivo JSON de la factura (- = stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "archivo PDF de salida")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// readInvoiceRequest lee el JSON de la factura desde un archivo o stdin ("-").
func readInvoiceRequest(stdin io.Reader, path string) (*dto.RenderInvoiceRequest, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var req dto.RenderInvoiceRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("JSON de factura inválido: %w", err)
	}
	return &req, nil
}
