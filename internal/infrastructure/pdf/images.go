package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// maxImagePixels límite para no descomprimir imágenes desproporcionadas en memoria.
const maxImagePixels = 40_000_000

var errEmptyImage = errors.New("imagen vacía")

// pdfImage imagen ya validada y lista para registrar en gofpdf.
type pdfImage struct {
	data   []byte
	kind   string // "JPG" o "PNG"
	width  int
	height int
}

// aspect ancho / alto.
func (i *pdfImage) aspect() float64 {
	return float64(i.width) / float64(i.height)
}

// fit escala la imagen para caber en maxW × maxH sin deformarla.
func (i *pdfImage) fit(maxW, maxH float64) (w, h float64) {
	h = maxH
	w = h * i.aspect()
	if w > maxW {
		w = maxW
		h = w / i.aspect()
	}
	return w, h
}

// prepareImage decodifica por completo los bytes (DecodeConfig no detecta datos
// truncados). Los JPEG RGB/grises se embeben tal cual; cualquier otro formato se
// normaliza a PNG de 8 bits no entrelazado, que gofpdf siempre acepta.
func prepareImage(raw []byte) (*pdfImage, error) {
	if len(raw) == 0 {
		return nil, errEmptyImage
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("imagen: formato no reconocido: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("imagen: dimensiones inválidas %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Width*cfg.Height > maxImagePixels {
		return nil, fmt.Errorf("imagen: %dx%d excede el límite de píxeles", cfg.Width, cfg.Height)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("imagen %s: %w", format, err)
	}

	if format == "jpeg" && (cfg.ColorModel == color.YCbCrModel || cfg.ColorModel == color.GrayModel) {
		return &pdfImage{data: raw, kind: "JPG", width: cfg.Width, height: cfg.Height}, nil
	}

	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, nrgba); err != nil {
		return nil, fmt.Errorf("imagen: normalizar a PNG: %w", err)
	}
	return &pdfImage{data: buf.Bytes(), kind: "PNG", width: b.Dx(), height: b.Dy()}, nil
}

// LoadLogo lee el logo por defecto. Ruta vacía = sin logo. El contenido se
// valida aquí para fallar al arrancar y no en cada factura.
func LoadLogo(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("logo: %w", err)
	}
	if _, err := prepareImage(raw); err != nil {
		return nil, fmt.Errorf("logo %s: %w", path, err)
	}
	return raw, nil
}
