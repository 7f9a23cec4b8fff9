package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
)

// Docs sirve la UI de Swagger en /docs a partir de filePath (generado con
// `swag init` o mantenido a mano). Si el archivo no existe no monta nada y
// devuelve false.
func Docs(app *fiber.App, filePath, title string) bool {
	if filePath == "" {
		return false
	}
	if _, err := os.Stat(filePath); err != nil {
		return false
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    title,
	}))
	return true
}
