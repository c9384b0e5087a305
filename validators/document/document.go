package documentValidator

import (
	"strings"

	"foerderpilot/middleware"
	"foerderpilot/models"

	"github.com/gofiber/fiber/v2"
)

// base64 expands payloads by 4/3, so 14M characters is roughly 10 MiB raw.
const maxBase64Len = 14 * 1024 * 1024

// Upload validates document upload payloads before any file is written.
func Upload() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Type     string `json:"type"`
			FileName string `json:"file_name"`
			Data     string `json:"data"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ungültige Anfrage!", nil)
		}

		errors := make(map[string]string)

		if !models.ValidDocumentType(reqData.Type) {
			errors["type"] = "Unbekannter Dokumenttyp!"
		}
		if strings.TrimSpace(reqData.FileName) == "" {
			errors["file_name"] = "Bitte geben Sie einen Dateinamen an!"
		}
		if reqData.Data == "" {
			errors["data"] = "Der Dateiinhalt fehlt!"
		} else if len(reqData.Data) > maxBase64Len {
			errors["data"] = "Die Datei darf höchstens 10 MB groß sein!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		return c.Next()
	}
}
