package utils

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"foerderpilot/config"
	"foerderpilot/models"

	"github.com/go-resty/resty/v2"
)

// ValidationResult is the JSON-schema-constrained verdict the vision model
// returns for an uploaded document.
type ValidationResult struct {
	IsValid         bool     `json:"isValid"`
	Confidence      int      `json:"confidence"` // 0-100
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat interface{}   `json:"response_format,omitempty"`
	Temperature    float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// validationSchema is the strict response format for document validation.
var validationSchema = map[string]interface{}{
	"type": "json_schema",
	"json_schema": map[string]interface{}{
		"name":   "document_validation",
		"strict": true,
		"schema": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"isValid":         map[string]interface{}{"type": "boolean"},
				"confidence":      map[string]interface{}{"type": "integer"},
				"issues":          map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
				"recommendations": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
			},
			"required":             []string{"isValid", "confidence", "issues", "recommendations"},
			"additionalProperties": false,
		},
	},
}

// documentPrompt returns the type-specific validation instruction.
func documentPrompt(docType string) string {
	base := "Du prüfst Unterlagen für einen KOMPASS-Förderantrag (Zuschuss zur Weiterbildung " +
		"Solo-Selbstständiger). Prüfe das angehängte Dokument und antworte ausschließlich mit dem " +
		"geforderten JSON. "

	switch docType {
	case models.DocTypeBusinessRegistration:
		return base + "Erwartet wird eine Gewerbeanmeldung oder ein vergleichbarer Nachweis der " +
			"selbstständigen Tätigkeit. Prüfe, ob Name, Anschrift und Beginn der Tätigkeit erkennbar sind."
	case models.DocTypeTaxAssessment:
		return base + "Erwartet wird ein Einkommensteuerbescheid. Prüfe, ob Einkünfte aus selbstständiger " +
			"oder gewerblicher Tätigkeit ausgewiesen sind und das Steuerjahr erkennbar ist."
	case models.DocTypeRevenueProof:
		return base + "Erwartet wird ein Umsatznachweis (z.B. BWA oder EÜR). Prüfe, ob Zeitraum und " +
			"Umsätze erkennbar sind."
	case models.DocTypeIDCard:
		return base + "Erwartet wird ein Personalausweis oder Reisepass. Prüfe, ob das Dokument lesbar " +
			"und nicht abgelaufen ist."
	case models.DocTypeCV:
		return base + "Erwartet wird ein tabellarischer Lebenslauf. Prüfe, ob beruflicher Werdegang und " +
			"aktuelle selbstständige Tätigkeit erkennbar sind."
	case models.DocTypeDeMinimisDeclaration:
		return base + "Erwartet wird eine De-minimis-Erklärung. Prüfe, ob bisherige Beihilfen angegeben " +
			"und das Dokument unterschrieben ist."
	case models.DocTypeInvoice:
		return base + "Erwartet wird die Rechnung des Weiterbildungsanbieters. Prüfe Rechnungsbetrag, " +
			"Empfänger und Kursbezeichnung."
	case models.DocTypePaymentProof:
		return base + "Erwartet wird ein Zahlungsnachweis (Kontoauszug oder Überweisungsbeleg) über die " +
			"Kursgebühr. Prüfe Betrag und Empfänger."
	case models.DocTypeAttendanceCertificate:
		return base + "Erwartet wird eine Teilnahmebescheinigung. Prüfe Kursname, Zeitraum und " +
			"Unterschrift des Anbieters."
	}
	return base + "Prüfe, ob das Dokument vollständig und lesbar ist."
}

func llmClient() *resty.Client {
	return resty.New().SetTimeout(60 * time.Second)
}

// callChat performs one chat-completion request and returns the message text.
func callChat(req chatRequest) (string, error) {
	var out chatResponse
	resp, err := llmClient().R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+config.AppConfig.LLMApiKey).
		SetBody(req).
		SetResult(&out).
		Post(config.AppConfig.LLMApiURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("llm api returned %d: %s", resp.StatusCode(), resp.String())
	}
	if out.Error != nil {
		return "", fmt.Errorf("llm api error: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("llm api returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// ValidateDocument sends the file to the vision endpoint with a
// type-specific prompt and parses the schema-constrained verdict.
func ValidateDocument(fileData []byte, mimeType, docType string) (ValidationResult, error) {
	var result ValidationResult

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(fileData))

	req := chatRequest{
		Model: config.AppConfig.LLMModel,
		Messages: []chatMessage{
			{Role: "system", Content: documentPrompt(docType)},
			{Role: "user", Content: []map[string]interface{}{
				{"type": "text", "text": "Bitte prüfe dieses Dokument."},
				{"type": "image_url", "image_url": map[string]string{"url": dataURL}},
			}},
		},
		ResponseFormat: validationSchema,
		Temperature:    0,
	}

	content, err := callChat(req)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return result, fmt.Errorf("llm returned malformed validation result: %w", err)
	}
	return result, nil
}

// MapValidationStatus maps a verdict to the document validation status:
// confident approvals become valid, rejections invalid, everything else
// goes to manual review.
func MapValidationStatus(res ValidationResult) string {
	if !res.IsValid {
		return models.ValidationStatusInvalid
	}
	if res.Confidence >= 80 {
		return models.ValidationStatusValid
	}
	return models.ValidationStatusManualReview
}

// NarrativeQA is one answered workflow question.
type NarrativeQA struct {
	Question string
	Answer   string
}

// GenerateNarrative turns a participant's questionnaire answers into the
// formal justification text for the funding application.
func GenerateNarrative(courseTitle string, qa []NarrativeQA) (string, error) {
	var b strings.Builder
	for _, item := range qa {
		fmt.Fprintf(&b, "Frage: %s\nAntwort: %s\n\n", item.Question, item.Answer)
	}

	req := chatRequest{
		Model: config.AppConfig.LLMModel,
		Messages: []chatMessage{
			{Role: "system", Content: "Du formulierst aus Stichpunkten eines Solo-Selbstständigen eine " +
				"formelle Begründung für einen KOMPASS-Förderantrag. Schreibe sachlich, in der ersten " +
				"Person, ohne Übertreibungen, maximal 300 Wörter."},
			{Role: "user", Content: fmt.Sprintf("Kurs: %s\n\n%s", courseTitle, b.String())},
		},
		Temperature: 0.3,
	}

	return callChat(req)
}
