package utils

import (
	"fmt"
	"log"
	"time"

	"foerderpilot/config"
	"foerderpilot/database"
	"foerderpilot/models"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailMessage is one rendered outbound email.
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// EmailSender dispatches a rendered message. The default implementation uses
// SendGrid; tests install a recorder via SetEmailSender.
type EmailSender interface {
	Send(msg EmailMessage) error
}

type sendgridSender struct{}

func (sendgridSender) Send(msg EmailMessage) error {
	from := sgmail.NewEmail(config.AppConfig.EmailFromName, config.AppConfig.EmailSender)
	to := sgmail.NewEmail(msg.ToName, msg.To)

	m := sgmail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(m)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected message: %d %s", resp.StatusCode, resp.Body)
	}
	return nil
}

var (
	emailSender EmailSender = sendgridSender{}
	sendAsync               = true
)

// SetEmailSender swaps the outbound transport and makes sends synchronous.
// Used by tests.
func SetEmailSender(s EmailSender) {
	emailSender = s
	sendAsync = false
}

// dispatch sends fire-and-forget: failures are logged and never propagate to
// the mutation that triggered the email.
func dispatch(msg EmailMessage) {
	send := func() {
		if err := emailSender.Send(msg); err != nil {
			log.Printf("Error sending email to %s (%s): %v", msg.To, msg.Subject, err)
			return
		}
		log.Printf("Email sent to %s: %s", msg.To, msg.Subject)
	}
	if sendAsync {
		go send()
	} else {
		send()
	}
}

// renderLayout wraps body content in the tenant-branded HTML frame.
func renderLayout(tenant *models.Tenant, heading, bodyContent string) string {
	name := "FörderPilot"
	primary := "#1a56db"
	accent := "#7e3af2"
	logo := ""
	if tenant != nil {
		if tenant.Name != "" {
			name = tenant.Name
		}
		if tenant.PrimaryColor != "" {
			primary = tenant.PrimaryColor
		}
		if tenant.SecondaryColor != "" {
			accent = tenant.SecondaryColor
		}
		logo = tenant.LogoURL
	}

	header := fmt.Sprintf(`<h1 style="color:#FFFFFF;margin:0;font-size:24px;">%s</h1>`, name)
	if logo != "" {
		header = fmt.Sprintf(`<img src="%s" alt="%s" style="max-height:48px;"/>`, logo, name)
	}

	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: %s; padding: 30px; text-align: center; }
			.content { padding: 40px 30px; color: #1F2937; line-height: 1.6; }
			.content h2 { color: %s; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: %s; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #EEF2FF; padding: 15px; border-radius: 4px; border-left: 4px solid %s; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">%s</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				%s &middot; KOMPASS-Förderung für Solo-Selbstständige
			</div>
		</div>
	</body>
	</html>
	`, primary, primary, accent, accent, header, heading, bodyContent, name)
}

// templateOverride looks up an active per-tenant template override by key.
func templateOverride(tenant *models.Tenant, key string) *models.EmailTemplate {
	if tenant == nil || database.Database.Db == nil {
		return nil
	}
	var tpl models.EmailTemplate
	err := database.Database.Db.
		Where("tenant_id = ? AND `key` = ? AND is_active = true AND is_deleted = false", tenant.ID, key).
		First(&tpl).Error
	if err != nil {
		return nil
	}
	return &tpl
}

// sendTemplated resolves a possible tenant override, renders the branded
// layout and dispatches the message.
func sendTemplated(tenant *models.Tenant, key, to, toName, subject, heading, bodyHTML, bodyText string) {
	if to == "" {
		return
	}
	if tpl := templateOverride(tenant, key); tpl != nil {
		if tpl.Subject != "" {
			subject = tpl.Subject
		}
		if tpl.Heading != "" {
			heading = tpl.Heading
		}
		if tpl.BodyHTML != "" {
			bodyHTML = tpl.BodyHTML
		}
	}
	dispatch(EmailMessage{
		To:      to,
		ToName:  toName,
		Subject: subject,
		HTML:    renderLayout(tenant, heading, bodyHTML),
		Text:    bodyText,
	})
}

// Template keys for per-tenant overrides.
const (
	TplWelcome              = "welcome"
	TplPasswordReset        = "password_reset"
	TplStatusChange         = "status_change"
	TplDocumentUploaded     = "document_uploaded"
	TplDocumentValidated    = "document_validated"
	TplSammelterminReminder = "sammeltermin_reminder"
	TplInvite               = "invite"
)

// TemplateKeys lists all built-in template keys.
var TemplateKeys = []string{
	TplWelcome, TplPasswordReset, TplStatusChange, TplDocumentUploaded,
	TplDocumentValidated, TplSammelterminReminder, TplInvite,
}

// StatusLabel maps a participant status to its German UI label.
func StatusLabel(status string) string {
	switch status {
	case models.ParticipantStatusRegistered:
		return "Registriert"
	case models.ParticipantStatusDocumentsPending:
		return "Unterlagen ausstehend"
	case models.ParticipantStatusDocumentsSubmitted:
		return "Unterlagen eingereicht"
	case models.ParticipantStatusDocumentsApproved:
		return "Unterlagen geprüft"
	case models.ParticipantStatusDocumentsRejected:
		return "Unterlagen abgelehnt"
	case models.ParticipantStatusEnrolled:
		return "Eingeschrieben"
	case models.ParticipantStatusCompleted:
		return "Abgeschlossen"
	case models.ParticipantStatusDroppedOut:
		return "Abgebrochen"
	}
	return status
}

// --- Triggers ---

// SendWelcomeEmail confirms a funnel registration.
func SendWelcomeEmail(tenant *models.Tenant, p *models.Participant, courseTitle string) {
	subject := "Ihre Anmeldung ist eingegangen"
	body := fmt.Sprintf(`
		<p>Guten Tag %s %s,</p>
		<p>vielen Dank für Ihre Anmeldung zum Kurs <strong>%s</strong>.</p>
		<p>Im nächsten Schritt benötigen wir Ihre Unterlagen für den KOMPASS-Förderantrag.
		Sie erhalten dazu in Kürze weitere Informationen.</p>
		<div class="info-box">Ihre voraussichtliche Förderung: <strong>%d%%</strong> der Kursgebühr.</div>
	`, p.FirstName, p.LastName, courseTitle, p.FundingPercentage)
	text := fmt.Sprintf("Guten Tag %s %s, vielen Dank für Ihre Anmeldung zum Kurs %q. "+
		"Im nächsten Schritt benötigen wir Ihre Unterlagen für den KOMPASS-Förderantrag.",
		p.FirstName, p.LastName, courseTitle)

	sendTemplated(tenant, TplWelcome, p.Email, p.FirstName+" "+p.LastName,
		subject, "Willkommen!", body, text)
}

// SendPasswordResetEmail carries the reset link.
func SendPasswordResetEmail(tenant *models.Tenant, user *models.User, resetURL string) {
	subject := "Passwort zurücksetzen"
	body := fmt.Sprintf(`
		<p>Guten Tag %s,</p>
		<p>für Ihr Konto wurde das Zurücksetzen des Passworts angefordert.</p>
		<a href="%s" class="btn">Neues Passwort vergeben</a>
		<p style="margin-top:20px;font-size:13px;color:#666;">Der Link ist 1 Stunde gültig.
		Wenn Sie die Anfrage nicht gestellt haben, können Sie diese E-Mail ignorieren.</p>
	`, user.Name, resetURL)
	text := fmt.Sprintf("Guten Tag %s, setzen Sie Ihr Passwort hier zurück (1 Stunde gültig): %s", user.Name, resetURL)

	sendTemplated(tenant, TplPasswordReset, user.Email, user.Name,
		subject, "Passwort zurücksetzen", body, text)
}

// SendStatusChangeEmail notifies a participant about a pipeline move.
func SendStatusChangeEmail(tenant *models.Tenant, p *models.Participant, oldStatus, newStatus string) {
	subject := fmt.Sprintf("Statusänderung: %s", StatusLabel(newStatus))
	body := fmt.Sprintf(`
		<p>Guten Tag %s %s,</p>
		<p>der Status Ihrer Kursanmeldung hat sich geändert:</p>
		<div class="info-box">
			<strong>%s</strong> &rarr; <strong>%s</strong>
		</div>
		<p>Bei Fragen antworten Sie einfach auf diese E-Mail.</p>
	`, p.FirstName, p.LastName, StatusLabel(oldStatus), StatusLabel(newStatus))
	text := fmt.Sprintf("Guten Tag %s %s, der Status Ihrer Anmeldung hat sich geändert: %s -> %s (%s -> %s).",
		p.FirstName, p.LastName, StatusLabel(oldStatus), StatusLabel(newStatus), oldStatus, newStatus)

	sendTemplated(tenant, TplStatusChange, p.Email, p.FirstName+" "+p.LastName,
		subject, "Neuer Status", body, text)
}

// SendDocumentUploadedEmail confirms receipt of an upload.
func SendDocumentUploadedEmail(tenant *models.Tenant, p *models.Participant, docLabel string) {
	subject := "Dokument erhalten: " + docLabel
	body := fmt.Sprintf(`
		<p>Guten Tag %s %s,</p>
		<p>wir haben Ihr Dokument <strong>%s</strong> erhalten. Es wird nun geprüft.</p>
	`, p.FirstName, p.LastName, docLabel)
	text := fmt.Sprintf("Guten Tag %s %s, wir haben Ihr Dokument %q erhalten. Es wird nun geprüft.",
		p.FirstName, p.LastName, docLabel)

	sendTemplated(tenant, TplDocumentUploaded, p.Email, p.FirstName+" "+p.LastName,
		subject, "Dokument erhalten", body, text)
}

// SendDocumentValidatedEmail reports a validation verdict to the participant.
func SendDocumentValidatedEmail(tenant *models.Tenant, p *models.Participant, docLabel, status string) {
	var verdict, hint string
	switch status {
	case models.ValidationStatusValid:
		verdict = "erfolgreich geprüft"
		hint = "Es sind keine weiteren Schritte nötig."
	case models.ValidationStatusInvalid:
		verdict = "leider abgelehnt"
		hint = "Bitte laden Sie eine korrigierte Version hoch."
	default:
		verdict = "zur manuellen Prüfung weitergeleitet"
		hint = "Wir melden uns, sobald die Prüfung abgeschlossen ist."
	}
	subject := fmt.Sprintf("Prüfergebnis: %s", docLabel)
	body := fmt.Sprintf(`
		<p>Guten Tag %s %s,</p>
		<p>Ihr Dokument <strong>%s</strong> wurde %s.</p>
		<p>%s</p>
	`, p.FirstName, p.LastName, docLabel, verdict, hint)
	text := fmt.Sprintf("Guten Tag %s %s, Ihr Dokument %q wurde %s. %s",
		p.FirstName, p.LastName, docLabel, verdict, hint)

	sendTemplated(tenant, TplDocumentValidated, p.Email, p.FirstName+" "+p.LastName,
		subject, "Prüfergebnis", body, text)
}

// SendSammelterminReminderEmail reminds a participant of tomorrow's group
// submission appointment.
func SendSammelterminReminderEmail(tenant *models.Tenant, p *models.Participant, termin *models.Sammeltermin) {
	subject := "Erinnerung: " + termin.Title
	body := fmt.Sprintf(`
		<p>Guten Tag %s %s,</p>
		<p>morgen findet der Sammeltermin <strong>%s</strong> statt.</p>
		<div class="info-box">
			<strong>Termin:</strong> %s<br>
			<strong>Abgabefrist:</strong> %s
		</div>
		<p>Bitte halten Sie alle noch fehlenden Unterlagen bereit.</p>
	`, p.FirstName, p.LastName, termin.Title,
		termin.AppointmentDate.Format("02.01.2006 15:04"),
		termin.SubmissionDeadline.Format("02.01.2006"))
	text := fmt.Sprintf("Guten Tag %s %s, morgen (%s) findet der Sammeltermin %q statt. Abgabefrist: %s.",
		p.FirstName, p.LastName, termin.AppointmentDate.Format("02.01.2006 15:04"),
		termin.Title, termin.SubmissionDeadline.Format("02.01.2006"))

	sendTemplated(tenant, TplSammelterminReminder, p.Email, p.FirstName+" "+p.LastName,
		subject, "Terminerinnerung", body, text)
}

// SendInviteEmail delivers initial credentials to a newly created account.
func SendInviteEmail(tenant *models.Tenant, user *models.User, tempPassword string) {
	subject := "Ihr Zugang wurde eingerichtet"
	body := fmt.Sprintf(`
		<p>Guten Tag %s,</p>
		<p>für Sie wurde ein Zugang eingerichtet.</p>
		<div class="info-box">
			<strong>E-Mail:</strong> %s<br>
			<strong>Passwort:</strong> %s
		</div>
		<p>Bitte ändern Sie das Passwort nach der ersten Anmeldung.</p>
	`, user.Name, user.Email, tempPassword)
	text := fmt.Sprintf("Guten Tag %s, Ihr Zugang: %s / %s. Bitte ändern Sie das Passwort nach der ersten Anmeldung.",
		user.Name, user.Email, tempPassword)

	sendTemplated(tenant, TplInvite, user.Email, user.Name,
		subject, "Zugang eingerichtet", body, text)
}

// SendTestEmail lets an admin verify tenant branding and transport.
func SendTestEmail(tenant *models.Tenant, to string) {
	body := fmt.Sprintf(`
		<p>Dies ist eine Test-E-Mail, versendet am %s.</p>
		<p>Wenn Sie diese Nachricht lesen, funktioniert der E-Mail-Versand.</p>
	`, time.Now().Format("02.01.2006 15:04"))

	sendTemplated(tenant, "", to, "", "Test-E-Mail", "Test-E-Mail", body,
		"Dies ist eine Test-E-Mail. Der E-Mail-Versand funktioniert.")
}

// DocumentTypeLabel maps a KOMPASS document type to its German UI label.
func DocumentTypeLabel(docType string) string {
	switch docType {
	case models.DocTypeBusinessRegistration:
		return "Gewerbeanmeldung"
	case models.DocTypeTaxAssessment:
		return "Steuerbescheid"
	case models.DocTypeRevenueProof:
		return "Umsatznachweis"
	case models.DocTypeIDCard:
		return "Personalausweis"
	case models.DocTypeCV:
		return "Lebenslauf"
	case models.DocTypeDeMinimisDeclaration:
		return "De-minimis-Erklärung"
	case models.DocTypeInvoice:
		return "Rechnung"
	case models.DocTypePaymentProof:
		return "Zahlungsnachweis"
	case models.DocTypeAttendanceCertificate:
		return "Teilnahmebescheinigung"
	}
	return docType
}
