package utils

import (
	"log"
	"time"

	"foerderpilot/database"
	"foerderpilot/models"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartSchedulers wires the two daily jobs: reset-token cleanup and
// Sammeltermin reminders. Both are plain table scans that are safe to re-run.
func StartSchedulers() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("0 3 * * *", CleanupExpiredResetTokens); err != nil {
		log.Fatalf("Failed to schedule token cleanup: %v", err)
	}
	if _, err := c.AddFunc("0 8 * * *", SendSammelterminReminders); err != nil {
		log.Fatalf("Failed to schedule sammeltermin reminders: %v", err)
	}

	c.Start()
	logScheduler("Daily jobs scheduled (token cleanup 03:00, reminders 08:00)")
	return c
}

// CleanupExpiredResetTokens clears expired password-reset tokens.
func CleanupExpiredResetTokens() {
	db := database.Database.Db

	res := db.Model(&models.User{}).
		Where("reset_token <> '' AND reset_token_expiry < ?", time.Now()).
		Updates(map[string]interface{}{"reset_token": "", "reset_token_expiry": nil})
	if res.Error != nil {
		logScheduler("Error cleaning up reset tokens: " + res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		logScheduler("Cleared expired reset tokens")
	}
}

// SendSammelterminReminders mails every participant of a course whose
// Sammeltermin is roughly 24 hours away. The ReminderSent flag keeps the
// daily scan from mailing twice.
func SendSammelterminReminders() {
	db := database.Database.Db
	now := time.Now()

	var termine []models.Sammeltermin
	err := db.Where("appointment_date >= ? AND appointment_date < ? AND reminder_sent = false AND is_deleted = false",
		now.Add(23*time.Hour), now.Add(25*time.Hour)).
		Find(&termine).Error
	if err != nil {
		logScheduler("Error fetching upcoming sammeltermine: " + err.Error())
		return
	}

	for _, termin := range termine {
		var tenant models.Tenant
		if err := db.First(&tenant, termin.TenantID).Error; err != nil {
			logScheduler("Error loading tenant for sammeltermin: " + err.Error())
			continue
		}

		var participants []models.Participant
		err := db.Where("course_id = ? AND tenant_id = ? AND is_deleted = false AND status NOT IN ?",
			termin.CourseID, termin.TenantID,
			[]string{models.ParticipantStatusDroppedOut, models.ParticipantStatusCompleted}).
			Find(&participants).Error
		if err != nil {
			logScheduler("Error fetching participants for sammeltermin: " + err.Error())
			continue
		}

		for i := range participants {
			SendSammelterminReminderEmail(&tenant, &participants[i], &termin)
		}

		termin.ReminderSent = true
		if err := db.Save(&termin).Error; err != nil {
			logScheduler("Error marking reminder sent: " + err.Error())
		}
	}
}
