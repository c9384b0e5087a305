package utils_test

import (
	"testing"
	"time"

	"foerderpilot/models"
	"foerderpilot/testutil"
	"foerderpilot/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendSammelterminReminders(t *testing.T) {
	testutil.SetupConfig(t)
	db := testutil.SetupDB(t)
	rec := testutil.RecordEmails(t)

	tenant := testutil.CreateTenant(t, db, "Akademie", "akademie")
	course := testutil.CreateCourse(t, db, tenant.ID, "Projektmanagement", 200000)

	testutil.CreateParticipant(t, db, tenant.ID, course.ID,
		"aktiv@test.local", models.ParticipantStatusEnrolled)
	testutil.CreateParticipant(t, db, tenant.ID, course.ID,
		"raus@test.local", models.ParticipantStatusDroppedOut)

	now := time.Now()
	tomorrow := models.Sammeltermin{
		TenantID:           tenant.ID,
		CourseID:           course.ID,
		Title:              "KOMPASS Abgabe Juni",
		AppointmentDate:    now.Add(24 * time.Hour),
		SubmissionDeadline: now.Add(20 * time.Hour),
	}
	require.NoError(t, db.Create(&tomorrow).Error)

	nextWeek := models.Sammeltermin{
		TenantID:           tenant.ID,
		CourseID:           course.ID,
		Title:              "KOMPASS Abgabe Juli",
		AppointmentDate:    now.Add(7 * 24 * time.Hour),
		SubmissionDeadline: now.Add(6 * 24 * time.Hour),
	}
	require.NoError(t, db.Create(&nextWeek).Error)

	utils.SendSammelterminReminders()

	t.Run("only active participants of tomorrow's termin are mailed", func(t *testing.T) {
		require.Equal(t, 1, rec.Count())
		msg := rec.Last(t)
		assert.Equal(t, "aktiv@test.local", msg.To)
		assert.Contains(t, msg.Subject, "KOMPASS Abgabe Juni")
	})

	t.Run("reminder flag is set once", func(t *testing.T) {
		var saved models.Sammeltermin
		require.NoError(t, db.First(&saved, tomorrow.ID).Error)
		assert.True(t, saved.ReminderSent)

		saved = models.Sammeltermin{}
		require.NoError(t, db.First(&saved, nextWeek.ID).Error)
		assert.False(t, saved.ReminderSent)
	})

	t.Run("second run mails nobody", func(t *testing.T) {
		before := rec.Count()
		utils.SendSammelterminReminders()
		assert.Equal(t, before, rec.Count())
	})
}

func TestCleanupExpiredResetTokens(t *testing.T) {
	testutil.SetupConfig(t)
	db := testutil.SetupDB(t)

	tenant := testutil.CreateTenant(t, db, "Akademie", "akademie")

	expired := testutil.CreateUser(t, db, &tenant.ID, models.RoleUser, "expired@test.local", "secret123")
	past := time.Now().Add(-2 * time.Hour)
	expired.ResetToken = "stale"
	expired.ResetTokenExpiry = &past
	require.NoError(t, db.Save(expired).Error)

	fresh := testutil.CreateUser(t, db, &tenant.ID, models.RoleUser, "fresh@test.local", "secret123")
	future := time.Now().Add(30 * time.Minute)
	fresh.ResetToken = "still-good"
	fresh.ResetTokenExpiry = &future
	require.NoError(t, db.Save(fresh).Error)

	utils.CleanupExpiredResetTokens()

	var saved models.User
	require.NoError(t, db.First(&saved, expired.ID).Error)
	assert.Empty(t, saved.ResetToken)
	assert.Nil(t, saved.ResetTokenExpiry)

	saved = models.User{}
	require.NoError(t, db.First(&saved, fresh.ID).Error)
	assert.Equal(t, "still-good", saved.ResetToken)
}
