package chatService

import (
	"MunBotGolang/internal/entity"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSlots() []entity.AppointmentSlot {
	return []entity.AppointmentSlot{
		{ID: "slot-1", Date: "2026-09-01", StartTime: "09:00", EndTime: "09:30"},
		{ID: "slot-2", Date: "2026-09-01", StartTime: "10:00", EndTime: "10:30"},
	}
}

func TestStartAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("Scheduler Down", func(t *testing.T) {
		env := newTestEnv()
		env.scheduler.listErr = errors.New("scheduler down")
		sess := &entity.Session{ID: "a1"}

		reply, err := env.service.startAppointment(ctx, sess)
		require.NoError(t, err)
		assert.Contains(t, reply.Text, "intenta nuevamente")
		assert.Equal(t, entity.FlowNone, sess.ActiveFlow)
	})

	t.Run("No Slots Available", func(t *testing.T) {
		env := newTestEnv()
		sess := &entity.Session{ID: "a2"}

		reply, err := env.service.startAppointment(ctx, sess)
		require.NoError(t, err)
		assert.Contains(t, reply.Text, "no hay horas")
		assert.Equal(t, entity.FlowNone, sess.ActiveFlow)
	})

	t.Run("Offered Slots Are Capped", func(t *testing.T) {
		env := newTestEnv()
		for i := 0; i < maxOfferedSlots+3; i++ {
			env.scheduler.slots = append(env.scheduler.slots, entity.AppointmentSlot{ID: "x"})
		}
		sess := &entity.Session{ID: "a3"}

		_, err := env.service.startAppointment(ctx, sess)
		require.NoError(t, err)
		assert.Len(t, sess.AppointmentDraft.SlotOptions, maxOfferedSlots)
		assert.Equal(t, entity.FlowAppointment, sess.ActiveFlow)
		assert.Equal(t, fieldNombre, sess.PendingField)
	})
}

func TestAppointmentFlow(t *testing.T) {
	env := newTestEnv()
	env.scheduler.slots = testSlots()
	ctx := context.Background()

	sess := &entity.Session{ID: "a4"}
	_, err := env.service.startAppointment(ctx, sess)
	require.NoError(t, err)

	t.Run("Name", func(t *testing.T) {
		_, err := env.service.advanceAppointment(ctx, sess, "Juan Soto")
		require.NoError(t, err)
		assert.Equal(t, fieldRut, sess.PendingField)
	})

	t.Run("RUT", func(t *testing.T) {
		_, err := env.service.advanceAppointment(ctx, sess, "12345678-5")
		require.NoError(t, err)
		assert.Equal(t, "12.345.678-5", sess.AppointmentDraft.Rut)
		assert.Equal(t, fieldMotivo, sess.PendingField)
	})

	t.Run("Too Short Reason Reprompts", func(t *testing.T) {
		_, err := env.service.advanceAppointment(ctx, sess, "ver")
		require.NoError(t, err)
		assert.Equal(t, fieldMotivo, sess.PendingField)
	})

	t.Run("Reason Shows Slot Menu", func(t *testing.T) {
		reply, err := env.service.advanceAppointment(ctx, sess, "renovar mi licencia de conducir")
		require.NoError(t, err)
		assert.Contains(t, reply.Text, "09:00")
		assert.Contains(t, reply.Text, "10:00")
		assert.Contains(t, reply.Text, "Ninguna me acomoda")
		assert.Equal(t, fieldSlot, sess.PendingField)
	})

	t.Run("Slot Choice Asks Mail", func(t *testing.T) {
		_, err := env.service.advanceAppointment(ctx, sess, "2")
		require.NoError(t, err)
		assert.Equal(t, "slot-2", sess.AppointmentDraft.SlotID)
		assert.Equal(t, fieldMail, sess.PendingField)
	})

	t.Run("Mail Books And Confirms", func(t *testing.T) {
		reply, err := env.service.advanceAppointment(ctx, sess, "juan@example.com")
		require.NoError(t, err)
		assert.Contains(t, reply.Text, "RSV-1")
		assert.Contains(t, reply.Text, "10:00")

		assert.Equal(t, entity.FlowNone, sess.ActiveFlow)
		assert.Empty(t, sess.PendingField)
		assert.Nil(t, sess.AppointmentDraft)

		assert.Eventually(t, func() bool {
			return env.mailer.confirmCount() == 1
		}, time.Second, 10*time.Millisecond)
	})
}

func TestAppointmentEscapeOption(t *testing.T) {
	env := newTestEnv()
	env.scheduler.slots = testSlots()
	ctx := context.Background()

	sess := &entity.Session{ID: "a5"}
	_, err := env.service.startAppointment(ctx, sess)
	require.NoError(t, err)

	sess.PendingField = fieldSlot
	reply, err := env.service.advanceAppointment(ctx, sess, "3")
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "ninguna hora te acomoda")
	assert.Equal(t, entity.FlowNone, sess.ActiveFlow)
	assert.Nil(t, sess.AppointmentDraft)
}

func TestAppointmentReserveFailureKeepsFlow(t *testing.T) {
	env := newTestEnv()
	env.scheduler.slots = testSlots()
	env.scheduler.reserveErr = errors.New("scheduler down")
	ctx := context.Background()

	sess := &entity.Session{ID: "a6"}
	_, err := env.service.startAppointment(ctx, sess)
	require.NoError(t, err)

	sess.AppointmentDraft.Nombre = "Juan Soto"
	sess.AppointmentDraft.Rut = "12.345.678-5"
	sess.AppointmentDraft.Motivo = "renovar licencia"
	sess.AppointmentDraft.SlotID = "slot-1"
	sess.PendingField = fieldMail

	reply, err := env.service.advanceAppointment(ctx, sess, "juan@example.com")
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "reintentar")
	assert.Equal(t, entity.FlowAppointment, sess.ActiveFlow)
	assert.Equal(t, fieldMail, sess.PendingField)
}
