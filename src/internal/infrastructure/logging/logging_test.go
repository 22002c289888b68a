package logging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
)

func observed(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

func staticSQL() (string, int64) { return "SELECT 1", 1 }

// ===========================
// New
// ===========================

func TestNew_ParsesLevel(t *testing.T) {
	log, err := New(Config{Level: "warn"})

	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})

	assert.Error(t, err)
}

// ===========================
// GormLogger
// ===========================

func TestGormLogger_RecordNotFoundIsSilent(t *testing.T) {
	// Arrange
	log, logs := observed(zapcore.DebugLevel)
	gl := NewGormLogger(log, time.Second)

	// Act
	gl.Trace(context.Background(), time.Now(), staticSQL, gorm.ErrRecordNotFound)

	// Assert
	assert.Zero(t, logs.Len())
}

func TestGormLogger_ErrorsAreLogged(t *testing.T) {
	log, logs := observed(zapcore.DebugLevel)
	gl := NewGormLogger(log, time.Second)

	gl.Trace(context.Background(), time.Now(), staticSQL, errors.New("boom"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "SELECT 1", entry.ContextMap()["sql"])
}

func TestGormLogger_SlowQueryWarns(t *testing.T) {
	log, logs := observed(zapcore.DebugLevel)
	gl := NewGormLogger(log, time.Millisecond)

	gl.Trace(context.Background(), time.Now().Add(-time.Second), staticSQL, nil)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "slow query", logs.All()[0].Message)
}

func TestGormLogger_FastQueryOnlyAtInfo(t *testing.T) {
	log, logs := observed(zapcore.DebugLevel)
	gl := NewGormLogger(log, time.Second)

	gl.Trace(context.Background(), time.Now(), staticSQL, nil)
	assert.Zero(t, logs.Len())

	gl.LogMode(gormlogger.Info).Trace(context.Background(), time.Now(), staticSQL, nil)
	assert.Equal(t, 1, logs.Len())
}

func TestGormLogger_SilentModeDropsEverything(t *testing.T) {
	log, logs := observed(zapcore.DebugLevel)
	gl := NewGormLogger(log, time.Millisecond).LogMode(gormlogger.Silent)

	gl.Trace(context.Background(), time.Now().Add(-time.Second), staticSQL, errors.New("boom"))
	gl.Error(context.Background(), "failed %d", 1)

	assert.Zero(t, logs.Len())
}

// ===========================
// EventPublisher
// ===========================

func TestEventPublisher_BalanceChangedFields(t *testing.T) {
	// Arrange
	log, logs := observed(zapcore.InfoLevel)
	publisher := NewEventPublisher(log)

	code, err := giftcard.NewCardCode("MC-0001")
	require.NoError(t, err)
	pin, err := giftcard.NewCardPIN("1234")
	require.NoError(t, err)
	card, err := giftcard.ActivateCard(code, pin, shared.NewEntityID[shared.CustomerMarker]())
	require.NoError(t, err)
	amount, err := giftcard.ParseAmount("20")
	require.NoError(t, err)
	_, err = card.Apply(giftcard.TransactionTypeCredit, amount, giftcard.ApplyOptions{})
	require.NoError(t, err)

	// Act
	err = publisher.PublishBatch(card.PullEvents())

	// Assert
	require.NoError(t, err)
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, giftcard.EventTypeCardActivated, logs.All()[0].Message)
	credited := logs.All()[1]
	assert.Equal(t, giftcard.EventTypeBalanceCredited, credited.Message)
	fields := credited.ContextMap()
	assert.Equal(t, "MC-0001", fields["aggregate_id"])
	assert.Equal(t, "20.00", fields["amount"])
	assert.Equal(t, "20.00", fields["balance_after"])
	assert.NotContains(t, fields, "staff_id")
}

type pinRevealed struct{}

func (pinRevealed) EventID() string { return "evt-1" }
func (pinRevealed) EventType() string { return "auth.card_pin_revealed" }
func (pinRevealed) OccurredAt() time.Time { return time.Unix(0, 0).UTC() }
func (pinRevealed) AggregateID() string { return "staff-1" }
func (pinRevealed) Subject() string { return "MC-0001" }

func TestEventPublisher_SubjectEvents(t *testing.T) {
	log, logs := observed(zapcore.InfoLevel)

	require.NoError(t, NewEventPublisher(log).Publish(pinRevealed{}))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "MC-0001", logs.All()[0].ContextMap()["subject"])
	assert.Equal(t, "audit", logs.All()[0].LoggerName)
}
