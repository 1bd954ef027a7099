package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sensibot/crmsync/internal/entity"
	"github.com/sensibot/crmsync/internal/usecase"
)

func chatEvent(message string) entity.ChatEvent {
	return entity.ChatEvent{
		RecordID:     "rec-1",
		From:         "+919999999999",
		To:           "9876543210",
		TimestampUTC: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
		Message:      message,
	}
}

func TestRecordIfNewAppendsUpdate(t *testing.T) {
	ctx := context.Background()
	crm := new(MockCRMGateway)

	crm.On("ListUpdates", ctx, "tok", "42").Return([]entity.UpdateEntry{
		{ID: "1", Body: "💬 Message from A to B at earlier<br>something else"},
	}, nil)

	var body string
	crm.On("CreateUpdate", ctx, "tok", "42", mock.Anything).
		Run(func(args mock.Arguments) { body = args.String(3) }).
		Return("99", nil)

	recorder := &usecase.ActivityRecorder{CRM: crm}
	updateID, err := recorder.RecordIfNew(ctx, "tok", "42", chatEvent("hi"))

	assert.NoError(t, err)
	assert.Equal(t, "99", updateID)
	assert.Contains(t, body, "hi")
	assert.Contains(t, body, "+919999999999")
	assert.Contains(t, body, "9876543210")
	// 09:30 UTC is 15:00 IST
	assert.Contains(t, body, "3:00:00 pm")
}

func TestRecordIfNewSkipsWhenAnyBodyContainsMessage(t *testing.T) {
	ctx := context.Background()
	crm := new(MockCRMGateway)

	crm.On("ListUpdates", ctx, "tok", "42").Return([]entity.UpdateEntry{
		{ID: "1", Body: "💬 Message from X to Y at sometime<br>well hi there"},
	}, nil)

	recorder := &usecase.ActivityRecorder{CRM: crm}
	updateID, err := recorder.RecordIfNew(ctx, "tok", "42", chatEvent("hi"))

	// "hi" is a substring of an existing body, so nothing is appended. The
	// rule is containment, not equality.
	assert.NoError(t, err)
	assert.Empty(t, updateID)
	crm.AssertNotCalled(t, "CreateUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordIfNewIsIdempotentAcrossRuns(t *testing.T) {
	ctx := context.Background()
	crm := new(MockCRMGateway)
	recorder := &usecase.ActivityRecorder{CRM: crm}
	chat := chatEvent("unique message")

	// First run: no updates yet, one gets appended.
	crm.On("ListUpdates", ctx, "tok", "42").Return([]entity.UpdateEntry{}, nil).Once()
	crm.On("CreateUpdate", ctx, "tok", "42", mock.Anything).Return("99", nil).Once()

	updateID, err := recorder.RecordIfNew(ctx, "tok", "42", chat)
	assert.NoError(t, err)
	assert.Equal(t, "99", updateID)

	// Second run over unchanged history: the stored body contains the
	// message, so nothing new is appended.
	crm.On("ListUpdates", ctx, "tok", "42").Return([]entity.UpdateEntry{
		{ID: "99", Body: usecase.FormatUpdateBody(chat)},
	}, nil).Once()

	updateID, err = recorder.RecordIfNew(ctx, "tok", "42", chat)
	assert.NoError(t, err)
	assert.Empty(t, updateID)
	crm.AssertExpectations(t)
}
