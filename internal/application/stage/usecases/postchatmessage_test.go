package usecases

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagecast/internal/domain/stage"
	apperrors "stagecast/internal/shared/errors"
)

type chatFixture struct {
	uc       *PostChatMessageUseCase
	stages   *fakeStageRepo
	messages *fakeChatMessageRepo
	rooms    *fakeRoomClient
	users    *fakeUserRepo
}

func newChatFixture(t *testing.T) (*chatFixture, *stage.Stage) {
	t.Helper()
	f := &chatFixture{
		stages:   newFakeStageRepo(),
		messages: newFakeChatMessageRepo(),
		rooms:    &fakeRoomClient{},
		users:    newFakeUserRepo(),
	}
	f.uc = NewPostChatMessageUseCase(f.stages, f.messages, f.rooms, testLogger)

	owner := f.users.add(testUser("u_owner"))
	s, err := stage.NewStage("s_main", "main stage", "", false, owner.ID)
	require.NoError(t, err)
	f.stages.add(s)
	return f, s
}

func TestPostChatMessage(t *testing.T) {
	f, s := newChatFixture(t)
	author := f.users.add(testUser("u_author"))

	result, err := f.uc.Execute(context.Background(), PostChatMessageCommand{
		StageSID: s.SID,
		Actor:    author,
		Message:  "  hello room  ",
	})
	require.NoError(t, err)

	assert.Equal(t, string(stage.MessageTypeText), result.Message.Type)
	assert.Equal(t, "hello room", result.Message.MessageData)
	assert.Equal(t, s.SID, result.Message.StageID)
	assert.Equal(t, author.SID, result.Message.User.ID)

	require.Len(t, f.messages.messages, 1)
	require.Len(t, f.rooms.sent, 1)
	assert.Equal(t, s.SID, f.rooms.rooms[0])

	var broadcast chatEnvelope
	require.NoError(t, json.Unmarshal(f.rooms.sent[0], &broadcast))
	assert.Equal(t, "CHAT", broadcast.Type)
	assert.Equal(t, result.Message.ID, broadcast.Data.ID)
	assert.Equal(t, "hello room", broadcast.Data.MessageData)
}

func TestPostChatMessageSanitizesMarkup(t *testing.T) {
	f, s := newChatFixture(t)
	author := f.users.add(testUser("u_author"))

	result, err := f.uc.Execute(context.Background(), PostChatMessageCommand{
		StageSID: s.SID,
		Actor:    author,
		Message:  `hi <script>alert("x")</script> there`,
	})
	require.NoError(t, err)

	assert.NotContains(t, result.Message.MessageData, "<script>")
	assert.Contains(t, result.Message.MessageData, "hi")
	assert.Contains(t, result.Message.MessageData, "there")
}

func TestPostChatMessageEmpty(t *testing.T) {
	f, s := newChatFixture(t)
	author := f.users.add(testUser("u_author"))

	_, err := f.uc.Execute(context.Background(), PostChatMessageCommand{
		StageSID: s.SID,
		Actor:    author,
		Message:  "   ",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeMissingParameter, appErr.Type)
	assert.Empty(t, f.rooms.sent)
}

func TestPostChatMessageTooLong(t *testing.T) {
	f, s := newChatFixture(t)
	author := f.users.add(testUser("u_author"))

	_, err := f.uc.Execute(context.Background(), PostChatMessageCommand{
		StageSID: s.SID,
		Actor:    author,
		Message:  strings.Repeat("a", stage.MaxMessageLength+1),
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	assert.Empty(t, f.messages.messages)
}

func TestPostChatMessageUnknownStage(t *testing.T) {
	f, _ := newChatFixture(t)
	author := f.users.add(testUser("u_author"))

	_, err := f.uc.Execute(context.Background(), PostChatMessageCommand{
		StageSID: "s_missing",
		Actor:    author,
		Message:  "hello",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestPostChatMessageBroadcastFailureIsNotFatal(t *testing.T) {
	f, s := newChatFixture(t)
	author := f.users.add(testUser("u_author"))
	f.rooms.sendErr = context.DeadlineExceeded

	result, err := f.uc.Execute(context.Background(), PostChatMessageCommand{
		StageSID: s.SID,
		Actor:    author,
		Message:  "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", result.Message.MessageData)
	require.Len(t, f.messages.messages, 1)
}
