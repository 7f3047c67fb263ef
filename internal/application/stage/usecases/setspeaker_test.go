package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagecast/internal/domain/stage"
	apperrors "stagecast/internal/shared/errors"
)

type speakerFixture struct {
	uc       *SetSpeakerUseCase
	stages   *fakeStageRepo
	messages *fakeChatMessageRepo
	users    *fakeUserRepo
	rooms    *fakeRoomClient
}

func newSpeakerFixture(t *testing.T) (*speakerFixture, *stage.Stage) {
	t.Helper()
	f := &speakerFixture{
		stages:   newFakeStageRepo(),
		messages: newFakeChatMessageRepo(),
		users:    newFakeUserRepo(),
		rooms:    &fakeRoomClient{},
	}
	f.uc = NewSetSpeakerUseCase(f.stages, f.messages, f.users, f.rooms, testLogger)

	owner := f.users.add(testUser("u_owner"))
	s, err := stage.NewStage("s_main", "main stage", "", false, owner.ID)
	require.NoError(t, err)
	f.stages.add(s)
	return f, s
}

func TestSetSpeakerPromote(t *testing.T) {
	f, s := newSpeakerFixture(t)
	owner, _ := f.users.GetBySID(context.Background(), "u_owner")
	target := f.users.add(testUser("u_target"))

	result, err := f.uc.Execute(context.Background(), SetSpeakerCommand{
		StageSID:      s.SID,
		Actor:         owner,
		TargetUserSID: target.SID,
		Speaker:       true,
	})
	require.NoError(t, err)

	require.Len(t, f.rooms.updates, 1)
	assert.Equal(t, s.SID, f.rooms.updates[0].room)
	assert.Equal(t, target.SID, f.rooms.updates[0].identity)
	assert.True(t, f.rooms.updates[0].canPublish)

	assert.Equal(t, string(stage.MessageTypeEvent), result.Message.Type)
	assert.Equal(t, stage.EventMadeSpeaker, result.Message.MessageData)
	assert.Equal(t, target.SID, result.Message.User.ID)
	require.Len(t, f.rooms.sent, 1)
}

func TestSetSpeakerDemote(t *testing.T) {
	f, s := newSpeakerFixture(t)
	owner, _ := f.users.GetBySID(context.Background(), "u_owner")
	target := f.users.add(testUser("u_target"))

	result, err := f.uc.Execute(context.Background(), SetSpeakerCommand{
		StageSID:      s.SID,
		Actor:         owner,
		TargetUserSID: target.SID,
		Speaker:       false,
	})
	require.NoError(t, err)

	require.Len(t, f.rooms.updates, 1)
	assert.False(t, f.rooms.updates[0].canPublish)
	assert.Equal(t, stage.EventMadeListener, result.Message.MessageData)
}

func TestSetSpeakerNotOwner(t *testing.T) {
	f, s := newSpeakerFixture(t)
	intruder := f.users.add(testUser("u_intruder"))
	target := f.users.add(testUser("u_target"))

	_, err := f.uc.Execute(context.Background(), SetSpeakerCommand{
		StageSID:      s.SID,
		Actor:         intruder,
		TargetUserSID: target.SID,
		Speaker:       true,
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
	assert.Empty(t, f.rooms.updates)
}

func TestSetSpeakerUnknownTarget(t *testing.T) {
	f, s := newSpeakerFixture(t)
	owner, _ := f.users.GetBySID(context.Background(), "u_owner")

	_, err := f.uc.Execute(context.Background(), SetSpeakerCommand{
		StageSID:      s.SID,
		Actor:         owner,
		TargetUserSID: "u_ghost",
		Speaker:       true,
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestSetSpeakerMissingTarget(t *testing.T) {
	f, s := newSpeakerFixture(t)
	owner, _ := f.users.GetBySID(context.Background(), "u_owner")

	_, err := f.uc.Execute(context.Background(), SetSpeakerCommand{
		StageSID: s.SID,
		Actor:    owner,
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeMissingParameter, appErr.Type)
}

func TestRequestToSpeakBroadcastsEvent(t *testing.T) {
	stages := newFakeStageRepo()
	messages := newFakeChatMessageRepo()
	users := newFakeUserRepo()
	rooms := &fakeRoomClient{}
	uc := NewRequestToSpeakUseCase(stages, messages, rooms, testLogger)

	owner := users.add(testUser("u_owner"))
	listener := users.add(testUser("u_listener"))
	s, err := stage.NewStage("s_main", "main stage", "", false, owner.ID)
	require.NoError(t, err)
	stages.add(s)

	result, err := uc.Execute(context.Background(), RequestToSpeakCommand{
		StageSID: s.SID,
		Actor:    listener,
	})
	require.NoError(t, err)

	assert.Equal(t, string(stage.MessageTypeEvent), result.Message.Type)
	assert.Equal(t, stage.EventRequestToSpeak, result.Message.MessageData)
	assert.Equal(t, listener.SID, result.Message.User.ID)
	require.Len(t, messages.messages, 1)
	require.Len(t, rooms.sent, 1)
}
