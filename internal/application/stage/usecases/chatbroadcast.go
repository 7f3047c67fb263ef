package usecases

import (
	"context"
	"encoding/json"

	"stagecast/internal/infrastructure/livekit"
	"stagecast/internal/shared/logger"
)

// chatEnvelope wraps chat payloads broadcast to room participants.
type chatEnvelope struct {
	Type string         `json:"type"`
	Data ChatMessageDTO `json:"data"`
}

// broadcastChatMessage pushes a chat entry to everyone in the room. A
// broadcast failure is logged but does not fail the request; the message
// is already persisted and will appear in history.
func broadcastChatMessage(ctx context.Context, rooms livekit.RoomClient, log logger.Interface, room string, dto ChatMessageDTO) {
	payload, err := json.Marshal(chatEnvelope{Type: "CHAT", Data: dto})
	if err != nil {
		log.Errorw("failed to marshal chat broadcast", "error", err)
		return
	}
	if err := rooms.SendData(ctx, room, payload); err != nil {
		log.Warnw("failed to broadcast chat message", "room", room, "error", err)
	}
}
