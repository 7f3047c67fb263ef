package livekit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stagecast/internal/shared/config"
)

// RoomClient is the interface to the media server's room service, used
// to broadcast chat payloads and adjust participant permissions.
type RoomClient interface {
	// SendData broadcasts a reliable data packet to every participant in
	// the room.
	SendData(ctx context.Context, room string, data []byte) error

	// UpdateParticipant replaces a participant's publish permissions.
	UpdateParticipant(ctx context.Context, room, identity string, canPublish bool) error
}

// HTTPRoomClient talks to the media server's Twirp room service over
// HTTP, authenticating each call with a short-lived server grant.
type HTTPRoomClient struct {
	host       string
	minter     *GrantMinter
	httpClient *http.Client
}

func NewHTTPRoomClient(cfg config.LiveKitConfig, minter *GrantMinter) *HTTPRoomClient {
	return &HTTPRoomClient{
		host:       strings.TrimSuffix(cfg.Host, "/"),
		minter:     minter,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendDataRequest struct {
	Room string `json:"room"`
	Data []byte `json:"data"`
	Kind string `json:"kind"`
}

type participantPermission struct {
	CanSubscribe   bool `json:"can_subscribe"`
	CanPublish     bool `json:"can_publish"`
	CanPublishData bool `json:"can_publish_data"`
	Hidden         bool `json:"hidden"`
	Recorder       bool `json:"recorder"`
}

type updateParticipantRequest struct {
	Room       string                `json:"room"`
	Identity   string                `json:"identity"`
	Permission participantPermission `json:"permission"`
}

func (c *HTTPRoomClient) SendData(ctx context.Context, room string, data []byte) error {
	return c.call(ctx, room, "livekit.RoomService/SendData", sendDataRequest{
		Room: room,
		Data: data,
		Kind: "RELIABLE",
	})
}

func (c *HTTPRoomClient) UpdateParticipant(ctx context.Context, room, identity string, canPublish bool) error {
	return c.call(ctx, room, "livekit.RoomService/UpdateParticipant", updateParticipantRequest{
		Room:     room,
		Identity: identity,
		Permission: participantPermission{
			CanSubscribe: true,
			CanPublish:   canPublish,
		},
	})
}

func (c *HTTPRoomClient) call(ctx context.Context, room, method string, payload any) error {
	grant, err := c.minter.MintServerGrant(room)
	if err != nil {
		return fmt.Errorf("failed to mint server grant: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/twirp/%s", c.host, method)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+grant)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("room service call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("room service %s failed: status %d, body: %s", method, resp.StatusCode, string(respBody))
	}
	return nil
}
