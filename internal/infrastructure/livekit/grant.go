package livekit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stagecast/internal/domain/stage"
	"stagecast/internal/domain/user"
	"stagecast/internal/shared/config"
)

const (
	userGrantTTL   = time.Hour
	serverGrantTTL = time.Minute

	serverIdentity = "server"
)

// participantColors is the palette a joining participant's display color
// is drawn from.
var participantColors = []string{
	"#00a9a5", "#ef476f", "#ffd166", "#06d6a0", "#118ab2",
	"#073b4c", "#f78c6b", "#9b5de5", "#f15bb5", "#00bbf9",
}

// VideoGrant describes the capabilities a participant holds in a room.
// Field names follow the media server's claim format.
type VideoGrant struct {
	RoomCreate     bool   `json:"roomCreate"`
	RoomJoin       bool   `json:"roomJoin"`
	RoomList       bool   `json:"roomList"`
	RoomRecord     bool   `json:"roomRecord"`
	RoomAdmin      bool   `json:"roomAdmin"`
	Room           string `json:"room"`
	IngressAdmin   bool   `json:"ingressAdmin"`
	CanPublish     bool   `json:"canPublish"`
	CanSubscribe   bool   `json:"canSubscribe"`
	CanPublishData bool   `json:"canPublishData"`
	Hidden         bool   `json:"hidden"`
	Recorder       bool   `json:"recorder"`
}

// ClaimGrants is the full claim set carried by a media grant token.
type ClaimGrants struct {
	Name     string     `json:"name"`
	Video    VideoGrant `json:"video"`
	Metadata string     `json:"metadata"`
	SHA256   string     `json:"sha256"`
	jwt.RegisteredClaims
}

// ParticipantMetadata is the JSON document embedded in a user grant's
// metadata claim, rendered by clients next to the participant.
type ParticipantMetadata struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	ID        string `json:"id"`
	JoinedAt  string `json:"joined_at"`
	Color     string `json:"color"`
}

// GrantMinter mints and validates media capability grants. Grants are
// signed with the media server's API secret, a separate trust domain
// from session access tokens.
type GrantMinter struct {
	apiKey    string
	apiSecret []byte
	now       func() time.Time
}

func NewGrantMinter(cfg config.LiveKitConfig) *GrantMinter {
	return &GrantMinter{
		apiKey:    cfg.APIKey,
		apiSecret: []byte(cfg.APISecret),
		now:       time.Now,
	}
}

// MintUserGrant creates a one-hour grant for a user joining a stage.
// Callers must have verified stage access first. The stage owner gets
// room admin; canSpeak controls publish permission.
func (m *GrantMinter) MintUserGrant(u *user.User, s *stage.Stage, canSpeak bool) (string, error) {
	metadata, err := json.Marshal(ParticipantMetadata{
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
		ID:        u.SID,
		JoinedAt:  m.now().UTC().Format(time.RFC3339),
		Color:     participantColors[rand.Intn(len(participantColors))],
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal participant metadata: %w", err)
	}

	claims := &ClaimGrants{
		Name: u.Username,
		Video: VideoGrant{
			RoomJoin:     true,
			RoomAdmin:    s.IsOwnedBy(u.ID),
			Room:         s.SID,
			CanPublish:   canSpeak,
			CanSubscribe: true,
		},
		Metadata: string(metadata),
		SHA256:   contentHash(u.SID, s.SID),
	}
	return m.sign(claims, u.SID, userGrantTTL)
}

// MintServerGrant creates a short-lived all-capability grant used for
// server-to-server room service calls.
func (m *GrantMinter) MintServerGrant(stageSID string) (string, error) {
	claims := &ClaimGrants{
		Name: serverIdentity,
		Video: VideoGrant{
			RoomCreate:     true,
			RoomJoin:       true,
			RoomList:       true,
			RoomRecord:     true,
			RoomAdmin:      true,
			Room:           stageSID,
			IngressAdmin:   true,
			CanPublish:     true,
			CanSubscribe:   true,
			CanPublishData: true,
			Hidden:         true,
			Recorder:       true,
		},
		Metadata: "{}",
		SHA256:   contentHash(serverIdentity, stageSID),
	}
	return m.sign(claims, serverIdentity, serverGrantTTL)
}

// ValidateGrant checks the token signature and expiry and returns the
// decoded claims, or nil when the token is invalid. Room membership
// checks are the caller's responsibility.
func (m *GrantMinter) ValidateGrant(tokenString string) *ClaimGrants {
	token, err := jwt.ParseWithClaims(tokenString, &ClaimGrants{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.apiSecret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil
	}

	claims, ok := token.Claims.(*ClaimGrants)
	if !ok || !token.Valid {
		return nil
	}
	return claims
}

func (m *GrantMinter) sign(claims *ClaimGrants, subject string, ttl time.Duration) (string, error) {
	now := m.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    m.apiKey,
		ID:        subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.apiSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign media grant: %w", err)
	}
	return signed, nil
}

func contentHash(subject, stageSID string) string {
	sum := sha256.Sum256([]byte(subject + "_" + stageSID))
	return hex.EncodeToString(sum[:])
}
