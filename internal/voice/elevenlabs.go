package voice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const DefaultElevenLabsBaseURL = "https://api.elevenlabs.io"

var ErrNoConversation = errors.New("voice runtime closed before starting a conversation")

type ElevenLabs struct {
	apiKey  string
	agentID string
	baseURL string

	HTTPClient *http.Client
	Dialer     *websocket.Dialer
}

func NewElevenLabs(apiKey, agentID, baseURL string) *ElevenLabs {
	if baseURL == "" {
		baseURL = DefaultElevenLabsBaseURL
	}
	return &ElevenLabs{
		apiKey:     apiKey,
		agentID:    agentID,
		baseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Dialer:     websocket.DefaultDialer,
	}
}

// SignedURL asks the runtime for a one-off websocket URL for the agent.
func (e *ElevenLabs) SignedURL(ctx context.Context) (string, error) {
	endpoint := fmt.Sprintf("%s/v1/convai/conversation/get_signed_url?agent_id=%s",
		e.baseURL, url.QueryEscape(e.agentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request signed URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get signed URL: %s", resp.Status)
	}

	var result struct {
		SignedURL string `json:"signed_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode signed URL: %w", err)
	}
	if result.SignedURL == "" {
		return "", errors.New("failed to get signed URL: empty response")
	}

	return result.SignedURL, nil
}

// Session is an initialised runtime conversation. The caller owns it from
// here on: audio, turn-taking and shutdown belong to the runtime.
type Session struct {
	ConversationID string
	Conn           *websocket.Conn
}

// Close ends the conversation and closes the socket.
func (s *Session) Close() error {
	_ = s.Conn.WriteJSON(map[string]string{"type": "end_conversation"})
	return s.Conn.Close()
}

// StartSession dials a signed URL, sends the initiation and waits until the
// runtime reports the conversation id. Pings received meanwhile are answered.
func (e *ElevenLabs) StartSession(ctx context.Context, msg Initiation) (*Session, error) {
	signedURL, err := e.SignedURL(ctx)
	if err != nil {
		return nil, err
	}
	return Connect(ctx, e.Dialer, signedURL, msg)
}

func Connect(ctx context.Context, dialer *websocket.Dialer, wsURL string, msg Initiation) (*Session, error) {
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	ws, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial voice runtime: %w", err)
	}

	// unblocks the handshake reads below once ctx is done
	stop := context.AfterFunc(ctx, func() { ws.Close() })

	if err := ws.WriteJSON(msg); err != nil {
		stop()
		ws.Close()
		return nil, fmt.Errorf("send initiation: %w", err)
	}

	for {
		_, message, err := ws.ReadMessage()
		if err != nil {
			stop()
			ws.Close()
			if ctx.Err() != nil {
				return nil, fmt.Errorf("read from voice runtime: %w", ctx.Err())
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil, ErrNoConversation
			}
			return nil, fmt.Errorf("read from voice runtime: %w", err)
		}

		var data struct {
			Type      string `json:"type"`
			PingEvent struct {
				EventID json.RawMessage `json:"event_id"`
			} `json:"ping_event"`
			Metadata struct {
				ConversationID string `json:"conversation_id"`
			} `json:"conversation_initiation_metadata_event"`
		}
		if err := json.Unmarshal(message, &data); err != nil {
			zap.L().Warn("Error parsing voice runtime message", zap.Error(err))
			continue
		}

		switch data.Type {
		case "ping":
			if len(data.PingEvent.EventID) == 0 {
				continue
			}
			pong := map[string]any{"type": "pong", "event_id": data.PingEvent.EventID}
			if err := ws.WriteJSON(pong); err != nil {
				zap.L().Warn("Failed to answer ping", zap.Error(err))
			}
		case "conversation_initiation_metadata":
			if !stop() {
				return nil, fmt.Errorf("read from voice runtime: %w", ctx.Err())
			}
			zap.L().Info("Voice runtime conversation started",
				zap.String("conversation_id", data.Metadata.ConversationID))
			return &Session{ConversationID: data.Metadata.ConversationID, Conn: ws}, nil
		}
	}
}
