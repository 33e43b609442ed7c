package voice

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"phonenix/internal/agentconfig"
	"phonenix/internal/ai"
)

func sarah() *agentconfig.AgentConfig {
	return &agentconfig.AgentConfig{
		AgentName: "Sarah",
		Company:   agentconfig.CompanyDetails{Name: "Premier Realty Group"},
		Industry:  "real estate",
		Call:      agentconfig.CallContext{Purpose: "Follow up on property inquiry"},
		User:      agentconfig.UserContext{Name: "Jane"},
		Language:  "en",
	}
}

func TestNewInitiation(t *testing.T) {
	cfg := sarah()
	msg := NewInitiation(cfg, "+15550123")

	assert.Equal(t, "conversation_initiation_client_data", msg.Type)
	assert.Equal(t, ai.BuildPrompt(cfg), msg.ConversationConfigOverride.Agent.Prompt.Prompt)
	assert.Equal(t, ai.FirstMessage(cfg), msg.ConversationConfigOverride.Agent.FirstMessage)
	assert.Equal(t, "en", msg.ConversationConfigOverride.Agent.Language)
	assert.Equal(t, map[string]string{
		"agent_name":   "Sarah",
		"company_name": "Premier Realty Group",
		"user_name":    "Jane",
		"call_purpose": "Follow up on property inquiry",
		"caller_phone": "+15550123",
	}, msg.DynamicVariables)

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"conversation_config_override":{"agent":{"prompt":{"prompt":"You are Sarah`)

	empty := NewInitiation(nil, "")
	assert.Nil(t, empty.DynamicVariables)
	assert.NotEmpty(t, empty.ConversationConfigOverride.Agent.Prompt.Prompt)
}

// fakeRuntime serves both the signed URL endpoint and the conversation socket.
func fakeRuntime(t *testing.T, received chan<- Initiation) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)

	mux.HandleFunc("/v1/convai/conversation/get_signed_url", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("xi-api-key") != "key" || r.URL.Query().Get("agent_id") != "agent" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"signed_url": "ws" + strings.TrimPrefix(srv.URL, "http") + "/convai",
		})
	})
	mux.HandleFunc("/convai", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		var msg Initiation
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		received <- msg

		conn.WriteJSON(map[string]any{"type": "ping", "ping_event": map[string]any{"event_id": 7}})
		var pong map[string]any
		if err := conn.ReadJSON(&pong); err != nil || pong["type"] != "pong" {
			return
		}
		conn.WriteJSON(map[string]any{
			"type": "conversation_initiation_metadata",
			"conversation_initiation_metadata_event": map[string]any{"conversation_id": "conv_123"},
		})

		var end map[string]string
		conn.ReadJSON(&end)
	})

	t.Cleanup(srv.Close)
	return srv
}

func TestStartSession(t *testing.T) {
	received := make(chan Initiation, 1)
	srv := fakeRuntime(t, received)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := NewElevenLabs("key", "agent", srv.URL)
	session, err := client.StartSession(ctx, NewInitiation(sarah(), ""))
	require.NoError(t, err)
	defer session.Close()

	assert.Equal(t, "conv_123", session.ConversationID)
	msg := <-received
	assert.Contains(t, msg.ConversationConfigOverride.Agent.Prompt.Prompt, "Premier Realty Group")
}

func TestConnectHonoursCancellation(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		// never answers; returns once the client hangs up
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	errc := make(chan error, 1)
	go func() {
		_, err := Connect(ctx, nil, "ws"+strings.TrimPrefix(srv.URL, "http"), NewInitiation(sarah(), ""))
		errc <- err
	}()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Connect did not return after cancellation")
	}
}

func TestSignedURLUnauthorized(t *testing.T) {
	srv := fakeRuntime(t, make(chan Initiation, 1))

	_, err := NewElevenLabs("wrong", "agent", srv.URL).SignedURL(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get signed URL")
}

type fakeCallAPI struct {
	created *twilioApi.CreateCallParams
	updated *twilioApi.UpdateCallParams
	sid     string
	err     error
}

func (f *fakeCallAPI) CreateCall(params *twilioApi.CreateCallParams) (*twilioApi.ApiV2010Call, error) {
	f.created = params
	if f.err != nil {
		return nil, f.err
	}
	sid := "CA123"
	return &twilioApi.ApiV2010Call{Sid: &sid}, nil
}

func (f *fakeCallAPI) UpdateCall(sid string, params *twilioApi.UpdateCallParams) (*twilioApi.ApiV2010Call, error) {
	f.sid = sid
	f.updated = params
	return &twilioApi.ApiV2010Call{Sid: &sid}, f.err
}

func TestTwilioPlaceCall(t *testing.T) {
	api := &fakeCallAPI{}
	tw := &Twilio{api: api, from: "+15550000"}

	sid, err := tw.PlaceCall("+15550123", "https://example.com/outbound-call-twiml?config_id=abc", "https://example.com/call-status")
	require.NoError(t, err)
	assert.Equal(t, "CA123", sid)
	assert.Equal(t, "+15550123", *api.created.To)
	assert.Equal(t, "+15550000", *api.created.From)
	assert.Equal(t, "https://example.com/outbound-call-twiml?config_id=abc", *api.created.Url)
	assert.Equal(t, "https://example.com/call-status", *api.created.StatusCallback)
	assert.Equal(t, []string{"completed"}, *api.created.StatusCallbackEvent)

	_, err = tw.PlaceCall("+15550123", "https://example.com", "")
	require.NoError(t, err)
	assert.Nil(t, api.created.StatusCallback)

	_, err = tw.PlaceCall("", "https://example.com", "")
	assert.Error(t, err)

	api.err = errors.New("boom")
	_, err = tw.PlaceCall("+15550123", "https://example.com", "")
	assert.ErrorContains(t, err, "failed to create call")
}

func TestTwilioTransfer(t *testing.T) {
	api := &fakeCallAPI{}
	tw := &Twilio{api: api}

	require.NoError(t, tw.Transfer("CA999", "+15559999"))
	assert.Equal(t, "CA999", api.sid)
	assert.Equal(t, "+15559999", parseTwiML(t, *api.updated.Twiml).Dial)

	assert.Error(t, tw.Transfer("CA999", ""))
}

type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Connect struct {
		Stream struct {
			URL    string `xml:"url,attr"`
			Params []struct {
				Name  string `xml:"name,attr"`
				Value string `xml:"value,attr"`
			} `xml:"Parameter"`
		} `xml:"Stream"`
	} `xml:"Connect"`
	Dial   string    `xml:"Dial"`
	Say    string    `xml:"Say"`
	Hangup *struct{} `xml:"Hangup"`
}

func parseTwiML(t *testing.T, doc string) twimlResponse {
	t.Helper()
	require.True(t, strings.HasPrefix(doc, "<?xml"), doc)

	var resp twimlResponse
	require.NoError(t, xml.Unmarshal([]byte(doc), &resp), doc)
	return resp
}

func TestTwiML(t *testing.T) {
	doc, err := StreamTwiML("wss://runtime/media?a=1&b=2", map[string]string{"number": `+1 "555"`, "config_id": "abc"})
	require.NoError(t, err)
	assert.Contains(t, doc, "a=1&amp;b=2")

	stream := parseTwiML(t, doc).Connect.Stream
	assert.Equal(t, "wss://runtime/media?a=1&b=2", stream.URL)
	require.Len(t, stream.Params, 2)
	assert.Equal(t, "config_id", stream.Params[0].Name)
	assert.Equal(t, "abc", stream.Params[0].Value)
	assert.Equal(t, "number", stream.Params[1].Name)
	assert.Equal(t, `+1 "555"`, stream.Params[1].Value)

	doc, err = TransferTwiML("+15559999")
	require.NoError(t, err)
	assert.Equal(t, "+15559999", parseTwiML(t, doc).Dial)

	doc, err = RejectTwiML("Sorry <you>")
	require.NoError(t, err)
	assert.Contains(t, doc, "Sorry &lt;you")
	reject := parseTwiML(t, doc)
	assert.Equal(t, "Sorry <you>", reject.Say)
	assert.NotNil(t, reject.Hangup)
}
