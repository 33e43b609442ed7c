package voice

import (
	"errors"
	"fmt"
	"sort"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/twilio/twilio-go/twiml"
)

// callAPI is the part of the Twilio REST client used here.
type callAPI interface {
	CreateCall(params *twilioApi.CreateCallParams) (*twilioApi.ApiV2010Call, error)
	UpdateCall(sid string, params *twilioApi.UpdateCallParams) (*twilioApi.ApiV2010Call, error)
}

// Twilio places calls and redirects live ones. The media stream itself goes
// straight from Twilio to the voice runtime.
type Twilio struct {
	api  callAPI
	from string
}

func NewTwilio(accountSID, authToken, from string) *Twilio {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &Twilio{api: client.Api, from: from}
}

// PlaceCall dials to; Twilio fetches its instructions from twimlURL once the
// call is answered and reports the final call status to statusURL.
func (t *Twilio) PlaceCall(to, twimlURL, statusURL string) (string, error) {
	if to == "" {
		return "", errors.New("phone number is required")
	}

	params := &twilioApi.CreateCallParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetUrl(twimlURL)
	if statusURL != "" {
		params.SetStatusCallback(statusURL)
		params.SetStatusCallbackMethod("POST")
		params.SetStatusCallbackEvent([]string{"completed"})
	}

	call, err := t.api.CreateCall(params)
	if err != nil {
		return "", fmt.Errorf("failed to create call: %w", err)
	}
	if call.Sid == nil {
		return "", nil
	}
	return *call.Sid, nil
}

// Transfer hands a live call to a human at transferTo.
func (t *Twilio) Transfer(callSid, transferTo string) error {
	if transferTo == "" {
		return errors.New("cannot transfer call: no transfer number")
	}

	doc, err := TransferTwiML(transferTo)
	if err != nil {
		return fmt.Errorf("failed to build transfer TwiML: %w", err)
	}

	params := &twilioApi.UpdateCallParams{}
	params.SetTwiml(doc)

	if _, err := t.api.UpdateCall(callSid, params); err != nil {
		return fmt.Errorf("failed to transfer call %s: %w", callSid, err)
	}
	return nil
}

// StreamTwiML connects the call's media to streamURL. Parameters are passed
// to the stream's start event in key order.
func StreamTwiML(streamURL string, params map[string]string) (string, error) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parameters := make([]twiml.Element, 0, len(keys))
	for _, k := range keys {
		parameters = append(parameters, &twiml.VoiceParameter{Name: k, Value: params[k]})
	}

	return twiml.Voice([]twiml.Element{
		&twiml.VoiceConnect{
			InnerElements: []twiml.Element{
				&twiml.VoiceStream{Url: streamURL, InnerElements: parameters},
			},
		},
	})
}

func TransferTwiML(number string) (string, error) {
	return twiml.Voice([]twiml.Element{&twiml.VoiceDial{Number: number}})
}

// RejectTwiML is played to callers that cannot be served.
func RejectTwiML(message string) (string, error) {
	return twiml.Voice([]twiml.Element{
		&twiml.VoiceSay{Message: message},
		&twiml.VoiceHangup{},
	})
}
