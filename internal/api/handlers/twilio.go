package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"phonenix/internal/store"
)

type TransferRequest struct {
	TransferTo string `json:"transfer_to"`
}

type TransferResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	CallSid string `json:"callSid"`
}

// HandleTransferCall hands a live call to a human. The number comes from the
// request or, failing that, from the transfer_to the call was placed with.
func HandleTransferCall(phone Telephony, convs *Conversations) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callSid := r.PathValue("sid")

		var req TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeErrorResponse(w, http.StatusBadRequest, "invalid request body", err)
			return
		}

		if conv, ok := convs.Load(callSid); ok && req.TransferTo == "" {
			req.TransferTo = conv.TransferTo
		}
		if req.TransferTo == "" {
			writeErrorResponse(w, http.StatusBadRequest, "cannot transfer call", nil)
			return
		}

		zap.L().Info("Transferring call", zap.String("call_sid", callSid), zap.String("transfer_to", req.TransferTo))

		if err := phone.Transfer(callSid, req.TransferTo); err != nil {
			zap.L().Error("Error transferring call", zap.String("call_sid", callSid), zap.Error(err))
			writeErrorResponse(w, http.StatusBadGateway, "failed to transfer call", err)
			return
		}

		writeJSON(w, http.StatusOK, TransferResponse{
			Success: true,
			Message: "Call transferred",
			CallSid: callSid,
		})
	})
}

// finalCallStatuses are the CallStatus values after which Twilio sends no
// further callbacks for a call.
var finalCallStatuses = map[string]bool{
	"completed": true,
	"busy":      true,
	"failed":    true,
	"no-answer": true,
	"canceled":  true,
}

// HandleCallStatus receives Twilio status callbacks. A finished call leaves
// the registry and takes any config saved for it along.
func HandleCallStatus(s store.Store, convs *Conversations) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}

		callSid := r.FormValue("CallSid")
		status := r.FormValue("CallStatus")
		zap.L().Info("Call status", zap.String("call_sid", callSid), zap.String("status", status))

		if finalCallStatuses[status] {
			if conv, ok := convs.LoadAndDelete(callSid); ok && conv.OwnsConfig {
				releaseConfig(r.Context(), s, conv.ConfigID)
			}
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
