package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"donationrelay/internal/domain"
)

const messageBodyTooLarge = "Request body too large."

// Donate handles POST /api/donate. Only application/json bodies are read;
// any other content type, like an undecodable body, counts as a submission
// with every field missing.
func (a *App) Donate(w http.ResponseWriter, r *http.Request) {
	if !isJSON(r) {
		a.result(w, http.StatusBadRequest, domain.MessageFieldsRequired)
		return
	}

	var req domain.DonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			a.result(w, http.StatusRequestEntityTooLarge, messageBodyTooLarge)
			return
		}
		a.result(w, http.StatusBadRequest, domain.MessageFieldsRequired)
		return
	}

	out := a.Relay.Submit(r.Context(), req)
	a.json(w, out.Status, out.Result)
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}
