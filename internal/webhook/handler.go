package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/cexll/boardrelay/internal/relay"
	"github.com/gorilla/mux"
)

// ParentUpdater recomputes and writes a parent item's status.
type ParentUpdater interface {
	Update(ctx context.Context, itemID string) (*relay.UpdateResult, error)
}

// StartNotifier announces that a user started an item.
type StartNotifier interface {
	Notify(ctx context.Context, userID, itemID string) error
}

// Handler serves the automation action endpoints.
type Handler struct {
	updater  ParentUpdater
	notifier StartNotifier
}

// NewHandler creates a new automation handler
func NewHandler(updater ParentUpdater, notifier StartNotifier) *Handler {
	return &Handler{
		updater:  updater,
		notifier: notifier,
	}
}

// RegisterRoutes mounts the action endpoints under /api and returns the
// subrouter so callers can attach middleware. OPTIONS is matched so the CORS
// middleware can answer preflight requests.
func (h *Handler) RegisterRoutes(r *mux.Router) *mux.Router {
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/calculate-and-update-parent", h.CalculateAndUpdateParent).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/update-webhook", h.UpdateWebhook).Methods(http.MethodPost, http.MethodOptions)
	return api
}

// CalculateAndUpdateParent recomputes the parent status for the item in
// payload.inputFields.itemId and writes it back.
func (h *Handler) CalculateAndUpdateParent(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAutomationRequest(r)
	if err != nil {
		log.Printf("[Webhook] Error parsing request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.updater.Update(r.Context(), req.Payload.InputFields.ItemID.String())
	switch {
	case err == nil:
	case errors.Is(err, relay.ErrMissingField):
		http.Error(w, "itemId is required.", http.StatusBadRequest)
		return
	case errors.Is(err, relay.ErrItemNotFound):
		http.Error(w, "No data was found in item.", http.StatusNotFound)
		return
	case errors.Is(err, relay.ErrStatusColumnNotFound):
		http.Error(w, "No status column found in the parent item.", http.StatusNotFound)
		return
	default:
		log.Printf("[Webhook] Error calculating and updating parent status: %v", err)
		http.Error(w, "Error calculating and updating parent status", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, CalculateResponse{
		Progress:     result.Progress,
		ParentStatus: result.ParentStatus.String(),
		Message:      result.Message,
	})
}

// UpdateWebhook posts a "started working" chat notification for
// payload.inputFields.userId and payload.inputFields.itemId.
func (h *Handler) UpdateWebhook(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAutomationRequest(r)
	if err != nil {
		log.Printf("[Webhook] Error parsing request: %v", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body."})
		return
	}

	fields := req.Payload.InputFields
	err = h.notifier.Notify(r.Context(), fields.UserID.String(), fields.ItemID.String())
	if err == nil {
		writeJSON(w, http.StatusOK, MessageResponse{Message: "Notification sent successfully."})
		return
	}

	if errors.Is(err, relay.ErrMissingField) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "userId and itemId are required fields."})
		return
	}
	if errors.Is(err, relay.ErrItemNotFound) {
		http.Error(w, "No data was found for item.", http.StatusNotFound)
		return
	}
	if errors.Is(err, relay.ErrUserNotFound) {
		http.Error(w, "No data was found for user.", http.StatusNotFound)
		return
	}

	op, _ := relay.IsDownstream(err)
	switch op {
	case relay.OpLookup:
		log.Printf("[Webhook] Error fetching item and user: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch item or user."})
	case relay.OpDeliver:
		log.Printf("[Webhook] Error sending notification: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to send Slack notification."})
	default:
		log.Printf("[Webhook] Unexpected notification error: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error."})
	}
}

// decodeAutomationRequest parses the request body. An empty body decodes to
// an empty request so the missing-field check reports it.
func decodeAutomationRequest(r *http.Request) (*AutomationRequest, error) {
	var req AutomationRequest
	if r.Body == nil {
		return &req, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &req, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Webhook] Error writing response: %v", err)
	}
}
