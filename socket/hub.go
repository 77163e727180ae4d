package socket

import (
	"context"
	"encoding/json"
	"time"

	"main/dto"
	"main/model"
	"main/pkg/apperrors"
	"main/pkg/logger"
	"main/utils"
)

const (
	SnapshotType = "SNAPSHOT" // full ordered set for the owner
	ErrorType    = "ERROR"    // snapshot fetch failed; keep previous data
)

// Event is the wire message pushed to subscribers. A SNAPSHOT always
// carries the complete current set, never a diff.
type Event struct {
	Type    string               `json:"type"`
	OwnerID string               `json:"owner_id"`
	// Prompts is always present on SNAPSHOT events, even when empty, so a
	// subscriber can tell "no records" apart from "no data yet".
	Prompts []dto.PromptResponse `json:"prompts"`
	Error   string               `json:"error,omitempty"`
	Code    string               `json:"code,omitempty"`
}

// SnapshotFunc fetches the full ordered prompt set for an owner.
type SnapshotFunc func(ctx context.Context, ownerID string) ([]*model.Prompt, error)

// Hub fans full snapshots out to subscribers. Rooms are keyed by owner id:
// every connection of the same user sees the same stream.
type Hub struct {
	Rooms      map[string]map[*Client]bool
	Register   chan *Client
	Unregister chan *Client

	changes  chan string
	snapshot SnapshotFunc
}

func NewHub(snapshot SnapshotFunc) *Hub {
	return &Hub{
		Rooms:      make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		changes:    make(chan string, 256),
		snapshot:   snapshot,
	}
}

// Notify schedules a re-query and re-broadcast for an owner. Called by the
// prompts service after every successful mutation. Never blocks the caller;
// if the hub is hopelessly backlogged the notification is dropped and the
// next mutation catches subscribers up.
func (h *Hub) Notify(ownerID string) {
	select {
	case h.changes <- ownerID:
	default:
		logger.Sugar.Warnf("Change queue full, dropping notification for owner %s", ownerID)
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			if h.Rooms[client.OwnerID] == nil {
				h.Rooms[client.OwnerID] = make(map[*Client]bool)
			}
			h.Rooms[client.OwnerID][client] = true
			utils.ActiveSubscriptions.Inc()

			// The new subscriber immediately gets the full current set so it
			// never renders from a stale or empty state.
			client.deliver(h.buildEvent(client.OwnerID))

		case client := <-h.Unregister:
			if _, ok := h.Rooms[client.OwnerID][client]; ok {
				delete(h.Rooms[client.OwnerID], client)
				close(client.Send)
				utils.ActiveSubscriptions.Dec()
				if len(h.Rooms[client.OwnerID]) == 0 {
					delete(h.Rooms, client.OwnerID)
					logger.Sugar.Infof("Closed empty room for owner %s", client.OwnerID)
				}
			}

		case ownerID := <-h.changes:
			room := h.Rooms[ownerID]
			if len(room) == 0 {
				continue
			}

			// Marshal once, send to everyone in the room.
			payload := h.buildEvent(ownerID)
			for client := range room {
				client.deliver(payload)
			}
		}
	}
}

// buildEvent queries the current snapshot and marshals it. On failure the
// subscribers get an ERROR event instead; their previous data stays intact
// and the next successful mutation pushes a corrected snapshot.
func (h *Hub) buildEvent(ownerID string) []byte {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	prompts, err := h.snapshot(ctx, ownerID)
	if err != nil {
		logger.Sugar.Errorf("Snapshot fetch failed for owner %s: %v", ownerID, err)
		payload, _ := json.Marshal(Event{
			Type:    ErrorType,
			OwnerID: ownerID,
			Error:   apperrors.UserMessage(err),
			Code:    apperrors.CodeOf(err),
		})
		return payload
	}

	payload, _ := json.Marshal(Event{
		Type:    SnapshotType,
		OwnerID: ownerID,
		Prompts: dto.ToPromptResponses(prompts),
	})
	return payload
}
