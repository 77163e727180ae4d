package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"main/dto"
	"main/model"
	"main/pkg/apperrors"
	"main/pkg/logger"
	"main/socket"

	"github.com/gorilla/websocket"
)

// Snapshot is one complete view of an owner's prompt list, already sorted by
// the server. A non-nil Err means the fetch behind a live update failed;
// consumers keep showing their previous data.
type Snapshot struct {
	Prompts []model.Prompt
	Err     error
}

// Subscription is a live snapshot stream. Close is idempotent and releases
// the underlying connection.
type Subscription struct {
	Snapshots <-chan Snapshot
	stop      func()
}

func NewSubscription(snapshots <-chan Snapshot, stop func()) *Subscription {
	return &Subscription{Snapshots: snapshots, stop: stop}
}

func (s *Subscription) Close() {
	if s.stop != nil {
		s.stop()
	}
}

// PromptGateway is the data boundary the view-models depend on. The API
// gateway below is the production implementation; tests swap in fakes.
type PromptGateway interface {
	Subscribe(ownerID string) (*Subscription, error)
	Create(ctx context.Context, prompt *model.Prompt) (*model.Prompt, error)
	Update(ctx context.Context, id string, prompt *model.Prompt) error
	Delete(ctx context.Context, id string) error
}

// Gateway implements PromptGateway over the REST and websocket surface.
type Gateway struct {
	api *APIClient

	// dial is swappable so tests can feed the stream without a server.
	dial func(wsURL string) (*websocket.Conn, error)
}

func NewGateway(api *APIClient) *Gateway {
	return &Gateway{
		api: api,
		dial: func(wsURL string) (*websocket.Conn, error) {
			conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
			return conn, err
		},
	}
}

// wsEndpoint rewrites the API base URL into the websocket subscribe URL,
// carrying the access token as a query parameter.
func (g *Gateway) wsEndpoint() (string, error) {
	base, err := url.Parse(g.api.BaseURL)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrTransient, err)
	}
	switch base.Scheme {
	case "https":
		base.Scheme = "wss"
	default:
		base.Scheme = "ws"
	}
	base.Path = strings.TrimRight(base.Path, "/") + "/api/prompts/subscribe"
	q := base.Query()
	q.Set("token", g.api.Token())
	base.RawQuery = q.Encode()
	return base.String(), nil
}

// Subscribe opens the live stream for ownerID. The server scopes the stream
// to the token's owner; the ownerID argument guards against subscribing on
// behalf of a stale identity.
func (g *Gateway) Subscribe(ownerID string) (*Subscription, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	endpoint, err := g.wsEndpoint()
	if err != nil {
		return nil, err
	}
	conn, err := g.dial(endpoint)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTransient, err)
	}

	snapshots := make(chan Snapshot, 8)
	go func() {
		defer close(snapshots)
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var event socket.Event
			if err := json.Unmarshal(payload, &event); err != nil {
				logger.Sugar.Warnw("dropping malformed snapshot event", "error", err)
				continue
			}
			snapshots <- decodeEvent(&event)
		}
	}()

	return NewSubscription(snapshots, func() {
		conn.Close()
	}), nil
}

func decodeEvent(event *socket.Event) Snapshot {
	if event.Type == socket.ErrorType {
		return Snapshot{Err: apperrors.FromCode(event.Code)}
	}
	prompts := make([]model.Prompt, 0, len(event.Prompts))
	for _, p := range event.Prompts {
		prompts = append(prompts, model.Prompt{
			ID:        p.ID,
			OwnerID:   event.OwnerID,
			Title:     p.Title,
			Content:   p.Content,
			Tags:      p.Tags,
			ImageURL:  p.ImageURL,
			CreatedAt: p.CreatedAt,
		})
	}
	return Snapshot{Prompts: prompts}
}

func (g *Gateway) Create(ctx context.Context, prompt *model.Prompt) (*model.Prompt, error) {
	return g.api.CreatePrompt(ctx, dto.PromptRequest{
		Title:    prompt.Title,
		Content:  prompt.Content,
		Tags:     prompt.Tags,
		ImageURL: prompt.ImageURL,
	})
}

// Update sends only the editable fields. Ownership and creation time are
// echoed from the stored record by the server, so a stale client cannot
// overwrite them.
func (g *Gateway) Update(ctx context.Context, id string, prompt *model.Prompt) error {
	_, err := g.api.UpdatePrompt(ctx, id, dto.PromptRequest{
		Title:    prompt.Title,
		Content:  prompt.Content,
		Tags:     prompt.Tags,
		ImageURL: prompt.ImageURL,
	})
	return err
}

func (g *Gateway) Delete(ctx context.Context, id string) error {
	return g.api.DeletePrompt(ctx, id)
}
