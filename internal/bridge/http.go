package bridge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/shelfsync/shelfsync/internal/config"
	"github.com/shelfsync/shelfsync/internal/logger"
	"github.com/shelfsync/shelfsync/internal/utils"
	"github.com/shelfsync/shelfsync/models"
)

// retryDelay paces re-arming the notification long-poll after a transport
// failure, so an unplugged shared store does not turn into a hot loop.
const retryDelay = 5 * time.Second

// pollTimeout bounds one long-poll round trip. It must exceed the hold
// window on the shared side (25s) or every poll would abort client-side
// before the server answers.
const pollTimeout = 35 * time.Second

type httpBridge struct {
	client *utils.HTTPClient

	// pollClient is a second client for the change long-poll: resty timeouts
	// are client-wide, and the per-request timeout would cut the poll short.
	pollClient *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPBridge constructs an HTTP implementation of [SharedStoreBridge].
// It normalises and validates the base URL from cfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPBridge(cfg config.Bridge, logger *logger.Logger) (SharedStoreBridge, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid bridge http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	pollClient := utils.NewHTTPClient()
	pollClient.
		SetBaseURL(baseURL).
		SetTimeout(pollTimeout)

	return &httpBridge{client: client, pollClient: pollClient, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// GetByID implements [SharedStoreBridge]. It is expressed as a query
// selection on sync_id; an empty result maps to ErrSharedProductNotFound.
func (h *httpBridge) GetByID(ctx context.Context, syncID string) (models.SharedProduct, error) {
	products, err := h.query(ctx, "sync_id = ?", syncID)
	if err != nil {
		return models.SharedProduct{}, err
	}
	if len(products) == 0 {
		return models.SharedProduct{}, ErrSharedProductNotFound
	}

	return products[0], nil
}

// GetAll implements [SharedStoreBridge].
func (h *httpBridge) GetAll(ctx context.Context) ([]models.SharedProduct, error) {
	return h.query(ctx, "1 = 1")
}

// GetUpdatedAfter implements [SharedStoreBridge].
func (h *httpBridge) GetUpdatedAfter(ctx context.Context, sinceMilli int64) ([]models.SharedProduct, error) {
	return h.query(ctx, "last_updated > ?", sinceMilli)
}

func (h *httpBridge) query(ctx context.Context, where string, args ...any) ([]models.SharedProduct, error) {
	var response models.QueryResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.QueryRequest{Where: where, Args: args}).
		SetResult(&response).
		Post("/api/products/query")
	if err != nil {
		return nil, fmt.Errorf("%w: query request: %v", ErrBridgeUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return response.Products, nil
}

// UpsertOne implements [SharedStoreBridge].
func (h *httpBridge) UpsertOne(ctx context.Context, product models.SharedProduct) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.UpsertRequest{Product: product}).
		Post("/api/products/insert")
	if err != nil {
		return fmt.Errorf("%w: insert request: %v", ErrBridgeUnavailable, err)
	}

	return mapHTTPError(resp)
}

// UpsertBatch implements [SharedStoreBridge].
func (h *httpBridge) UpsertBatch(ctx context.Context, products []models.SharedProduct) error {
	if len(products) == 0 {
		return nil
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.UpsertBatchRequest{Products: products, Length: len(products)}).
		Post("/api/products/insertBatch")
	if err != nil {
		return fmt.Errorf("%w: insertBatch request: %v", ErrBridgeUnavailable, err)
	}

	return mapHTTPError(resp)
}

// SoftDelete implements [SharedStoreBridge].
func (h *httpBridge) SoftDelete(ctx context.Context, syncID string) (bool, error) {
	var response models.UpsertResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.DeleteRequest{SyncID: syncID}).
		SetResult(&response).
		Post("/api/products/delete")
	if err != nil {
		return false, fmt.Errorf("%w: delete request: %v", ErrBridgeUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}

	return response.OK, nil
}

// Notifications implements [SharedStoreBridge]. It re-arms the long-poll in a
// loop: a 200 with a change hint produces a signal, a 204 means the poll
// timed out quietly, and transport failures back off for retryDelay before
// re-arming.
func (h *httpBridge) Notifications(ctx context.Context) <-chan struct{} {
	out := make(chan struct{}, 1)

	go func() {
		defer close(out)

		for {
			if ctx.Err() != nil {
				return
			}

			changed, err := h.pollChanges(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				h.logger.Debug().
					Str("func", "httpBridge.Notifications").
					Err(err).
					Msg("change poll failed, backing off")

				select {
				case <-time.After(retryDelay):
				case <-ctx.Done():
					return
				}
				continue
			}

			if !changed {
				continue
			}

			select {
			case out <- struct{}{}:
			default:
				// a pending hint already guarantees a sync
			}
		}
	}()

	return out
}

func (h *httpBridge) pollChanges(ctx context.Context) (bool, error) {
	var notification models.ChangeNotification

	resp, err := h.pollClient.R().
		SetContext(ctx).
		SetResult(&notification).
		Get("/api/changes")
	if err != nil {
		return false, fmt.Errorf("%w: changes request: %v", ErrBridgeUnavailable, err)
	}

	if resp.StatusCode() == http.StatusNoContent {
		return false, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}

	return notification.Changed, nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	return fmt.Errorf("%w: http %d: %s", ErrBridgeUnavailable, resp.StatusCode(), body)
}
