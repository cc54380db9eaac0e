package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"confadmin/internal/domain"
	"confadmin/internal/metrics"
)

var paths = map[string]string{
	domain.OpCreateConference:        "/api/createconference",
	domain.OpChangeActiveConference:  "/api/changeactiveconf",
	domain.OpChangeDefaultConference: "/api/changedefaultconf",
	domain.OpUpdateConference:        "/api/updateconference",
	domain.OpChangeTimeSlot:          "/api/changetimeslot",
	domain.OpAddRoom:                 "/api/addRoom",
	domain.OpUpdateConferenceRooms:   "/api/updateconfrooms",
	domain.OpGetAllConferences:       "/api/getallconferences",
}

// maxErrorBodySize bounds how much of a failed response is kept in a BackendError.
const maxErrorBodySize = 4 << 10

type httpClient struct {
	baseURL string
	client  *http.Client
	tokens  domain.TokenIssuer
	logger  *slog.Logger
}

// NewHTTPClient returns a ConferenceBackend that calls the conference API at baseURL.
// tokens may be nil, in which case requests carry no Authorization header.
func NewHTTPClient(baseURL string, client *http.Client, tokens domain.TokenIssuer, logger *slog.Logger) domain.ConferenceBackend {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &httpClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
		tokens:  tokens,
		logger:  logger,
	}
}

func (c *httpClient) CreateConference(ctx context.Context, conf *domain.Conference) (*domain.Conference, error) {
	return c.postConference(ctx, domain.OpCreateConference, conf)
}

func (c *httpClient) ChangeActiveConference(ctx context.Context, conf *domain.Conference) (*domain.Conference, error) {
	return c.postConference(ctx, domain.OpChangeActiveConference, conf)
}

func (c *httpClient) ChangeDefaultConference(ctx context.Context, conf *domain.Conference) (*domain.Conference, error) {
	return c.postConference(ctx, domain.OpChangeDefaultConference, conf)
}

func (c *httpClient) UpdateConference(ctx context.Context, req domain.UpdateConferenceRequest) (*domain.Conference, error) {
	return c.postConference(ctx, domain.OpUpdateConference, req)
}

func (c *httpClient) ChangeTimeSlot(ctx context.Context, conf *domain.Conference) (*domain.Conference, error) {
	return c.postConference(ctx, domain.OpChangeTimeSlot, conf)
}

func (c *httpClient) AddRoom(ctx context.Context, conf *domain.Conference) (*domain.Conference, error) {
	return c.postConference(ctx, domain.OpAddRoom, conf)
}

func (c *httpClient) UpdateConferenceRooms(ctx context.Context, conf *domain.Conference) (*domain.Conference, error) {
	return c.postConference(ctx, domain.OpUpdateConferenceRooms, conf)
}

func (c *httpClient) GetAllConferences(ctx context.Context) ([]*domain.Conference, error) {
	header, err := baseHeader(ctx, c.tokens)
	if err != nil {
		return nil, c.handleError(ctx, domain.OpGetAllConferences, err)
	}
	var out []*domain.Conference
	if _, err := c.do(ctx, domain.OpGetAllConferences, http.MethodGet, nil, header, &out); err != nil {
		return nil, err
	}
	for i, conf := range out {
		if conf == nil {
			return nil, c.handleError(ctx, domain.OpGetAllConferences, fmt.Errorf("failed to decode response: null conference at index %d", i))
		}
	}
	if out == nil {
		out = []*domain.Conference{}
	}
	return out, nil
}

// postConference sends payload and decodes the response as a conference. A response with
// an empty body yields a nil conference.
func (c *httpClient) postConference(ctx context.Context, op string, payload any) (*domain.Conference, error) {
	pkg, err := packageForPost(ctx, payload, c.tokens)
	if err != nil {
		return nil, c.handleError(ctx, op, err)
	}
	var conf domain.Conference
	decoded, err := c.do(ctx, op, http.MethodPost, pkg.Body, pkg.Header, &conf)
	if err != nil {
		return nil, err
	}
	if !decoded {
		return nil, nil
	}
	return &conf, nil
}

// do sends the request and decodes a 2xx body into out, reporting whether a body was present.
func (c *httpClient) do(ctx context.Context, op, method string, body []byte, header http.Header, out any) (bool, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+paths[op], reader)
	if err != nil {
		return false, c.handleError(ctx, op, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header = header

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		return false, c.handleError(ctx, op, fmt.Errorf("failed to reach backend: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return false, c.handleError(ctx, op, &domain.BackendError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		})
	}

	decoded, err := parseJSON(resp.Body, out)
	if err != nil {
		return false, c.handleError(ctx, op, err)
	}
	metrics.BackendRequestsTotal.WithLabelValues(op, "ok").Inc()
	return decoded, nil
}

// handleError logs and counts a failed backend call and returns it to the caller.
// Backend errors already name the operation; other errors are prefixed with it.
func (c *httpClient) handleError(ctx context.Context, op string, err error) error {
	metrics.BackendRequestsTotal.WithLabelValues(op, "error").Inc()
	c.logger.ErrorContext(ctx, "backend request failed", "operation", op, "err", err)
	var backendErr *domain.BackendError
	if errors.As(err, &backendErr) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
