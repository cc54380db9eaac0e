package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"confadmin/config"
	"confadmin/internal/domain"

	"github.com/google/uuid"
)

const (
	serviceTokenSubject = "confadmin"
	serviceTokenExpiry  = 5 * time.Minute
)

// postPackage is a serialized request body together with the headers that go with it.
type postPackage struct {
	Body   []byte
	Header http.Header
}

// packageForPost serializes payload as JSON and builds the request headers. The request
// ID comes from ctx when the caller set one, otherwise a new one is generated.
func packageForPost(ctx context.Context, payload any, tokens domain.TokenIssuer) (postPackage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return postPackage{}, fmt.Errorf("failed to encode request: %w", err)
	}
	header, err := baseHeader(ctx, tokens)
	if err != nil {
		return postPackage{}, err
	}
	header.Set("Content-Type", "application/json")
	return postPackage{Body: body, Header: header}, nil
}

func baseHeader(ctx context.Context, tokens domain.TokenIssuer) (http.Header, error) {
	header := make(http.Header)
	header.Set("Accept", "application/json")
	requestID, ok := config.RequestID(ctx)
	if !ok {
		requestID = uuid.NewString()
	}
	header.Set("X-Request-ID", requestID)
	if tokens != nil {
		token, err := tokens.Issue(serviceTokenSubject, serviceTokenExpiry)
		if err != nil {
			return nil, fmt.Errorf("failed to issue service token: %w", err)
		}
		header.Set("Authorization", "Bearer "+token)
	}
	return header, nil
}

// parseJSON decodes a response body into out. An empty body leaves out untouched and
// reports false.
func parseJSON(r io.Reader, out any) (bool, error) {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("failed to decode response: %w", err)
	}
	return true, nil
}
