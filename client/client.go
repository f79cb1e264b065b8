// Package client is the typed HTTP surface of the external business API. All
// entities of record (campaigns, products, designs, orders, payments) live
// behind it; this service only issues request/response calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	inHttp "github.com/0nyxlabs/merchanding/internal/http"
	"github.com/0nyxlabs/merchanding/internal/log"
	"github.com/0nyxlabs/merchanding/internal/otel"
	"github.com/0nyxlabs/merchanding/internal/session"
)

type Client struct {
	baseUrl string
	http    *http.Client
}

func New(baseUrl string) *Client {
	return &Client{baseUrl: baseUrl, http: otelhttp.DefaultClient}
}

// APIError is the business API's error envelope for non-2xx responses.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Code       string `json:"code,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api returned status code=%d with message=%s", e.StatusCode, e.Message)
}

func (cl *Client) do(
	c context.Context,
	method string,
	path string,
	query url.Values,
	body interface{},
	out interface{},
) error {
	c, span := otel.Tracer.Start(c, "Client "+method+" "+path)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Client do").
		Str(log.KeyRequestMethod, method).
		Str(log.KeyRequestURI, path).
		Logger()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			err = fmt.Errorf("failed marshaling request body with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
		reader = bytes.NewBuffer(data)
	}

	u := cl.baseUrl + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(c, method, u, reader)
	if err != nil {
		err = fmt.Errorf("failed creating request with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	if body != nil {
		req.Header.Set(inHttp.HeaderContentType, inHttp.HeaderValueJson)
	}
	if requestId := log.RequestIDFromContext(c); requestId != "" {
		req.Header.Set(inHttp.HeaderRequestID, requestId)
	}
	if sess, ok := session.FromContext(c); ok {
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	resp, err := cl.http.Do(req)
	if err != nil {
		err = fmt.Errorf("failed calling api with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		json.NewDecoder(resp.Body).Decode(apiErr)
		apiErr.StatusCode = resp.StatusCode
		otel.RecordError(apiErr, span)
		logger.Error().Err(apiErr).Msg(apiErr.Error())
		return apiErr
	}

	if out == nil {
		return nil
	}
	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		err = fmt.Errorf("failed decoding response body with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	return nil
}
