// Package widget adapts the hosted payment element to the
// checkout.PaymentConfirmer port. The widget captures and tokenizes card data
// itself; this service only hands it the client secret and reads back the
// attempt's status.
package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/0nyxlabs/merchanding/checkout"
	inHttp "github.com/0nyxlabs/merchanding/internal/http"
	"github.com/0nyxlabs/merchanding/internal/log"
	"github.com/0nyxlabs/merchanding/internal/otel"
)

type Hosted struct {
	confirmUrl string
	http       *http.Client
}

func NewHosted(confirmUrl string) *Hosted {
	return &Hosted{confirmUrl: confirmUrl, http: otelhttp.DefaultClient}
}

type confirmRequest struct {
	ClientSecret string `json:"clientSecret"`
}

type confirmResponse struct {
	Status string `json:"status"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (h *Hosted) ConfirmPayment(
	c context.Context,
	clientSecret string,
) (checkout.PaymentResult, error) {
	c, span := otel.Tracer.Start(c, "Hosted ConfirmPayment")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Hosted ConfirmPayment").
		Logger()

	body, err := json.Marshal(confirmRequest{ClientSecret: clientSecret})
	if err != nil {
		err = fmt.Errorf("failed marshaling confirm request with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return checkout.PaymentResult{}, err
	}

	req, err := http.NewRequestWithContext(c, http.MethodPost, h.confirmUrl, bytes.NewBuffer(body))
	if err != nil {
		err = fmt.Errorf("failed creating confirm request with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return checkout.PaymentResult{}, err
	}
	req.Header.Set(inHttp.HeaderContentType, inHttp.HeaderValueJson)

	logger = logger.With().Str(log.KeyProcess, "confirming payment with widget").Logger()
	logger.Info().Msg("confirming payment with widget")
	resp, err := h.http.Do(req)
	if err != nil {
		err = fmt.Errorf("failed confirming payment with widget with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return checkout.PaymentResult{}, err
	}
	defer resp.Body.Close()

	out := confirmResponse{}
	err = json.NewDecoder(resp.Body).Decode(&out)
	if err != nil {
		err = fmt.Errorf("failed decoding widget response with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return checkout.PaymentResult{}, err
	}
	logger.Info().Msgf("widget returned status=%s", out.Status)

	return checkout.PaymentResult{Status: out.Status, Message: out.Error.Message}, nil
}
