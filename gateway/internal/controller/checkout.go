package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/0nyxlabs/merchanding/checkout"
	"github.com/0nyxlabs/merchanding/gateway/internal/service"
	"github.com/0nyxlabs/merchanding/gateway/pkg/response"
	inErrors "github.com/0nyxlabs/merchanding/internal/errors"
	inHttp "github.com/0nyxlabs/merchanding/internal/http"
	"github.com/0nyxlabs/merchanding/internal/log"
	"github.com/0nyxlabs/merchanding/internal/otel"
	"github.com/0nyxlabs/merchanding/internal/session"
)

type CheckoutController struct {
	service *service.CheckoutService
}

func AttachCheckoutController(mux *mux.Router, service *service.CheckoutService) {
	controller := CheckoutController{service: service}

	router := mux.PathPrefix("/checkout").Subrouter()
	router.HandleFunc("", controller.BeginCheckout).Methods(http.MethodPost)
	router.HandleFunc("", controller.FindCheckout).Methods(http.MethodGet)
	router.HandleFunc("", controller.DiscardCheckout).Methods(http.MethodDelete)
	router.HandleFunc("/shipping", controller.SubmitShipping).Methods(http.MethodPost)
	router.HandleFunc("/payment", controller.ConfirmPayment).Methods(http.MethodPost)
}

func newCheckoutResponse(state checkout.State) response.Checkout {
	resp := response.Checkout{Step: state.Step()}
	if pending, ok := state.(checkout.AwaitingPayment); ok {
		resp.ClientSecret = pending.ClientSecret
		resp.OrderId = pending.OrderID
	}
	return resp
}

func checkoutStatusCode(err error) int {
	switch {
	case errors.Is(err, inErrors.ErrSubmissionInFlight),
		errors.Is(err, inErrors.ErrPaymentPending),
		errors.Is(err, inErrors.ErrPaymentNotReady):
		return http.StatusConflict
	case errors.Is(err, inErrors.ErrPaymentFailed):
		return http.StatusPaymentRequired
	default:
		return http.StatusBadRequest
	}
}

func (t CheckoutController) BeginCheckout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController BeginCheckout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutController BeginCheckout").
		Logger()

	sess, ok := session.FromContext(c)
	if !ok {
		err := inErrors.ErrEmptyAuth
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, sess.UserID.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "beginning checkout").Logger()
	logger.Info().Msg("beginning checkout")
	c = logger.WithContext(c)
	orchestrator, err := t.service.Begin(c, sess.UserID)
	if err != nil {
		err = fmt.Errorf("failed beginning checkout with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	state := orchestrator.State()
	logger.Info().Str(log.KeyCheckoutStep, state.Step()).Msg("began checkout")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "checkout session ready",
		"data": map[string]interface{}{
			"checkout": newCheckoutResponse(state),
		},
	})
}

func (t CheckoutController) FindCheckout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController FindCheckout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutController FindCheckout").
		Logger()

	sess, ok := session.FromContext(c)
	if !ok {
		err := inErrors.ErrEmptyAuth
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, sess.UserID.String()).Logger()

	orchestrator, ok := t.service.Current(sess.UserID)
	if !ok {
		logger.Info().Msg("no checkout session")
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusNotFound,
			"message":    "no checkout session",
		})
		return
	}
	state := orchestrator.State()
	logger.Info().Str(log.KeyCheckoutStep, state.Step()).Msg("found checkout session")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "checkout session found",
		"data": map[string]interface{}{
			"checkout": newCheckoutResponse(state),
		},
	})
}

func (t CheckoutController) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController SubmitShipping")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutController SubmitShipping").
		Logger()

	sess, ok := session.FromContext(c)
	if !ok {
		err := inErrors.ErrEmptyAuth
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, sess.UserID.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := checkout.ShippingAddress{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	orchestrator, ok := t.service.Current(sess.UserID)
	if !ok {
		logger.Warn().Msg("no checkout session")
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusNotFound,
			"message":    "no checkout session",
		})
		return
	}

	logger = logger.With().Str(log.KeyProcess, "submitting shipping address").Logger()
	logger.Info().Msg("submitting shipping address")
	c = logger.WithContext(c)
	if err := orchestrator.SubmitShipping(c, reqBody); err != nil {
		err = fmt.Errorf("failed submitting shipping address with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": checkoutStatusCode(err),
			"message":    err.Error(),
		})
		return
	}
	state := orchestrator.State()
	logger.Info().Str(log.KeyCheckoutStep, state.Step()).Msg("submitted shipping address")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully submitted shipping address",
		"data": map[string]interface{}{
			"checkout": newCheckoutResponse(state),
		},
	})
}

func (t CheckoutController) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController ConfirmPayment")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutController ConfirmPayment").
		Logger()

	sess, ok := session.FromContext(c)
	if !ok {
		err := inErrors.ErrEmptyAuth
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, sess.UserID.String()).Logger()

	orchestrator, ok := t.service.Current(sess.UserID)
	if !ok {
		logger.Warn().Msg("no checkout session")
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusNotFound,
			"message":    "no checkout session",
		})
		return
	}

	logger = logger.With().Str(log.KeyProcess, "confirming payment").Logger()
	logger.Info().Msg("confirming payment")
	c = logger.WithContext(c)
	redirect, err := orchestrator.ConfirmPayment(c)
	if err != nil {
		err = fmt.Errorf("failed confirming payment with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": checkoutStatusCode(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("confirmed payment")

	// The checkout journey is complete; the next session starts fresh.
	t.service.Discard(c, sess.UserID)

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully confirmed payment",
		"data": map[string]interface{}{
			"redirectTo": redirect,
		},
	})
}

func (t CheckoutController) DiscardCheckout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController DiscardCheckout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutController DiscardCheckout").
		Logger()

	sess, ok := session.FromContext(c)
	if !ok {
		err := inErrors.ErrEmptyAuth
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, sess.UserID.String()).Logger()

	c = logger.WithContext(c)
	t.service.Discard(c, sess.UserID)

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "discarded checkout session",
	})
}
