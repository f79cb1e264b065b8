package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/0nyxlabs/merchanding/cart"
	"github.com/0nyxlabs/merchanding/gateway/internal/service"
	"github.com/0nyxlabs/merchanding/gateway/pkg/request"
	"github.com/0nyxlabs/merchanding/gateway/pkg/response"
	inErrors "github.com/0nyxlabs/merchanding/internal/errors"
	inHttp "github.com/0nyxlabs/merchanding/internal/http"
	"github.com/0nyxlabs/merchanding/internal/log"
	"github.com/0nyxlabs/merchanding/internal/otel"
	"github.com/0nyxlabs/merchanding/internal/session"
)

type CartController struct {
	service *service.CartService
}

func AttachCartController(mux *mux.Router, service *service.CartService) {
	controller := CartController{service: service}

	router := mux.PathPrefix("/cart").Subrouter()
	router.HandleFunc("", controller.FindCart).Methods(http.MethodGet)
	router.HandleFunc("", controller.ClearCart).Methods(http.MethodDelete)
	router.HandleFunc("/items", controller.AddCartItem).Methods(http.MethodPost)
	router.HandleFunc("/items/{variantId}", controller.UpdateCartItem).Methods(http.MethodPatch)
	router.HandleFunc("/items/{variantId}", controller.RemoveCartItem).Methods(http.MethodDelete)
}

func (t CartController) store(
	w http.ResponseWriter,
	r *http.Request,
) (*cart.Store, zerolog.Logger, bool) {
	c := r.Context()
	logger := zerolog.Ctx(c).With().Logger()

	sess, ok := session.FromContext(c)
	if !ok {
		err := inErrors.ErrEmptyAuth
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return nil, logger, false
	}
	logger = logger.With().Str(log.KeyUserID, sess.UserID.String()).Logger()

	store, err := t.service.StoreFor(c, sess.UserID)
	if err != nil {
		err = fmt.Errorf("failed getting cart with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return nil, logger, false
	}
	return store, logger, true
}

func (t CartController) FindCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCart")
	defer span.End()
	r = r.WithContext(c)

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindCart").
		Logger()
	r = r.WithContext(logger.WithContext(c))

	store, logger, ok := t.store(w, r)
	if !ok {
		return
	}

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart found",
		"data": map[string]interface{}{
			"cart": response.NewCart(store.Items()),
		},
	})
	logger.Info().Msg("found cart")
}

func (t CartController) AddCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddCartItem").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.AddCartItem{}
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

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	r = r.WithContext(logger.WithContext(c))
	store, logger, ok := t.store(w, r)
	if !ok {
		return
	}

	logger = logger.With().
		Str(log.KeyProcess, "adding cart item").
		Str(log.KeyVariantID, reqBody.VariantId).
		Logger()
	logger.Info().Msg("adding cart item")
	c = logger.WithContext(c)
	err := store.AddItem(c, cart.Item{
		ID:        reqBody.VariantId,
		Name:      reqBody.Name,
		Price:     reqBody.Price,
		Quantity:  reqBody.Quantity,
		Image:     reqBody.Image,
		VariantID: reqBody.VariantId,
	})
	if err != nil {
		// The in-memory mutation applied; a persistence failure must not cost
		// the user their cart action.
		err = fmt.Errorf("failed persisting cart item with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("added cart item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully added cart item",
		"data": map[string]interface{}{
			"cart": response.NewCart(store.Items()),
		},
	})
}

func (t CartController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController UpdateCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController UpdateCartItem").
		Logger()

	pathValues := mux.Vars(r)
	variantId := pathValues["variantId"]
	logger = logger.With().
		Str(log.KeyVariantID, variantId).
		Any(log.KeyPathValues, pathValues).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.UpdateCartItem{}
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

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	r = r.WithContext(logger.WithContext(c))
	store, logger, ok := t.store(w, r)
	if !ok {
		return
	}

	logger = logger.With().
		Str(log.KeyProcess, "updating cart item quantity").
		Int32(log.KeyQuantity, reqBody.Quantity).
		Logger()
	logger.Info().Msg("updating cart item quantity")
	c = logger.WithContext(c)
	err := store.UpdateQuantity(c, variantId, reqBody.Quantity)
	if err != nil {
		err = fmt.Errorf("failed persisting cart item quantity with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("updated cart item quantity")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully updated cart item",
		"data": map[string]interface{}{
			"cart": response.NewCart(store.Items()),
		},
	})
}

func (t CartController) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveCartItem").
		Logger()

	pathValues := mux.Vars(r)
	variantId := pathValues["variantId"]
	logger = logger.With().
		Str(log.KeyVariantID, variantId).
		Any(log.KeyPathValues, pathValues).
		Logger()

	r = r.WithContext(logger.WithContext(c))
	store, logger, ok := t.store(w, r)
	if !ok {
		return
	}

	logger = logger.With().Str(log.KeyProcess, "removing cart item").Logger()
	logger.Info().Msg("removing cart item")
	c = logger.WithContext(c)
	err := store.RemoveItem(c, variantId)
	if err != nil {
		err = fmt.Errorf("failed persisting cart item removal with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("removed cart item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully removed cart item",
		"data": map[string]interface{}{
			"cart": response.NewCart(store.Items()),
		},
	})
}

func (t CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController ClearCart").
		Logger()

	r = r.WithContext(logger.WithContext(c))
	store, logger, ok := t.store(w, r)
	if !ok {
		return
	}

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	c = logger.WithContext(c)
	err := store.Clear(c)
	if err != nil {
		err = fmt.Errorf("failed persisting cart clear with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("cleared cart")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully cleared cart",
		"data": map[string]interface{}{
			"cart": response.NewCart(store.Items()),
		},
	})
}
