package controller

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/0nyxlabs/merchanding/client"
	inHttp "github.com/0nyxlabs/merchanding/internal/http"
	"github.com/0nyxlabs/merchanding/internal/log"
	"github.com/0nyxlabs/merchanding/internal/otel"
)

type OrderController struct {
	client *client.Client
}

func AttachOrderController(mux *mux.Router, client *client.Client) {
	controller := OrderController{client: client}

	router := mux.PathPrefix("/orders").Subrouter()
	router.HandleFunc("", controller.FindUserOrders).Methods(http.MethodGet)
	router.HandleFunc("/{orderId}", controller.FindOrderById).Methods(http.MethodGet)
	router.HandleFunc("/{orderId}/tracking", controller.TrackOrder).Methods(http.MethodGet)
}

func (t OrderController) FindUserOrders(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindUserOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindUserOrders").
		Str(log.KeyProcess, "finding orders").
		Logger()

	logger.Info().Msg("finding orders")
	c = logger.WithContext(c)
	orders, err := t.client.FindUserOrders(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": apiStatusCode(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found orders")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "orders found",
		"data": map[string]interface{}{
			"orders": orders,
		},
	})
}

func (t OrderController) FindOrderById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrderById")
	defer span.End()

	orderId := mux.Vars(r)["orderId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrderById").
		Str(log.KeyOrderID, orderId).
		Str(log.KeyProcess, "finding order").
		Logger()

	logger.Info().Msg("finding order")
	c = logger.WithContext(c)
	order, err := t.client.FindOrderById(c, orderId)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": apiStatusCode(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found order")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "order found",
		"data": map[string]interface{}{
			"order": order,
		},
	})
}

func (t OrderController) TrackOrder(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController TrackOrder")
	defer span.End()

	orderId := mux.Vars(r)["orderId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController TrackOrder").
		Str(log.KeyOrderID, orderId).
		Str(log.KeyProcess, "tracking order").
		Logger()

	logger.Info().Msg("tracking order")
	c = logger.WithContext(c)
	order, err := t.client.TrackOrder(c, orderId)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": apiStatusCode(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("tracked order")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "order tracking found",
		"data": map[string]interface{}{
			"order":    order,
			"tracking": order.TrackingEvents,
		},
	})
}
