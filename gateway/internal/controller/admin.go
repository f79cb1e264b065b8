package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/0nyxlabs/merchanding/client"
	inHttp "github.com/0nyxlabs/merchanding/internal/http"
	"github.com/0nyxlabs/merchanding/internal/log"
	"github.com/0nyxlabs/merchanding/internal/middleware"
	"github.com/0nyxlabs/merchanding/internal/otel"
)

type AdminController struct {
	client *client.Client
}

func AttachAdminController(mux *mux.Router, client *client.Client) {
	controller := AdminController{client: client}

	router := mux.PathPrefix("/admin").Subrouter()
	router.Use(middleware.Admin)
	router.HandleFunc("/orders", controller.FindOrders).Methods(http.MethodGet)
	router.HandleFunc("/orders/{orderId}", controller.FindOrderById).Methods(http.MethodGet)
	router.HandleFunc("/orders/{orderId}/status", controller.UpdateOrderStatus).
		Methods(http.MethodPatch)
	router.HandleFunc("/designs", controller.FindDesigns).Methods(http.MethodGet)
	router.HandleFunc("/designs/{designId}/review", controller.ReviewDesign).
		Methods(http.MethodPatch)
	router.HandleFunc("/campaigns", controller.FindCampaigns).Methods(http.MethodGet)
	router.HandleFunc("/campaigns", controller.CreateCampaign).Methods(http.MethodPost)
	router.HandleFunc("/campaigns/{campaignId}", controller.UpdateCampaign).
		Methods(http.MethodPatch)
	router.HandleFunc("/campaigns/{campaignId}", controller.DeleteCampaign).
		Methods(http.MethodDelete)
	router.HandleFunc("/dashboard/stats", controller.DashboardStats).Methods(http.MethodGet)
}

func (t AdminController) FindOrders(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminController FindOrders").
		Str(log.KeyProcess, "finding orders").
		Logger()

	logger.Info().Msg("finding orders")
	c = logger.WithContext(c)
	page, err := t.client.AdminFindOrders(c, searchParamsFromQuery(r))
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
			"orders": page.Data,
			"meta":   page.Meta,
		},
	})
}

func (t AdminController) FindOrderById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController FindOrderById")
	defer span.End()

	orderId := mux.Vars(r)["orderId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminController FindOrderById").
		Str(log.KeyOrderID, orderId).
		Str(log.KeyProcess, "finding order").
		Logger()

	logger.Info().Msg("finding order")
	c = logger.WithContext(c)
	order, err := t.client.AdminFindOrderById(c, orderId)
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

func (t AdminController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController UpdateOrderStatus")
	defer span.End()

	orderId := mux.Vars(r)["orderId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminController UpdateOrderStatus").
		Str(log.KeyOrderID, orderId).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := client.UpdateOrderStatus{}
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

	logger = logger.With().Str(log.KeyProcess, "updating order status").Logger()
	logger.Info().Msg("updating order status")
	c = logger.WithContext(c)
	order, err := t.client.AdminUpdateOrderStatus(c, orderId, reqBody)
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
	logger.Info().Msg("updated order status")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully updated order status",
		"data": map[string]interface{}{
			"order": order,
		},
	})
}

func (t AdminController) FindDesigns(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController FindDesigns")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminController FindDesigns").
		Str(log.KeyProcess, "finding designs").
		Logger()

	logger.Info().Msg("finding designs")
	c = logger.WithContext(c)
	designs, err := t.client.AdminFindDesigns(c, searchParamsFromQuery(r))
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
	logger.Info().Msg("found designs")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "designs found",
		"data": map[string]interface{}{
			"designs": designs,
		},
	})
}

func (t AdminController) ReviewDesign(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController ReviewDesign")
	defer span.End()

	designId := mux.Vars(r)["designId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminController ReviewDesign").
		Str(log.KeyDesignID, designId).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := client.ReviewDesign{}
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

	logger = logger.With().Str(log.KeyProcess, "reviewing design").Logger()
	logger.Info().Msg("reviewing design")
	c = logger.WithContext(c)
	design, err := t.client.AdminReviewDesign(c, designId, reqBody)
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
	logger.Info().Msg("reviewed design")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully reviewed design",
		"data": map[string]interface{}{
			"design": design,
		},
	})
}

func (t AdminController) FindCampaigns(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController FindCampaigns")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminController FindCampaigns").
		Str(log.KeyProcess, "finding campaigns").
		Logger()

	logger.Info().Msg("finding campaigns")
	c = logger.WithContext(c)
	campaigns, err := t.client.AdminFindCampaigns(c)
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
	logger.Info().Msg("found campaigns")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "campaigns found",
		"data": map[string]interface{}{
			"campaigns": campaigns,
		},
	})
}

func (t AdminController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController CreateCampaign")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminController CreateCampaign").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := client.CreateCampaign{}
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

	logger = logger.With().Str(log.KeyProcess, "creating campaign").Logger()
	logger.Info().Msg("creating campaign")
	c = logger.WithContext(c)
	campaign, err := t.client.AdminCreateCampaign(c, reqBody)
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
	logger = logger.With().Str(log.KeyCampaignID, campaign.ID).Logger()
	logger.Info().Msg("created campaign")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "successfully created campaign",
		"data": map[string]interface{}{
			"campaign": campaign,
		},
	})
}

func (t AdminController) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController UpdateCampaign")
	defer span.End()

	campaignId := mux.Vars(r)["campaignId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminController UpdateCampaign").
		Str(log.KeyCampaignID, campaignId).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := client.UpdateCampaign{}
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

	logger = logger.With().Str(log.KeyProcess, "updating campaign").Logger()
	logger.Info().Msg("updating campaign")
	c = logger.WithContext(c)
	campaign, err := t.client.AdminUpdateCampaign(c, campaignId, reqBody)
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
	logger.Info().Msg("updated campaign")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully updated campaign",
		"data": map[string]interface{}{
			"campaign": campaign,
		},
	})
}

func (t AdminController) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController DeleteCampaign")
	defer span.End()

	campaignId := mux.Vars(r)["campaignId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminController DeleteCampaign").
		Str(log.KeyCampaignID, campaignId).
		Str(log.KeyProcess, "deleting campaign").
		Logger()

	logger.Info().Msg("deleting campaign")
	c = logger.WithContext(c)
	if err := t.client.AdminDeleteCampaign(c, campaignId); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": apiStatusCode(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("deleted campaign")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully deleted campaign",
	})
}

func (t AdminController) DashboardStats(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController DashboardStats")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminController DashboardStats").
		Str(log.KeyProcess, "finding dashboard stats").
		Logger()

	logger.Info().Msg("finding dashboard stats")
	c = logger.WithContext(c)
	stats, err := t.client.AdminDashboardStats(c)
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
	logger.Info().Msg("found dashboard stats")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "dashboard stats found",
		"data": map[string]interface{}{
			"stats": stats,
		},
	})
}
