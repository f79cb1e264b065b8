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
	"github.com/0nyxlabs/merchanding/internal/otel"
)

type DesignController struct {
	client *client.Client
}

func AttachDesignController(mux *mux.Router, client *client.Client) {
	controller := DesignController{client: client}

	router := mux.PathPrefix("/designs").Subrouter()
	router.HandleFunc("", controller.FindUserDesigns).Methods(http.MethodGet)
	router.HandleFunc("", controller.CreateDesign).Methods(http.MethodPost)
	router.HandleFunc("/{designId}", controller.FindDesignById).Methods(http.MethodGet)
	router.HandleFunc("/{designId}", controller.DeleteDesign).Methods(http.MethodDelete)
}

func (t DesignController) FindUserDesigns(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "DesignController FindUserDesigns")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "DesignController FindUserDesigns").
		Str(log.KeyProcess, "finding designs").
		Logger()

	logger.Info().Msg("finding designs")
	c = logger.WithContext(c)
	designs, err := t.client.FindUserDesigns(c)
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

func (t DesignController) FindDesignById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "DesignController FindDesignById")
	defer span.End()

	designId := mux.Vars(r)["designId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "DesignController FindDesignById").
		Str(log.KeyDesignID, designId).
		Str(log.KeyProcess, "finding design").
		Logger()

	logger.Info().Msg("finding design")
	c = logger.WithContext(c)
	design, err := t.client.FindDesignById(c, designId)
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
	logger.Info().Msg("found design")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "design found",
		"data": map[string]interface{}{
			"design": design,
		},
	})
}

func (t DesignController) CreateDesign(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "DesignController CreateDesign")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "DesignController CreateDesign").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := client.CreateDesign{}
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

	logger = logger.With().Str(log.KeyProcess, "creating design").Logger()
	logger.Info().Msg("creating design")
	c = logger.WithContext(c)
	design, err := t.client.CreateDesign(c, reqBody)
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
	logger = logger.With().Str(log.KeyDesignID, design.ID).Logger()
	logger.Info().Msg("created design")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "successfully created design",
		"data": map[string]interface{}{
			"design": design,
		},
	})
}

func (t DesignController) DeleteDesign(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "DesignController DeleteDesign")
	defer span.End()

	designId := mux.Vars(r)["designId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "DesignController DeleteDesign").
		Str(log.KeyDesignID, designId).
		Str(log.KeyProcess, "deleting design").
		Logger()

	logger.Info().Msg("deleting design")
	c = logger.WithContext(c)
	if err := t.client.DeleteDesign(c, designId); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": apiStatusCode(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("deleted design")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully deleted design",
	})
}
