package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/0nyxlabs/merchanding/client"
	inHttp "github.com/0nyxlabs/merchanding/internal/http"
	"github.com/0nyxlabs/merchanding/internal/log"
	"github.com/0nyxlabs/merchanding/internal/otel"
)

// apiStatusCode surfaces the business API's own status for proxied calls,
// falling back to a bad gateway when the upstream never answered.
func apiStatusCode(err error) int {
	apiErr := &client.APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusBadGateway
}

func searchParamsFromQuery(r *http.Request) client.SearchParams {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("pageSize"))
	return client.SearchParams{
		Page:      page,
		PageSize:  pageSize,
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
		Search:    query.Get("search"),
		Status:    query.Get("status"),
	}
}

type CatalogController struct {
	client *client.Client
}

func AttachCatalogController(mux *mux.Router, client *client.Client) {
	controller := CatalogController{client: client}

	mux.HandleFunc("/campaigns", controller.FindCampaigns).Methods(http.MethodGet)
	mux.HandleFunc("/campaigns/{campaignId}", controller.FindCampaignById).Methods(http.MethodGet)
	mux.HandleFunc("/campaigns/{campaignId}/products", controller.FindProductsByCampaign).
		Methods(http.MethodGet)
	mux.HandleFunc("/products/{productId}", controller.FindProductById).Methods(http.MethodGet)
}

func (t CatalogController) FindCampaigns(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindCampaigns")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogController FindCampaigns").
		Str(log.KeyProcess, "finding campaigns").
		Logger()

	logger.Info().Msg("finding campaigns")
	c = logger.WithContext(c)
	page, err := t.client.FindCampaigns(c, searchParamsFromQuery(r))
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
			"campaigns": page.Data,
			"meta":      page.Meta,
		},
	})
}

func (t CatalogController) FindCampaignById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindCampaignById")
	defer span.End()

	campaignId := mux.Vars(r)["campaignId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogController FindCampaignById").
		Str(log.KeyCampaignID, campaignId).
		Str(log.KeyProcess, "finding campaign").
		Logger()

	logger.Info().Msg("finding campaign")
	c = logger.WithContext(c)
	campaign, err := t.client.FindCampaignById(c, campaignId)
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
	logger.Info().Msg("found campaign")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "campaign found",
		"data": map[string]interface{}{
			"campaign": campaign,
		},
	})
}

func (t CatalogController) FindProductsByCampaign(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindProductsByCampaign")
	defer span.End()

	campaignId := mux.Vars(r)["campaignId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogController FindProductsByCampaign").
		Str(log.KeyCampaignID, campaignId).
		Str(log.KeyProcess, "finding campaign products").
		Logger()

	logger.Info().Msg("finding campaign products")
	c = logger.WithContext(c)
	products, err := t.client.FindProductsByCampaign(c, campaignId)
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
	logger.Info().Msg("found campaign products")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "products found",
		"data": map[string]interface{}{
			"products": products,
		},
	})
}

func (t CatalogController) FindProductById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindProductById")
	defer span.End()

	productId := mux.Vars(r)["productId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogController FindProductById").
		Str(log.KeyProductID, productId).
		Str(log.KeyProcess, "finding product").
		Logger()

	logger.Info().Msg("finding product")
	c = logger.WithContext(c)
	product, err := t.client.FindProductById(c, productId)
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
	logger.Info().Msg("found product")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "product found",
		"data": map[string]interface{}{
			"product": product,
		},
	})
}
