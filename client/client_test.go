package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/0nyxlabs/merchanding/cart"
	"github.com/0nyxlabs/merchanding/checkout"
	"github.com/0nyxlabs/merchanding/internal/session"
)

func TestCreateIntent(t *testing.T) {
	var (
		gotPath   string
		gotAuth   string
		gotMethod string
		gotReq    checkout.IntentRequest
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(checkout.Intent{ClientSecret: "cs_test", OrderID: "ord_123"})
	}))
	defer server.Close()

	c := session.AttachToContext(context.Background(), session.Session{
		UserID:      uuid.New(),
		AccessToken: "access-token",
	})
	cl := New(server.URL)

	intent, err := cl.CreateIntent(c, checkout.IntentRequest{
		Items: []cart.Item{
			{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 1},
		},
		Total: decimal.RequireFromString("38.39"),
		ShippingAddress: checkout.ShippingAddress{
			FullName:   "Ada Lovelace",
			Line1:      "12 Analytical Way",
			City:       "London",
			State:      "LDN",
			PostalCode: "EC1A 1BB",
			Country:    "GB",
		},
	})

	assert.NoError(t, err)
	assert.EqualValues(t, "/payments/create-intent", gotPath)
	assert.EqualValues(t, http.MethodPost, gotMethod)
	assert.EqualValues(t, "Bearer access-token", gotAuth)
	assert.EqualValues(t, "cs_test", intent.ClientSecret)
	assert.EqualValues(t, "ord_123", intent.OrderID)
	assert.Len(t, gotReq.Items, 1)
	assert.True(t, gotReq.Total.Equal(decimal.RequireFromString("38.39")))
	assert.EqualValues(t, "London", gotReq.ShippingAddress.City)
}

func TestDoMapsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "campaign not found",
			"code":    "CAMPAIGN_NOT_FOUND",
		})
	}))
	defer server.Close()

	cl := New(server.URL)
	_, err := cl.FindCampaignById(context.Background(), "missing")

	assert.Error(t, err)
	apiErr := &APIError{}
	assert.True(t, errors.As(err, &apiErr))
	assert.EqualValues(t, http.StatusNotFound, apiErr.StatusCode)
	assert.EqualValues(t, "campaign not found", apiErr.Message)
	assert.EqualValues(t, "CAMPAIGN_NOT_FOUND", apiErr.Code)
}

func TestDoMapsOpaqueErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer server.Close()

	cl := New(server.URL)
	err := cl.DeleteDesign(context.Background(), "d1")

	assert.Error(t, err)
	apiErr := &APIError{}
	assert.True(t, errors.As(err, &apiErr))
	assert.EqualValues(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.EqualValues(t, http.StatusText(http.StatusInternalServerError), apiErr.Message)
}

func TestSearchParamsQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(CampaignPage{})
	}))
	defer server.Close()

	cl := New(server.URL)
	_, err := cl.FindCampaigns(context.Background(), SearchParams{
		Page:     2,
		PageSize: 20,
		Status:   CampaignStatusActive,
		Search:   "summer",
	})

	assert.NoError(t, err)
	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "pageSize=20")
	assert.Contains(t, gotQuery, "status=active")
	assert.Contains(t, gotQuery, "search=summer")
}
