package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/0nyxlabs/merchanding/gateway/internal/service"
	"github.com/0nyxlabs/merchanding/gateway/pkg/response"
	"github.com/0nyxlabs/merchanding/internal/session"
)

type envelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       struct {
		Cart response.Cart `json:"cart"`
	} `json:"data"`
}

func newCartRouter() *mux.Router {
	router := mux.NewRouter()
	AttachCartController(router, service.NewCartService(nil))
	return router
}

func doJSON(
	t *testing.T,
	router *mux.Router,
	sess session.Session,
	method string,
	path string,
	body interface{},
) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		assert.NoError(t, json.NewEncoder(reader).Encode(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req = req.WithContext(session.AttachToContext(req.Context(), sess))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	resp := envelope{}
	assert.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	return recorder, resp
}

func TestCartEndpoints(t *testing.T) {
	router := newCartRouter()
	sess := session.Session{UserID: uuid.New(), AccessToken: "token"}

	recorder, resp := doJSON(t, router, sess, http.MethodGet, "/cart", nil)
	assert.EqualValues(t, http.StatusOK, recorder.Code)
	assert.Empty(t, resp.Data.Cart.Items)

	recorder, resp = doJSON(t, router, sess, http.MethodPost, "/cart/items", map[string]interface{}{
		"variantId": "v1",
		"name":      "Classic Tee",
		"price":     "30",
		"quantity":  1,
	})
	assert.EqualValues(t, http.StatusOK, recorder.Code)
	assert.Len(t, resp.Data.Cart.Items, 1)
	assert.EqualValues(t, "$38.39", resp.Data.Cart.FormattedTotal)

	// Adding the same variant again merges rather than duplicating the line.
	recorder, resp = doJSON(t, router, sess, http.MethodPost, "/cart/items", map[string]interface{}{
		"variantId": "v1",
		"name":      "Classic Tee",
		"price":     "30",
		"quantity":  2,
	})
	assert.EqualValues(t, http.StatusOK, recorder.Code)
	assert.Len(t, resp.Data.Cart.Items, 1)
	assert.EqualValues(t, 3, resp.Data.Cart.Items[0].Quantity)

	recorder, resp = doJSON(t, router, sess, http.MethodPatch, "/cart/items/v1", map[string]interface{}{
		"quantity": 1,
	})
	assert.EqualValues(t, http.StatusOK, recorder.Code)
	assert.EqualValues(t, 1, resp.Data.Cart.Items[0].Quantity)

	recorder, resp = doJSON(t, router, sess, http.MethodDelete, "/cart/items/v1", nil)
	assert.EqualValues(t, http.StatusOK, recorder.Code)
	assert.Empty(t, resp.Data.Cart.Items)

	recorder, _ = doJSON(t, router, sess, http.MethodDelete, "/cart", nil)
	assert.EqualValues(t, http.StatusOK, recorder.Code)
}

func TestCartAddItemValidation(t *testing.T) {
	router := newCartRouter()
	sess := session.Session{UserID: uuid.New(), AccessToken: "token"}

	recorder, resp := doJSON(t, router, sess, http.MethodPost, "/cart/items", map[string]interface{}{
		"name": "missing variant id",
	})
	assert.EqualValues(t, http.StatusBadRequest, recorder.Code)
	assert.EqualValues(t, "failed", resp.Status)
}

func TestCartRequiresSession(t *testing.T) {
	router := newCartRouter()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.EqualValues(t, http.StatusUnauthorized, recorder.Code)
}

func TestCartIsolatedPerUser(t *testing.T) {
	router := newCartRouter()
	alice := session.Session{UserID: uuid.New(), AccessToken: "token-a"}
	bob := session.Session{UserID: uuid.New(), AccessToken: "token-b"}

	_, _ = doJSON(t, router, alice, http.MethodPost, "/cart/items", map[string]interface{}{
		"variantId": "v1",
		"name":      "Classic Tee",
		"price":     "30",
		"quantity":  1,
	})

	_, resp := doJSON(t, router, bob, http.MethodGet, "/cart", nil)
	assert.Empty(t, resp.Data.Cart.Items)
}
