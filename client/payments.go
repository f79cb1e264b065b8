package client

import (
	"context"
	"net/http"

	"github.com/0nyxlabs/merchanding/checkout"
)

// CreateIntent requests a payment authorization handle for the cart as priced
// at the moment of submission. It satisfies checkout.IntentCreator.
func (cl *Client) CreateIntent(
	c context.Context,
	req checkout.IntentRequest,
) (checkout.Intent, error) {
	intent := checkout.Intent{}
	err := cl.do(c, http.MethodPost, "/payments/create-intent", nil, req, &intent)
	if err != nil {
		return checkout.Intent{}, err
	}
	return intent, nil
}
