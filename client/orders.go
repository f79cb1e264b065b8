package client

import (
	"context"
	"net/http"
)

func (cl *Client) FindUserOrders(c context.Context) ([]OrderSummary, error) {
	orders := []OrderSummary{}
	err := cl.do(c, http.MethodGet, "/orders", nil, nil, &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (cl *Client) FindOrderById(c context.Context, orderId string) (Order, error) {
	order := Order{}
	err := cl.do(c, http.MethodGet, "/orders/"+orderId, nil, nil, &order)
	if err != nil {
		return Order{}, err
	}
	return order, nil
}

// TrackOrder returns the order with its tracking timeline.
func (cl *Client) TrackOrder(c context.Context, orderId string) (Order, error) {
	order := Order{}
	err := cl.do(c, http.MethodGet, "/orders/"+orderId+"/track", nil, nil, &order)
	if err != nil {
		return Order{}, err
	}
	return order, nil
}
