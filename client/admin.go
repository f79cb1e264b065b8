package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

type UpdateOrderStatus struct {
	Status      string `validate:"required,oneof=pending confirmed processing shipped delivered cancelled" json:"status"`
	Description string `json:"description,omitempty"`
}

type ReviewDesign struct {
	Status          string `validate:"required,oneof=approved rejected"  json:"status"`
	RejectionReason string `validate:"required_if=Status rejected"       json:"rejectionReason,omitempty"`
}

type CreateCampaign struct {
	Name        string    `validate:"required" json:"name"`
	Description string    `validate:"required" json:"description"`
	ImageUrl    string    `validate:"required,url" json:"imageUrl"`
	StartDate   time.Time `validate:"required" json:"startDate"`
	EndDate     time.Time `validate:"required" json:"endDate"`
}

type UpdateCampaign struct {
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	ImageUrl    string     `json:"imageUrl,omitempty"`
	Status      string     `validate:"omitempty,oneof=draft active ended" json:"status,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}

func (cl *Client) AdminFindOrders(c context.Context, params SearchParams) (OrderPage, error) {
	page := OrderPage{}
	err := cl.do(c, http.MethodGet, "/admin/orders", params.values(), nil, &page)
	if err != nil {
		return OrderPage{}, err
	}
	return page, nil
}

func (cl *Client) AdminFindOrderById(c context.Context, orderId string) (Order, error) {
	order := Order{}
	err := cl.do(c, http.MethodGet, "/admin/orders/"+orderId, nil, nil, &order)
	if err != nil {
		return Order{}, err
	}
	return order, nil
}

func (cl *Client) AdminUpdateOrderStatus(
	c context.Context,
	orderId string,
	req UpdateOrderStatus,
) (Order, error) {
	order := Order{}
	err := cl.do(c, http.MethodPatch, "/admin/orders/"+orderId+"/status", nil, req, &order)
	if err != nil {
		return Order{}, err
	}
	return order, nil
}

func (cl *Client) AdminFindDesigns(c context.Context, params SearchParams) ([]Design, error) {
	designs := []Design{}
	err := cl.do(c, http.MethodGet, "/admin/designs", params.values(), nil, &designs)
	if err != nil {
		return nil, err
	}
	return designs, nil
}

func (cl *Client) AdminFindPendingDesigns(c context.Context) ([]Design, error) {
	query := url.Values{}
	query.Set("status", DesignStatusPending)
	designs := []Design{}
	err := cl.do(c, http.MethodGet, "/admin/designs", query, nil, &designs)
	if err != nil {
		return nil, err
	}
	return designs, nil
}

func (cl *Client) AdminReviewDesign(
	c context.Context,
	designId string,
	req ReviewDesign,
) (Design, error) {
	design := Design{}
	err := cl.do(c, http.MethodPatch, "/admin/designs/"+designId+"/review", nil, req, &design)
	if err != nil {
		return Design{}, err
	}
	return design, nil
}

func (cl *Client) AdminFindCampaigns(c context.Context) ([]Campaign, error) {
	campaigns := []Campaign{}
	err := cl.do(c, http.MethodGet, "/admin/campaigns", nil, nil, &campaigns)
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (cl *Client) AdminCreateCampaign(c context.Context, req CreateCampaign) (Campaign, error) {
	campaign := Campaign{}
	err := cl.do(c, http.MethodPost, "/admin/campaigns", nil, req, &campaign)
	if err != nil {
		return Campaign{}, err
	}
	return campaign, nil
}

func (cl *Client) AdminUpdateCampaign(
	c context.Context,
	campaignId string,
	req UpdateCampaign,
) (Campaign, error) {
	campaign := Campaign{}
	err := cl.do(c, http.MethodPatch, "/admin/campaigns/"+campaignId, nil, req, &campaign)
	if err != nil {
		return Campaign{}, err
	}
	return campaign, nil
}

func (cl *Client) AdminDeleteCampaign(c context.Context, campaignId string) error {
	return cl.do(c, http.MethodDelete, "/admin/campaigns/"+campaignId, nil, nil, nil)
}

func (cl *Client) AdminDashboardStats(c context.Context) (DashboardStats, error) {
	stats := DashboardStats{}
	err := cl.do(c, http.MethodGet, "/admin/dashboard/stats", nil, nil, &stats)
	if err != nil {
		return DashboardStats{}, err
	}
	return stats, nil
}
