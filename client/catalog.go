package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (p SearchParams) values() url.Values {
	query := url.Values{}
	if p.Page > 0 {
		query.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		query.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	if p.SortBy != "" {
		query.Set("sortBy", p.SortBy)
	}
	if p.SortOrder != "" {
		query.Set("sortOrder", p.SortOrder)
	}
	if p.Search != "" {
		query.Set("search", p.Search)
	}
	if p.Status != "" {
		query.Set("status", p.Status)
	}
	return query
}

func (cl *Client) FindCampaigns(c context.Context, params SearchParams) (CampaignPage, error) {
	page := CampaignPage{}
	err := cl.do(c, http.MethodGet, "/campaigns", params.values(), nil, &page)
	if err != nil {
		return CampaignPage{}, err
	}
	return page, nil
}

func (cl *Client) FindCampaignById(c context.Context, campaignId string) (Campaign, error) {
	campaign := Campaign{}
	err := cl.do(c, http.MethodGet, "/campaigns/"+campaignId, nil, nil, &campaign)
	if err != nil {
		return Campaign{}, err
	}
	return campaign, nil
}

func (cl *Client) FindProductsByCampaign(
	c context.Context,
	campaignId string,
) ([]ProductSummary, error) {
	products := []ProductSummary{}
	err := cl.do(c, http.MethodGet, "/campaigns/"+campaignId+"/products", nil, nil, &products)
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (cl *Client) FindProductById(c context.Context, productId string) (Product, error) {
	product := Product{}
	err := cl.do(c, http.MethodGet, "/products/"+productId, nil, nil, &product)
	if err != nil {
		return Product{}, err
	}
	return product, nil
}
