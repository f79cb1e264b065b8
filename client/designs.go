package client

import (
	"context"
	"net/http"
)

type CreateDesign struct {
	Name        string `validate:"required" json:"name"`
	Description string `json:"description,omitempty"`
	ImageUrl    string `validate:"required,url" json:"imageUrl"`
}

func (cl *Client) FindUserDesigns(c context.Context) ([]Design, error) {
	designs := []Design{}
	err := cl.do(c, http.MethodGet, "/designs", nil, nil, &designs)
	if err != nil {
		return nil, err
	}
	return designs, nil
}

func (cl *Client) FindDesignById(c context.Context, designId string) (Design, error) {
	design := Design{}
	err := cl.do(c, http.MethodGet, "/designs/"+designId, nil, nil, &design)
	if err != nil {
		return Design{}, err
	}
	return design, nil
}

func (cl *Client) CreateDesign(c context.Context, req CreateDesign) (Design, error) {
	design := Design{}
	err := cl.do(c, http.MethodPost, "/designs", nil, req, &design)
	if err != nil {
		return Design{}, err
	}
	return design, nil
}

func (cl *Client) DeleteDesign(c context.Context, designId string) error {
	return cl.do(c, http.MethodDelete, "/designs/"+designId, nil, nil, nil)
}
