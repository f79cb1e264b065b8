package client

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/0nyxlabs/merchanding/checkout"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

const (
	DesignStatusPending  = "pending"
	DesignStatusApproved = "approved"
	DesignStatusRejected = "rejected"
)

const (
	CampaignStatusDraft  = "draft"
	CampaignStatusActive = "active"
	CampaignStatusEnded  = "ended"
)

type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

type SearchParams struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
	Search    string
	Status    string
}

type Campaign struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	ImageUrl     string    `json:"imageUrl"`
	Status       string    `json:"status"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	ProductCount int       `json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CampaignSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ImageUrl     string `json:"imageUrl"`
	Status       string `json:"status"`
	ProductCount int    `json:"productCount"`
}

type CampaignPage struct {
	Data []CampaignSummary `json:"data"`
	Meta PageMeta          `json:"meta"`
}

type ProductColor struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

type ProductVariant struct {
	ID    string          `json:"id"`
	Size  string          `json:"size"`
	Color ProductColor    `json:"color"`
	Sku   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CampaignID  string           `json:"campaignId"`
	DesignID    string           `json:"designId"`
	BasePrice   decimal.Decimal  `json:"basePrice"`
	Images      []string         `json:"images"`
	Variants    []ProductVariant `json:"variants"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type ProductSummary struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	BasePrice  decimal.Decimal `json:"basePrice"`
	ImageUrl   string          `json:"imageUrl"`
	CampaignID string          `json:"campaignId"`
}

type Design struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	ImageUrl        string    `json:"imageUrl"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type OrderItem struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	ImageUrl    string          `json:"imageUrl"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

type OrderTrackingEvent struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

type Order struct {
	ID              string                   `json:"id"`
	OrderNumber     string                   `json:"orderNumber"`
	UserID          string                   `json:"userId"`
	Items           []OrderItem              `json:"items"`
	ShippingAddress checkout.ShippingAddress `json:"shippingAddress"`
	Subtotal        decimal.Decimal          `json:"subtotal"`
	Shipping        decimal.Decimal          `json:"shipping"`
	Tax             decimal.Decimal          `json:"tax"`
	Total           decimal.Decimal          `json:"total"`
	Status          string                   `json:"status"`
	PaymentStatus   string                   `json:"paymentStatus"`
	PaymentIntentID string                   `json:"paymentIntentId,omitempty"`
	TrackingEvents  []OrderTrackingEvent     `json:"trackingEvents"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

type OrderSummary struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"orderNumber"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	ItemCount     int32           `json:"itemCount"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type OrderPage struct {
	Data []OrderSummary `json:"data"`
	Meta PageMeta       `json:"meta"`
}

type DashboardStats struct {
	TotalOrders     int             `json:"totalOrders"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	PendingDesigns  int             `json:"pendingDesigns"`
	ActiveCampaigns int             `json:"activeCampaigns"`
}
