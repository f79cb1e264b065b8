package log

const (
	KeyAppName            = "app"
	KeyRequestID          = "requestId"
	KeyProcess            = "process"
	KeyToken              = "token"
	KeyEmail              = "email"
	KeyTag                = "tag"
	KeyRequestBody        = "requestBody"
	KeyRequestHeader      = "requestHeader"
	KeyRequestHost        = "host"
	KeyRequestIp          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestProcessedAt = "requestProcessedAt"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
	KeyConfig             = "config"
	KeyTraceID            = "traceId"
	KeySpanID             = "spanId"

	KeyUserID       = "userId"
	KeyRole         = "role"
	KeyVariantID    = "variantId"
	KeyCampaignID   = "campaignId"
	KeyProductID    = "productId"
	KeyDesignID     = "designId"
	KeyOrderID      = "orderId"
	KeyQuantity     = "quantity"
	KeyItemCount    = "itemCount"
	KeyCart         = "cart"
	KeyCartItems    = "cartItems"
	KeyTotals       = "totals"
	KeyCheckoutStep = "checkoutStep"
	KeyPathValues   = "pathValues"
	KeyNamespace    = "namespace"
	KeyCacheKey     = "cacheKey"
	KeyDbURL        = "dbUrl"
)
