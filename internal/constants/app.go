package constants

const (
	AppMainMerchanding = "main merchanding"
	AppGatewayService  = "storefront-gateway"
	AudienceStorefront = "authenticated"
)

const (
	// CartNamespace is the fixed key prefix under which a user's serialized
	// cart item table is persisted.
	CartNamespace = "merchanding:cart:%s"
)
