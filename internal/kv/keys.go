package kv

// Key prefixes and singleton keys shared by the API and the seed tool.
const (
	PrefixProduct       = "product:"
	PrefixCategory      = "category:"
	PrefixFarm          = "farm:"
	PrefixPromo         = "promo:"
	PrefixReview        = "review:"
	PrefixSocial        = "social:"
	PrefixEventTheme    = "theme:event:"
	PrefixAdminUser     = "admin:user:"
	PrefixAdminPassword = "admin:password:"
	PrefixSettings      = "settings:"

	KeyCartSettings = "cart:settings"
)
