package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds account writes that span two tables.
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultLookupTTL is used when no TTL is configured for cached lookups.
	DefaultLookupTTL = 10 * time.Minute

	// Product search limits.
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100

	// Sequence targets passed to get_next_id.
	accountsTable   = "accounts"
	accountIDColumn = "accountid"
	productsTable   = "products"
	productIDColumn = "id"
)
