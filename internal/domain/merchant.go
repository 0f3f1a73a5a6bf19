package domain

// Merchant is a restaurant known to the gateway by its external GUID
type Merchant struct {
	ID   int64
	GUID string
}
