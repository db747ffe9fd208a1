package usecasecontract

import "time"

type IConfigProvider interface {
	GetAppBaseURL() string
	GetSessionTTL() time.Duration
	GetListingCacheTTL() time.Duration
	GetGoogleMapsAPIKey() string
}
