package models

// TimezoneInfo represents the current state of a single timezone
type TimezoneInfo struct {
	Timezone     string `json:"timezone" example:"America/New_York"`
	CurrentTime  string `json:"current_time" example:"2025-02-10T09:30:00-05:00"`
	UTCOffset    string `json:"utc_offset" example:"UTC-05:00"`
	Abbreviation string `json:"abbreviation" example:"EST"`
	IsDST        bool   `json:"is_dst" example:"false"`
	Timestamp    int64  `json:"timestamp" example:"1707580800"`
}

// TimezoneListItem is a single entry in the timezone catalog listing
type TimezoneListItem struct {
	Name        string `json:"name" example:"America/New_York"`
	DisplayName string `json:"display_name" example:"America/New York"`
}

// ConvertRequest represents a timezone conversion request. The instant is
// given either as a Unix timestamp or as a naive datetime plus its source
// timezone, never both.
type ConvertRequest struct {
	Timestamp *int64  `json:"timestamp,omitempty" example:"1707580800"`
	Datetime  *string `json:"datetime,omitempty" example:"2025-02-10T15:30:00"`
	From      *string `json:"from,omitempty" example:"Europe/Belgrade"`
	To        string  `json:"to" binding:"required" example:"America/New_York"`
}

// ConvertTimezoneInfo is one side of a conversion result
type ConvertTimezoneInfo struct {
	Timezone     string `json:"timezone" example:"America/New_York"`
	Datetime     string `json:"datetime" example:"2025-02-10T09:30:00-05:00"`
	UTCOffset    string `json:"utc_offset" example:"UTC-05:00"`
	Abbreviation string `json:"abbreviation" example:"EST"`
	IsDST        bool   `json:"is_dst" example:"false"`
	Timestamp    int64  `json:"timestamp" example:"1707580800"`
}

// ConvertResponse represents the result of a timezone conversion. Both sides
// render the same instant, so the timestamps are always equal.
type ConvertResponse struct {
	From ConvertTimezoneInfo `json:"from"`
	To   ConvertTimezoneInfo `json:"to"`
}

// GeolocationQuery represents a coordinate lookup request
type GeolocationQuery struct {
	Lat *float64 `form:"lat" binding:"required,latitude"`
	Lng *float64 `form:"lng" binding:"required,longitude"`
}
