package core

type Source string

const (
	SourceWeather Source = "weather"
	SourceEvents  Source = "events"
	SourceBudget  Source = "budget"
)

// WeatherSummary is a month slice of 1991-2020 climate normals.
type WeatherSummary struct {
	Place       string   `json:"place"`
	Month       int      `json:"month"`
	YearContext int      `json:"year_context"`
	AvgTempC    *float64 `json:"avg_temp_c"`
	RainMM      *float64 `json:"rain_mm"`
	Notes       string   `json:"notes"`
	Source      string   `json:"source"`
}

type Event struct {
	Title    string `json:"title"`
	Where    string `json:"where"`
	DateHint string `json:"date_hint"`
	URL      string `json:"url"`
	Notes    string `json:"notes,omitempty"`
}

type ComfortTier string

const (
	ComfortBudget   ComfortTier = "budget"
	ComfortStandard ComfortTier = "standard"
	ComfortComfort  ComfortTier = "comfort"
)

type BudgetBreakdown struct {
	LodgingFoodActivities int `json:"lodging_food_activities"`
	Flight                int `json:"flight"`
}

type BudgetEstimate struct {
	Origin            string          `json:"origin"`
	RegionBucket      string          `json:"region_bucket"`
	Days              int             `json:"days"`
	Flight            int             `json:"flight"`
	PerDayBase        int             `json:"per_day_base"`
	ComfortLevel      ComfortTier     `json:"comfort_level"`
	ComfortMultiplier float64         `json:"comfort_multiplier"`
	PerDayApplied     int             `json:"per_day_applied"`
	EstimateTotal     int             `json:"estimate_total"`
	RangeLow          int             `json:"range_low"`
	RangeHigh         int             `json:"range_high"`
	Breakdown         BudgetBreakdown `json:"breakdown"`
	Disclaimer        string          `json:"disclaimer"`
}

// Place is a geocoded location.
type Place struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}
