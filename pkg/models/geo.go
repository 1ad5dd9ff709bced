package models

type City struct {
	Country    string `json:"country"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	Population int    `json:"population"`
}

type PostalCode struct {
	Country string  `json:"country"`
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Region  string  `json:"region,omitempty"`
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
}
