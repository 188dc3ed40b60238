package provider

import (
	"fmt"
	"net/url"
)

// SearchParams is one search call. Homeoffice selects the remote work
// arrangement variant of the query.
type SearchParams struct {
	Location   string
	RadiusKm   int
	Query      string
	MaxAgeDays int
	PageSize   int
	Page       int
	Homeoffice bool
}

// CacheKey covers the full parameter tuple; two calls share a cache entry
// only when every parameter agrees.
func (p SearchParams) CacheKey() string {
	return fmt.Sprintf("search|wo=%s|umkreis=%d|was=%s|tage=%d|size=%d|page=%d|ho=%t",
		p.Location, p.RadiusKm, p.Query, p.MaxAgeDays, p.PageSize, p.Page, p.Homeoffice)
}

func (p SearchParams) values() url.Values {
	page := p.Page
	if page <= 0 {
		page = 1
	}
	v := url.Values{}
	v.Set("page", fmt.Sprint(page))
	v.Set("size", fmt.Sprint(p.PageSize))
	v.Set("umkreis", fmt.Sprint(p.RadiusKm))
	v.Set("aktualitaet", fmt.Sprint(p.MaxAgeDays))
	v.Set("wo", p.Location)
	if p.Query != "" {
		v.Set("was", p.Query)
	}
	if p.Homeoffice {
		v.Set("arbeitszeit", "ho")
	}
	return v
}
