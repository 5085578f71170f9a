package handler

import (
	"net/http"
	"strconv"

	"zaakregister/internal/zaken/store"
)

const (
	defaultPageSize = 100
	maxPageSize     = 500
)

// pageEnvelope is the list response shape. Count is fuzzy for large result
// sets; countExact tells the client whether it can be trusted for paging UI.
type pageEnvelope struct {
	Count      int     `json:"count"`
	CountExact bool    `json:"countExact"`
	Next       *string `json:"next"`
	Previous   *string `json:"previous"`
	Results    any     `json:"results"`
}

func parsePage(r *http.Request) store.Page {
	page := store.Page{Number: 1, Size: defaultPageSize}
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page.Number = n
		}
	}
	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page.Size = min(n, maxPageSize)
		}
	}
	return page
}

// envelope wraps one page of results. Next is emitted while a full page came
// back; with a fuzzy count that errs on the side of one empty trailing page.
func envelope(r *http.Request, page store.Page, count int, countExact bool, resultLen int, results any) *pageEnvelope {
	out := &pageEnvelope{
		Count:      count,
		CountExact: countExact,
		Results:    results,
	}
	if resultLen == page.Size && page.Offset()+resultLen < count {
		out.Next = pageLink(r, page.Number+1)
	}
	if page.Number > 1 {
		out.Previous = pageLink(r, page.Number-1)
	}
	return out
}

func pageLink(r *http.Request, number int) *string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(number))
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}
