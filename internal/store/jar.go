package store

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
)

// VisitorJar is the cookie jar of one visitor's gateway. Every cookie the API
// sets is written through to the store, so the backend session (and the cart
// that lives in it) outlives the visitor object.
//
// Only name and value are kept; restored cookies are scoped to the API path
// and last until the backend replaces them.
type VisitorJar struct {
	*cookiejar.Jar

	store     Store
	visitorID string
	apiURL    *url.URL
}

// NewJar builds the jar for visitorID against the API at baseURL and seeds it
// with whatever the store saved last time.
func NewJar(ctx context.Context, s Store, visitorID, baseURL string) (*VisitorJar, error) {
	apiURL, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	j := &VisitorJar{Jar: jar, store: s, visitorID: visitorID, apiURL: apiURL}
	cookies, err := s.LoadCookies(ctx, visitorID)
	switch {
	case err == nil:
		jar.SetCookies(apiURL, cookies)
	case !errors.Is(err, ErrNotFound):
		log.Printf("store: could not load cookies for visitor %s: %v", visitorID, err)
	}
	return j, nil
}

// SetCookies stores the cookies in memory and saves the visitor's API
// cookies. A failed save is logged; the request that set them goes on.
func (j *VisitorJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.Jar.SetCookies(u, cookies)
	if err := j.store.SaveCookies(context.Background(), j.visitorID, j.Jar.Cookies(j.apiURL)); err != nil {
		log.Printf("store: could not save cookies for visitor %s: %v", j.visitorID, err)
	}
}
