package main

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
)

// cookieJar is an http.CookieJar that also remembers the attributes of every
// cookie it was given, which http.CookieJar.Cookies does not report, so they
// can be persisted between invocations. Cookies are keyed by name alone since
// a session only ever talks to one API server.
type cookieJar struct {
	http.CookieJar
	now func() time.Time

	mu  sync.Mutex
	set map[string]http.Cookie
}

func newCookieJar() *cookieJar {
	// cookiejar.New never returns a non-nil error
	jar, _ := cookiejar.New(
		&cookiejar.Options{PublicSuffixList: publicsuffix.List},
	)
	return &cookieJar{
		CookieJar: jar,
		now:       time.Now,
		set:       map[string]http.Cookie{},
	}
}

func (j *cookieJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.CookieJar.SetCookies(u, cookies)
	j.mu.Lock()
	defer j.mu.Unlock()
	now := j.now()
	for _, c := range cookies {
		kept := *c
		if c.MaxAge < 0 {
			delete(j.set, c.Name)
			continue
		}
		if c.MaxAge > 0 {
			kept.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
			kept.MaxAge = 0
		}
		if !kept.Expires.IsZero() && !kept.Expires.After(now) {
			delete(j.set, c.Name)
			continue
		}
		kept.Raw = ""
		kept.RawExpires = ""
		kept.Unparsed = nil
		j.set[c.Name] = kept
	}
}

// remembered returns the unexpired cookies the jar has been given, sorted by
// name.
func (j *cookieJar) remembered() []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	now := j.now()
	cookies := make([]*http.Cookie, 0, len(j.set))
	for _, c := range j.set {
		if !c.Expires.IsZero() && !c.Expires.After(now) {
			continue
		}
		c := c
		cookies = append(cookies, &c)
	}
	sort.Slice(cookies, func(i, k int) bool {
		return cookies[i].Name < cookies[k].Name
	})
	return cookies
}
