package httpserver

import (
	"net/http"
	"time"
)

const (
	refreshCookieName = "refreshToken"
	refreshCookiePath = "/api/auth/refresh-token"
)

func createCookie(name, value, path string, expires time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func deleteCookie(name, path string, secure bool) *http.Cookie {
	c := createCookie(name, "", path, time.Unix(0, 0), secure)
	c.MaxAge = -1
	return c
}
