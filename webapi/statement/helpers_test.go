package statement_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
)

func newRequest(token, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/statements/withdraw", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
