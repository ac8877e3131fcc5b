package mux

import (
	"net/http/httptest"
	"testing"

	"holdempoker-server/internal/util"
)

func TestMux_authRequired(t *testing.T) {
	ts := httptest.NewServer(NewMux("test"))
	defer ts.Close()

	assertGet(t, ts, "/table", nil, 401)
	assertPost(t, ts, "/table", map[string]string{"name": "My Table"}, nil, 401)
}

func TestMux_postPlayerValidation(t *testing.T) {
	ts := httptest.NewServer(NewMux("test"))
	defer ts.Close()

	// wrong content type
	req := map[string]string{}
	assertPost(t, ts, "/player", req, nil, 400)

	var resp errorResponse
	assertPost(t, ts, "/player", map[string]string{
		"displayName": "not @ valid name!",
		"email":       util.RandomEmail(),
		"password":    "hunter22",
	}, &resp, 400)
}
