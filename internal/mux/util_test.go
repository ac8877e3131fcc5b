package mux

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaginationOptions(t *testing.T) {
	a := assert.New(t)

	r := httptest.NewRequest("GET", "/table", nil)
	start, rows, err := parsePaginationOptions(r)
	a.NoError(err)
	a.Equal(int64(0), start)
	a.Equal(defaultRows, rows)

	r = httptest.NewRequest("GET", "/table?start=50&rows=25", nil)
	start, rows, err = parsePaginationOptions(r)
	a.NoError(err)
	a.Equal(int64(50), start)
	a.Equal(25, rows)

	r = httptest.NewRequest("GET", "/table?start=-1", nil)
	_, _, err = parsePaginationOptions(r)
	a.EqualError(err, "start cannot be less than zero")

	r = httptest.NewRequest("GET", "/table?rows=0", nil)
	_, _, err = parsePaginationOptions(r)
	a.EqualError(err, "rows must be greater than zero")

	r = httptest.NewRequest("GET", "/table?rows=101", nil)
	_, _, err = parsePaginationOptions(r)
	a.EqualError(err, "rows cannot be greater than 100")
}

func TestRemoteAddr(t *testing.T) {
	a := assert.New(t)

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:52431"
	a.Equal("10.0.0.1", remoteAddr(r))

	r.RemoteAddr = "10.0.0.1"
	a.Equal("10.0.0.1", remoteAddr(r))

	r.RemoteAddr = "[::1]:52431"
	a.Equal("[::1]", remoteAddr(r))
}
