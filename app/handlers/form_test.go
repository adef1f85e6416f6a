package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formRequest(t *testing.T, values url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.NoError(t, parseForm(req))
	return req
}

func TestFormIntIsBaseTen(t *testing.T) {
	req := formRequest(t, url.Values{"lead": {"010"}, "hex": {"0x10"}, "plain": {" 7 "}, "blank": {""}})

	n, err := formInt(req, "lead")
	require.NoError(t, err)
	assert.Equal(t, 10, *n)

	n, err = formInt(req, "plain")
	require.NoError(t, err)
	assert.Equal(t, 7, *n)

	_, err = formInt(req, "hex")
	assert.EqualError(t, err, "hex must be a whole number")

	n, err = formInt(req, "blank")
	require.NoError(t, err)
	assert.Nil(t, n)

	n, err = formInt(req, "missing")
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestFormDecimalAndString(t *testing.T) {
	req := formRequest(t, url.Values{"price": {"19.90"}, "bad": {"abc"}, "name": {"  Cap "}})

	d, err := formDecimal(req, "price")
	require.NoError(t, err)
	assert.Equal(t, "19.9", d.String())

	_, err = formDecimal(req, "bad")
	assert.Error(t, err)

	assert.Equal(t, "Cap", *formString(req, "name"))
	assert.Nil(t, formString(req, "category"))
}

func TestQueryInt(t *testing.T) {
	cases := map[string]int{
		"months=010":  10,
		"months=3":    3,
		"months=0x10": 0,
		"months=-05":  -5,
		"months=abc":  0,
		"months=0":    0,
		"":            0,
	}
	for query, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
		assert.Equal(t, want, queryInt(req, "months"), query)
	}
}
