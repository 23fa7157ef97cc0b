package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	p := Normalize(Params{})
	require.Equal(t, 1, p.Page)
	require.Equal(t, DefaultLimit, p.Limit)

	p = Normalize(Params{Page: -3, Limit: 5000})
	require.Equal(t, 1, p.Page)
	require.Equal(t, MaxLimit, p.Limit)

	p = Normalize(Params{Page: 3, Limit: 10})
	require.Equal(t, 20, p.Offset())
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/client/products?page=2&limit=15", nil)
	p := FromRequest(r)
	require.Equal(t, 2, p.Page)
	require.Equal(t, 15, p.Limit)

	r = httptest.NewRequest("GET", "/api/client/products?page=abc", nil)
	p = FromRequest(r)
	require.Equal(t, 1, p.Page)
	require.Equal(t, DefaultLimit, p.Limit)
}

func TestMetaFor(t *testing.T) {
	meta := MetaFor(Params{Page: 2, Limit: 10}, 25)
	require.Equal(t, int64(25), meta.Total)
	require.Equal(t, 3, meta.TotalPages)

	meta = MetaFor(Params{Page: 1, Limit: 10}, 0)
	require.Equal(t, 1, meta.TotalPages)
}
