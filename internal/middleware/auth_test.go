package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAuth(t *testing.T, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkin", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := BearerAuth(map[string]uint{"secret-token": 5})
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return c, mw(next)(c)
}

func TestBearerAuth_MissingHeader(t *testing.T) {
	_, err := runAuth(t, "")

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestBearerAuth_BadScheme(t *testing.T) {
	_, err := runAuth(t, "Basic secret-token")

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestBearerAuth_UnknownToken(t *testing.T) {
	_, err := runAuth(t, "Bearer wrong-token")

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestBearerAuth_ValidToken(t *testing.T) {
	c, err := runAuth(t, "Bearer secret-token")

	require.NoError(t, err)
	id, ok := OrganizerID(c)
	assert.True(t, ok)
	assert.Equal(t, uint(5), id)
}

func TestBearerAuth_SchemeCaseInsensitive(t *testing.T) {
	_, err := runAuth(t, "bearer secret-token")
	assert.NoError(t, err)
}

func TestOrganizerID_Unset(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, ok := OrganizerID(c)
	assert.False(t, ok)
}
