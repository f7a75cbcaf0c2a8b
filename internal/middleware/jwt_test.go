package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/aerovia/emptyleg/internal/model"
    "github.com/aerovia/emptyleg/internal/utils"
)

const testSecret = "test-secret"

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    if authHeader != "" {
        req.Header.Set("Authorization", authHeader)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    handler := mw(func(c echo.Context) error {
        return c.String(http.StatusOK, "reached")
    })
    require.NoError(t, handler(c))
    return rec, c
}

func TestJWTAuthInjectsClaims(t *testing.T) {
    access, err := utils.NewAccessToken(testSecret, 42, model.RoleOperator, 5)
    require.NoError(t, err)

    rec, c := doRequest(t, JWTAuth(testSecret), "Bearer "+access.Token)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, uint64(42), c.Get(CtxUserID))
    assert.Equal(t, model.RoleOperator, c.Get(CtxRole))
}

func TestJWTAuthRejections(t *testing.T) {
    access, err := utils.NewAccessToken("other-secret", 42, model.RoleCustomer, 5)
    require.NoError(t, err)
    expired, err := utils.NewAccessToken(testSecret, 42, model.RoleCustomer, -5)
    require.NoError(t, err)

    cases := map[string]string{
        "no header":    "",
        "not bearer":   "Basic abc",
        "garbage":      "Bearer not.a.jwt",
        "wrong secret": "Bearer " + access.Token,
        "expired":      "Bearer " + expired.Token,
    }
    for name, header := range cases {
        t.Run(name, func(t *testing.T) {
            rec, _ := doRequest(t, JWTAuth(testSecret), header)
            assert.Equal(t, http.StatusUnauthorized, rec.Code)
        })
    }
}

func TestRequireRole(t *testing.T) {
    access, err := utils.NewAccessToken(testSecret, 7, model.RoleCustomer, 5)
    require.NoError(t, err)

    chain := func(roles ...string) echo.MiddlewareFunc {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return JWTAuth(testSecret)(RequireRole(roles...)(next))
        }
    }

    rec, _ := doRequest(t, chain(model.RoleCustomer, model.RoleAdmin), "Bearer "+access.Token)
    assert.Equal(t, http.StatusOK, rec.Code)

    rec, _ = doRequest(t, chain(model.RoleOperator), "Bearer "+access.Token)
    assert.Equal(t, http.StatusForbidden, rec.Code)

    rec, _ = doRequest(t, chain(), "Bearer "+access.Token)
    assert.Equal(t, http.StatusForbidden, rec.Code, "empty allow-list denies everyone")
}
