package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// envelope is the canonical success payload: {"success":true,"data":...}.
// Login additionally carries the signed token at the top level.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Token   string `json:"token,omitempty"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Success: true, Data: data})
}

// ctxIdentity extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: uid and role must be
// non-empty (presence proves the middleware ran).
func ctxIdentity(c echo.Context) (uid, role string, err error) {
	uid, _ = c.Get("uid").(string)
	role, _ = c.Get("role").(string)
	if uid == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return uid, role, nil
}
