package middleware

// identity.go holds the context keys JWTAuth fills in and the accessors
// handlers and other middleware use to read them back.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// Context keys set by JWTAuth.
const (
    ContextStaffID = "staff_id"
    ContextRole    = "role"
)

// StaffID returns the authenticated staff member's ID.
func StaffID(c echo.Context) (uint64, bool) {
    id, ok := c.Get(ContextStaffID).(uint64)
    return id, ok && id != 0
}

// Role returns the authenticated staff member's role.
func Role(c echo.Context) (string, bool) {
    r, ok := c.Get(ContextRole).(string)
    return r, ok && r != ""
}

// principal identifies the caller for rate limiting: the staff ID when
// authenticated, "guest" otherwise.
func principal(c echo.Context) string {
    if id, ok := StaffID(c); ok {
        return strconv.FormatUint(id, 10)
    }
    return "guest"
}
