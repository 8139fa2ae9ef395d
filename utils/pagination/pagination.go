package pagination

import (
	"github.com/gofiber/fiber/v2"
)

// DefaultLimit and MaxLimit bound listing queries; the API uses skip/limit
// rather than page numbers so clients can stream ranges.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

type Params struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// ParseParams reads skip/limit query parameters, clamping limit to
// [1, MaxLimit] and skip to >= 0.
func ParseParams(c *fiber.Ctx) Params {
	skip := c.QueryInt("skip", 0)
	if skip < 0 {
		skip = 0
	}

	limit := c.QueryInt("limit", DefaultLimit)
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Skip: skip, Limit: limit}
}
