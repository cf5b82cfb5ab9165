package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
)

const (
	timestampHeader = "X-Slack-Request-Timestamp"
	signatureHeader = "X-Slack-Signature"
)

// VerifySlackSignature authenticates inbound Slack webhooks before any
// handler runs. Verification happens over the exact raw bytes received; the
// body is restored afterwards so handlers can still parse the form.
func (s Server) VerifySlackSignature(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		body, err := io.ReadAll(req.Body)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "could not read request body")
		}
		req.Body = io.NopCloser(bytes.NewReader(body))

		err = s.verifier.Verify(req.Header.Get(timestampHeader), body, req.Header.Get(signatureHeader))
		if err != nil {
			log.FromContext(req.Context()).WithError(err).Warn("Rejected unauthenticated webhook")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid signature")
		}

		return next(c)
	}
}
