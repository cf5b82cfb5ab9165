package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
)

const answerCommand = "/answer"

// PostSlackCommand handles the operator's slash command. The signature
// middleware has already vouched for the request. The command text has the
// shape "<ticket_id> <answer text...>"; everything after the id, rejoined
// with single spaces, is the answer.
func (s Server) PostSlackCommand(c echo.Context) error {
	command := c.FormValue("command")
	text := c.FormValue("text")
	userName := c.FormValue("user_name")

	if command != answerCommand {
		return c.String(http.StatusOK, fmt.Sprintf("Nothing to do for %s.", command))
	}

	fields := strings.Fields(text)
	if len(fields) < 2 {
		return c.String(http.StatusOK, fmt.Sprintf("Usage: %s <ticket_id> <answer>", answerCommand))
	}

	ticketID := fields[0]
	answer := strings.Join(fields[1:], " ")

	if !s.coordinator.Resolve(ticketID, answer) {
		return c.String(http.StatusOK, fmt.Sprintf(
			"Ticket %s was not found. It may have expired or already been answered.", ticketID,
		))
	}

	log.FromContext(c.Request().Context()).
		WithField("ticket_id", ticketID).
		WithField("user_name", userName).
		Info("Ticket answered by operator")

	return c.String(http.StatusOK, fmt.Sprintf("Answer delivered for ticket %s. Thank you!", ticketID))
}

func (s Server) PostSlackInteract(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
