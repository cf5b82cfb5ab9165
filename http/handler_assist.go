package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"handoff/entity"
)

const defaultWaitTimeout = 60 * time.Second

type assistRequestResponse struct {
	TicketID string `json:"ticket_id"`
}

func (s Server) PostAssistRequest(c echo.Context) error {
	var request entity.AssistanceRequest
	err := c.Bind(&request)
	if err != nil {
		return err
	}

	if request.Question == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "question is required")
	}

	ticketID, err := s.coordinator.CreateTicket(c.Request().Context(), request)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, assistRequestResponse{TicketID: ticketID})
}

func (s Server) GetAssistWait(c echo.Context) error {
	ticketID := c.QueryParam("ticket_id")
	if ticketID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ticket_id is required")
	}

	timeout := defaultWaitTimeout
	if raw := c.QueryParam("timeout"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "timeout must be an integer number of seconds")
		}
		timeout = time.Duration(seconds) * time.Second
	}

	result, err := s.coordinator.Wait(c.Request().Context(), ticketID, timeout)
	if errors.Is(err, entity.ErrWaiterAttached) {
		return echo.NewHTTPError(http.StatusConflict, "ticket already has a waiter")
	}
	if err != nil {
		return err
	}

	if result.Status == entity.WaitStatusNotFound {
		return c.JSON(http.StatusNotFound, result)
	}

	return c.JSON(http.StatusOK, result)
}
