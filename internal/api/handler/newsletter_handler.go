package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/unihub/portal/internal/api/metrics"
	"github.com/unihub/portal/internal/core/ports"
)

type NewsletterHandler struct {
	newsletter ports.NewsletterService
}

func NewNewsletterHandler(newsletter ports.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletter: newsletter}
}

// Subscribe turns on the newsletter for the account with the given email.
//
// @Summary      Subscribe
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      subscriptionRequest  true  "Email"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  map[string]string
// @Router       /newsletter/subscribe [post]
func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var req subscriptionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.newsletter.Subscribe(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "subscribed"})
}

// Unsubscribe turns off the newsletter for the account with the given email.
//
// @Summary      Unsubscribe
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      subscriptionRequest  true  "Email"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  map[string]string
// @Router       /newsletter/unsubscribe [post]
func (h *NewsletterHandler) Unsubscribe(c echo.Context) error {
	var req subscriptionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.newsletter.Unsubscribe(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "unsubscribed"})
}

// Send queues the newsletter for every subscriber.
//
// @Summary      Send newsletter
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      newsletterRequest  true  "Newsletter"
// @Success      202   {object}  newsletterResponse
// @Failure      400   {object}  map[string]string
// @Router       /newsletter/send [post]
func (h *NewsletterHandler) Send(c echo.Context) error {
	var req newsletterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	n, err := h.newsletter.Send(c.Request().Context(), req.Subject, req.Message)
	if err != nil {
		return err
	}
	metrics.NewsletterRecipientsTotal.Add(float64(n))
	return c.JSON(http.StatusAccepted, newsletterResponse{Recipients: n})
}
