package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/unihub/portal/internal/core/ports"
)

type NewsHandler struct {
	news ports.NewsService
}

func NewNewsHandler(news ports.NewsService) *NewsHandler {
	return &NewsHandler{news: news}
}

// List returns articles, newest first.
//
// @Summary      List news
// @Tags         news
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.News
// @Router       /news [get]
func (h *NewsHandler) List(c echo.Context) error {
	items, err := h.news.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns one article.
//
// @Summary      Get news
// @Tags         news
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "News id"
// @Success      200  {object}  domain.News
// @Failure      404  {object}  map[string]string
// @Router       /news/{id} [get]
func (h *NewsHandler) Get(c echo.Context) error {
	n, err := h.news.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

// Create publishes an article authored by the caller.
//
// @Summary      Create news
// @Tags         news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      newsRequest  true  "Article"
// @Success      201   {object}  domain.News
// @Failure      400   {object}  map[string]string
// @Router       /news [post]
func (h *NewsHandler) Create(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	var req newsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	n, err := h.news.Create(c.Request().Context(), caller.AccountID, ports.NewsInput{Title: req.Title, Content: req.Content})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, n)
}

// Update edits an article; the caller becomes its author.
//
// @Summary      Update news
// @Tags         news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "News id"
// @Param        body  body      newsRequest  true  "Article"
// @Success      200   {object}  domain.News
// @Failure      404   {object}  map[string]string
// @Router       /news/{id} [put]
func (h *NewsHandler) Update(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	var req newsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	n, err := h.news.Update(c.Request().Context(), c.Param("id"), caller.AccountID, ports.NewsInput{Title: req.Title, Content: req.Content})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

// Delete removes an article.
//
// @Summary      Delete news
// @Tags         news
// @Security     BearerAuth
// @Param        id   path  string  true  "News id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /news/{id} [delete]
func (h *NewsHandler) Delete(c echo.Context) error {
	if err := h.news.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
