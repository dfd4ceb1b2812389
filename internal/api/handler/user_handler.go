package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/unihub/portal/internal/core/ports"
)

type UserHandler struct {
	accounts ports.AccountService
}

func NewUserHandler(accounts ports.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

// List returns a page of accounts.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "0-based page"  default(0)
// @Param        size  query     int  false  "Page size"     default(10)
// @Success      200   {object}  ports.Page[domain.Account]
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, size := 0, 0
	if err := echo.QueryParamsBinder(c).Int("page", &page).Int("size", &size).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "page and size must be integers")
	}

	result, err := h.accounts.List(c.Request().Context(), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Students returns a page of STUDENT accounts, optionally filtered by username.
//
// @Summary      List students
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int     false  "0-based page"  default(0)
// @Param        name  query     string  false  "Username substring"
// @Success      200   {object}  ports.Page[domain.Account]
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /users/students [get]
func (h *UserHandler) Students(c echo.Context) error {
	page := 0
	if err := echo.QueryParamsBinder(c).Int("page", &page).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "page must be an integer")
	}

	result, err := h.accounts.ListStudents(c.Request().Context(), page, c.QueryParam("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Get returns one account.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  domain.Account
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	account, err := h.accounts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Create adds an account with explicit roles (USER when none are given).
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account"
// @Success      201   {object}  domain.Account
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	account, err := h.accounts.Create(c.Request().Context(), ports.CreateAccountInput{
		RegisterInput: req.toInput(),
		Roles:         req.Roles,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, account)
}

// Update changes the provided account fields.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Account id"
// @Param        body  body      updateUserRequest  true  "Changes"
// @Success      200   {object}  domain.Account
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	account, err := h.accounts.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Delete removes an account.
//
// @Summary      Delete user
// @Tags         users
// @Security     BearerAuth
// @Param        id   path  string  true  "Account id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.accounts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
