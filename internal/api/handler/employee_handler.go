package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/employee-api/internal/api/metrics"
	"github.com/staffdesk/employee-api/internal/api/middleware"
	"github.com/staffdesk/employee-api/internal/core/domain"
	"github.com/staffdesk/employee-api/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for employee record operations.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// Create handles POST /employees.
//
// @Summary      Create a new employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEmployeeRequest  true  "Employee fields"
// @Success      201   {object}  insertedResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	identity, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	var req createEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	id, err := h.service.Create(c.Request().Context(), identity, ports.CreateEmployeeInput{
		Name:       req.Name,
		Position:   req.Position,
		Department: req.Department,
		Salary:     req.Salary,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingFields) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create employee"})
	}

	metrics.RecordsMutatedTotal.WithLabelValues("create", identity.Role).Inc()
	return c.JSON(http.StatusCreated, insertedResponse{InsertedID: id})
}

// List handles GET /employees. Admins see every record; users see only
// records they created. Sorted by most recent update first.
//
// @Summary      List employees visible to the caller
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Employee
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	identity, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	records, err := h.service.List(c.Request().Context(), identity)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch employees"})
	}
	return c.JSON(http.StatusOK, records)
}

// Get handles GET /employees/:id.
//
// @Summary      Get an employee by id
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  domain.Employee
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	identity, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	record, err := h.service.Get(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmployeeNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Employee not found"})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Access denied"})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch employee"})
		}
	}
	return c.JSON(http.StatusOK, record)
}

// Update handles PUT /employees/:id. createdBy in the payload is ignored:
// ownership never changes after creation.
//
// @Summary      Update an employee by id
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Employee id"
// @Param        body  body      updateEmployeeRequest  true  "Fields to update"
// @Success      200   {object}  modifiedResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	identity, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	var req updateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	modified, err := h.service.Update(c.Request().Context(), identity, c.Param("id"), ports.UpdateEmployeeInput{
		Name:       req.Name,
		Position:   req.Position,
		Department: req.Department,
		Salary:     req.Salary,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmployeeNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Employee not found"})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Access denied"})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update employee"})
		}
	}

	metrics.RecordsMutatedTotal.WithLabelValues("update", identity.Role).Inc()
	return c.JSON(http.StatusOK, modifiedResponse{ModifiedCount: modified})
}

// Delete handles DELETE /employees/:id.
//
// @Summary      Remove an employee by id
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  deletedResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	identity, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	deleted, err := h.service.Delete(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmployeeNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Employee not found"})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Access denied"})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete employee"})
		}
	}

	metrics.RecordsMutatedTotal.WithLabelValues("delete", identity.Role).Inc()
	return c.JSON(http.StatusOK, deletedResponse{DeletedCount: deleted})
}
