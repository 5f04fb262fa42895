package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"doctrack/internal/model"
	"doctrack/internal/service"
)

// paramID validates the named route parameter as a UUID.
func paramID(c *fiber.Ctx, name string) (string, bool) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// CreateCompany handles POST /api/companies.
//
// @Summary Create a company
// @Tags companies
// @Accept json
// @Produce json
// @Param company body model.CompanyInput true "Company payload"
// @Success 201 {object} model.CompanyDTO
// @Router /api/companies [post]
func CreateCompany(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.CompanyInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}

		dto, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(dto)
	}
}

// UpdateCompany handles PUT /api/companies/:id. Only the name is mutable.
//
// @Summary Rename a company
// @Tags companies
// @Accept json
// @Produce json
// @Param id path string true "Company ID"
// @Param company body model.CompanyInput true "Company payload"
// @Success 200 {object} model.CompanyDTO
// @Router /api/companies/{id} [put]
func UpdateCompany(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var in model.CompanyInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}

		dto, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(dto)
	}
}

// DeleteCompany handles DELETE /api/companies/:id.
//
// @Summary Delete a company without documents
// @Tags companies
// @Param id path string true "Company ID"
// @Success 204
// @Router /api/companies/{id} [delete]
func DeleteCompany(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetCompany handles GET /api/companies/:id.
//
// @Summary Get a company with its document count
// @Tags companies
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} model.CompanyDTO
// @Router /api/companies/{id} [get]
func GetCompany(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		dto, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(dto)
	}
}

// ListCompanies handles GET /api/companies with page, size, sortBy, order and
// search query parameters.
//
// @Summary List companies
// @Tags companies
// @Produce json
// @Param page query int false "1-based page number"
// @Param size query int false "Page size"
// @Param sortBy query string false "Sort column (name, email, created_at)"
// @Param order query string false "asc or desc"
// @Param search query string false "Name substring filter"
// @Success 200 {object} service.CompanyListResult
// @Router /api/companies [get]
func ListCompanies(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
		}
		size, err := strconv.Atoi(c.Query("size", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SIZE", "invalid size")
		}

		res, err := svc.List(c.UserContext(), service.CompanyListQuery{
			Page:     page,
			Size:     size,
			SortBy:   c.Query("sortBy"),
			SortDesc: c.Query("order") == "desc",
			Search:   c.Query("search"),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
