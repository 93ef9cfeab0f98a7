package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/vsconnect/vsconnect-backend/internal/domain"
	"github.com/vsconnect/vsconnect-backend/internal/service"
)

// UserHandler handles /usuarios HTTP requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserRequest represents the create/update request body (JSON or multipart form)
type UserRequest struct {
	Name     string `json:"name" form:"name" validate:"required,max=255"`
	Email    string `json:"email" form:"email" validate:"required,email,max=255"`
	Password string `json:"password" form:"password" validate:"required"`
	Role     string `json:"role" form:"role" validate:"required"`
}

// ListUsers handles GET /usuarios
// @Summary List users
// @Description Returns every registered user, unfiltered and unpaginated
// @Tags usuarios
// @Produce json
// @Success 200 {array} domain.User
// @Router /usuarios [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		return NewInternalError(c, "Failed to list users")
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser handles GET /usuarios/:id
// @Summary Get a user
// @Tags usuarios
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} domain.User
// @Failure 404 {object} ProblemDetails
// @Router /usuarios/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid user id", []ValidationError{
			{Field: "id", Message: "Must be a valid UUID"},
		})
	}

	user, err := h.userService.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "Usuário não encontrado")
		}
		log.Error().Err(err).Str("user_id", id.String()).Msg("Failed to get user")
		return NewInternalError(c, "Failed to get user")
	}

	return c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /usuarios
// @Summary Register a user
// @Description Registers a new user; accepts JSON or multipart form with an optional image file
// @Tags usuarios
// @Accept json
// @Accept mpfd
// @Produce json
// @Param name formData string true "Name"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param role formData string true "Role (admin, dev or cliente)"
// @Param image formData file false "Profile image"
// @Success 201 {object} domain.User
// @Failure 400 {object} ProblemDetails
// @Router /usuarios [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	input, err := h.bindInput(c)
	if input == nil {
		return err // error response already written
	}

	user, err := h.userService.Create(c.Request().Context(), *input)
	if err != nil {
		return h.writeUserError(c, err, "Failed to create user")
	}

	log.Info().Str("user_id", user.ID.String()).Str("email", user.Email).Msg("User created")

	return c.JSON(http.StatusCreated, user)
}

// UpdateUser handles PUT /usuarios/:id
// @Summary Replace a user
// @Description Overwrites every field of an existing user; image and password are re-derived
// @Tags usuarios
// @Accept json
// @Accept mpfd
// @Produce json
// @Param id path string true "User ID"
// @Success 201 {object} domain.User
// @Failure 404 {object} ProblemDetails
// @Router /usuarios/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid user id", []ValidationError{
			{Field: "id", Message: "Must be a valid UUID"},
		})
	}

	input, err := h.bindInput(c)
	if input == nil {
		return err // error response already written
	}

	user, err := h.userService.Update(c.Request().Context(), id, *input)
	if err != nil {
		return h.writeUserError(c, err, "Failed to update user")
	}

	log.Info().Str("user_id", user.ID.String()).Msg("User updated")

	return c.JSON(http.StatusCreated, user)
}

// DeleteUser handles DELETE /usuarios/:id
// @Summary Delete a user
// @Tags usuarios
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /usuarios/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid user id", []ValidationError{
			{Field: "id", Message: "Must be a valid UUID"},
		})
	}

	if err := h.userService.Delete(id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "Usuário não encontrado")
		}
		log.Error().Err(err).Str("user_id", id.String()).Msg("Failed to delete user")
		return NewInternalError(c, "Failed to delete user")
	}

	log.Info().Str("user_id", id.String()).Msg("User deleted")

	return c.NoContent(http.StatusNoContent)
}

// bindInput binds and validates the request body and reads the optional
// image file part. On failure it writes the error response and returns a
// nil input; callers must propagate the returned error value as-is.
func (h *UserHandler) bindInput(c echo.Context) (*service.UserInput, error) {
	var req UserRequest
	if err := c.Bind(&req); err != nil {
		return nil, NewValidationError(c, "Invalid request body", nil)
	}

	if err := c.Validate(&req); err != nil {
		return nil, NewValidationError(c, "Validation failed", fieldErrors(err))
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "role", Message: "Must be one of: admin, dev, cliente"},
		})
	}

	input := &service.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	}

	image, err := h.readImage(c)
	if err != nil {
		return nil, NewInternalError(c, "Failed to read image file")
	}
	input.Image = image

	return input, nil
}

// readImage extracts the optional image file from a multipart request
func (h *UserHandler) readImage(c echo.Context) (*service.ImageInput, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		return nil, nil
	}

	file, err := c.FormFile("image")
	if err != nil {
		return nil, nil // no image part present
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	return &service.ImageInput{Data: data, Filename: file.Filename}, nil
}

// writeUserError maps service errors from create/update to HTTP responses
func (h *UserHandler) writeUserError(c echo.Context, err error, logMsg string) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return NewNotFoundError(c, "Usuário não encontrado")
	case errors.Is(err, domain.ErrEmailTaken):
		return NewDuplicateEmailError(c, "Esse email já está cadastrado")
	case errors.Is(err, domain.ErrInvalidRole):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "role", Message: "Must be one of: admin, dev, cliente"},
		})
	case errors.Is(err, service.ErrImageTooLarge),
		errors.Is(err, service.ErrInvalidFormat),
		errors.Is(err, service.ErrInvalidImageData):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "image", Message: err.Error()},
		})
	case errors.Is(err, domain.ErrImageStorageNotConfigured):
		return NewServiceUnavailableError(c, "Image uploads are disabled (storage not configured)")
	case errors.Is(err, domain.ErrUploadFailed):
		log.Error().Err(err).Msg(logMsg)
		return NewUpstreamError(c, "Failed to store image")
	default:
		log.Error().Err(err).Msg(logMsg)
		return NewInternalError(c, logMsg)
	}
}
