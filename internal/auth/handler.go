package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	Repo   *Repository
	Secret []byte
}

func NewHandler(repo *Repository, secret []byte) *Handler {
	return &Handler{Repo: repo, Secret: secret}
}

type signupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type authResponse struct {
	AccessToken string `json:"accessToken"`
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
}

func (h *Handler) Signup(c *fiber.Ctx) error {
	var body signupRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	body.Username = strings.TrimSpace(body.Username)
	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	switch {
	case body.Username == "":
		return fiber.NewError(fiber.StatusBadRequest, "username required")
	case body.Email == "" || !strings.Contains(body.Email, "@"):
		return fiber.NewError(fiber.StatusBadRequest, "valid email required")
	case len(body.Password) < 8:
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 8 characters")
	case body.Password != body.ConfirmPassword:
		return fiber.NewError(fiber.StatusBadRequest, "passwords do not match")
	}

	user, err := h.Repo.CreateUser(UserContext(c), body.Username, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "could not create user")
	}

	token, err := GenerateToken(h.Secret, user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}

	return c.Status(fiber.StatusCreated).JSON(authResponse{
		AccessToken: token,
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
	})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	body.UsernameOrEmail = strings.TrimSpace(body.UsernameOrEmail)
	if body.UsernameOrEmail == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "username/email and password required")
	}

	user, err := h.Repo.FindByIdentifier(UserContext(c), body.UsernameOrEmail)
	if err != nil {
		// Wrong identifier and wrong password read the same to the caller.
		return fiber.NewError(fiber.StatusUnauthorized, "invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid username or password")
	}

	token, err := GenerateToken(h.Secret, user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}

	return c.JSON(authResponse{
		AccessToken: token,
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
	})
}
