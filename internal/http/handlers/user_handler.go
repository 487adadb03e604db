package handlers

import (
	"encoding/json"
	"io"
	"strconv"

	applog "stockroom/internal/log"
	"stockroom/internal/services"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Auth        *services.AuthService
	Users       *services.UserService
	Inventories *services.InventoryService
	Products    *services.ProductService
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, services.BadRequest("Invalid user data format."))
	}
	u, err := h.Auth.Register(in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "user.register", map[string]any{"id": u.ID, "email": u.Email})
	return c.Status(fiber.StatusCreated).JSON(u.DTO())
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fail(c, services.BadRequest("Invalid login data format."))
	}
	u, token, err := h.Auth.Login(in.Email, in.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": in.Email})
		return fail(c, err)
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": u.Email})
	c.Set(fiber.HeaderAuthorization, "Bearer "+token)
	return c.JSON(fiber.Map{
		"message":   "Login successful",
		"token":     token,
		"id":        strconv.FormatInt(u.ID, 10),
		"username":  u.Username,
		"name":      u.Name,
		"email":     u.Email,
		"photoPath": u.PhotoPath,
	})
}

func (h *UserHandler) Profile(c *fiber.Ctx) error {
	u, err := h.Users.ByID(currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(u.DTO())
}

// UpdateProfile accepts plain JSON or multipart with a "user" JSON part and
// an optional "photo" file.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var in services.UserUpdateInput

	if form, err := c.MultipartForm(); err == nil && form != nil {
		userJSON := c.FormValue("user")
		if userJSON != "" {
			if err := json.Unmarshal([]byte(userJSON), &in); err != nil {
				return fail(c, services.BadRequest("Invalid user data format."))
			}
		}
		if fh, err := c.FormFile("photo"); err == nil && fh != nil {
			f, err := fh.Open()
			if err != nil {
				return fail(c, err)
			}
			data, err := io.ReadAll(f)
			_ = f.Close()
			if err != nil {
				return fail(c, err)
			}
			path, err := h.Users.SavePhoto(data)
			if err != nil {
				return fail(c, err)
			}
			in.PhotoPath = &path
		}
	} else if err := c.BodyParser(&in); err != nil {
		return fail(c, services.BadRequest("Invalid user data format."))
	}

	u, err := h.Users.Update(currentUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "user.profile.update", nil)
	return c.JSON(u.DTO())
}

func (h *UserHandler) DeleteProfile(c *fiber.Ctx) error {
	if err := h.Users.Delete(currentUserID(c)); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "user.profile.delete", nil)
	return c.JSON(fiber.Map{"message": "Account deleted successfully"})
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Users.All()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	u, err := h.Users.ByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(u.DTO())
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	var in services.UserUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, services.BadRequest("Invalid user data format."))
	}
	u, err := h.Users.Update(id, in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "user.update", map[string]any{"id": id})
	return c.JSON(u.DTO())
}

func (h *UserHandler) UpdatePassword(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	var in struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fail(c, services.BadRequest("Invalid password data format."))
	}
	if err := h.Users.UpdatePassword(id, in.Password); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "user.password.update", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// MyInventories lists the caller's inventories.
func (h *UserHandler) MyInventories(c *fiber.Ctx) error {
	out, err := h.Inventories.ByUser(currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// MyProducts lists the caller's products.
func (h *UserHandler) MyProducts(c *fiber.Ctx) error {
	out, err := h.Products.ByUser(currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
