package routes

import (
	"strings"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/crypto/bcrypt"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/models"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/storage"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/utils"
)

// GET /api/admin/users
func AdminListUsers(ctx iris.Context) {
	var admins []models.AdminUser
	if err := storage.DB.Order("created_at").Find(&admins).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONData(ctx, admins)
}

type AdminUserInput struct {
	FirstName string `json:"firstName" validate:"max=80"`
	LastName  string `json:"lastName" validate:"max=80"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// POST /api/admin/users
func AdminCreateUser(ctx iris.Context) {
	var input AdminUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.AdminUser
	if err := storage.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "an admin with this email already exists", ctx)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	admin := models.AdminUser{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     email,
		Password:  string(hashed),
		Role:      "admin",
	}

	if err := storage.DB.Create(&admin).Error; err != nil {
		if isDuplicateKey(err) {
			utils.CreateError(iris.StatusConflict, "Conflict", "an admin with this email already exists", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "create", "admin_user", admin.ID, nil, admin)
	ctx.StatusCode(iris.StatusCreated)
	utils.JSONData(ctx, admin)
}

type AdminRoleInput struct {
	Role string `json:"role" validate:"required,oneof=admin super_admin"`
}

// PATCH /api/admin/users/:id/role — super_admin only (enforced in routing).
func AdminChangeUserRole(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid id")
		return
	}

	var admin models.AdminUser
	if err := storage.DB.First(&admin, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "admin user not found")
		return
	}

	var input AdminRoleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := admin
	admin.Role = input.Role
	if err := storage.DB.Model(&admin).Update("role", input.Role).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "change_role", "admin_user", admin.ID, before, admin)
	utils.JSONData(ctx, admin)
}

// DELETE /api/admin/users/:id — an admin cannot delete their own account.
func AdminDeleteUser(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid id")
		return
	}

	claims := jwt.Get(ctx).(*utils.AccessToken)
	if claims.ID == id {
		utils.JSONError(ctx, iris.StatusBadRequest, "cannot delete your own account")
		return
	}

	var admin models.AdminUser
	if err := storage.DB.First(&admin, id).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "admin user not found")
		return
	}

	// Hard delete, otherwise the unique email index blocks re-inviting later.
	if err := storage.DB.Unscoped().Delete(&admin).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "delete", "admin_user", admin.ID, admin, nil)
	utils.JSONData(ctx, iris.Map{"deleted": true})
}
