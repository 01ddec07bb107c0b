package constants

import (
	"fmt"

	userModel "stogie_backend/internals/features/users/user/model"
)

const (
	RoleUser  = userModel.RoleUser
	RoleAdmin = userModel.RoleAdmin
)

const ErrOnlyAdminsCanAccess = "Only admins may %s."

func RoleErrorAdmin(action string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, action)
}

var (
	AllRoles  = []string{RoleUser, RoleAdmin}
	AdminOnly = []string{RoleAdmin}
)
