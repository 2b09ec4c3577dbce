package services

import (
	"database/sql"

	"casetrack/backend/database"
)

// RoleHierarchy defines the hierarchy of roles in the system
// Higher numbers have more permissions
var RoleHierarchy = map[string]int{
	"user":       1,
	"admin":      2,
	"superadmin": 3,
}

// IsRoleAtLeast checks if a role is at least at the specified level
func IsRoleAtLeast(userRole, requiredRole string) bool {
	userLevel, userExists := RoleHierarchy[userRole]
	requiredLevel, requiredExists := RoleHierarchy[requiredRole]

	// If the role doesn't exist in our hierarchy, default behavior
	if !userExists || !requiredExists {
		return userRole == requiredRole
	}

	return userLevel >= requiredLevel
}

// GetUserRole gets the role of a user
func GetUserRole(userID string) (string, error) {
	var role sql.NullString
	err := database.DB.QueryRow("SELECT role FROM users WHERE id = ?", userID).Scan(&role)
	if err != nil {
		return "", err
	}

	if !role.Valid || role.String == "" {
		return "user", nil // Default role
	}

	return role.String, nil
}

// IsAdmin checks if a user is an admin or super admin
func IsAdmin(userID string) (bool, error) {
	role, err := GetUserRole(userID)
	if err != nil {
		return false, err
	}

	return IsRoleAtLeast(role, "admin"), nil
}
