package utils

// Permission levels
const (
	DeveloperPermission = "developer"
	AdminPermission     = "admin"
	UserPermission      = "user"
)

// contains checks if a slice of strings contains an element.
func contains(slice []string, item string) bool {
	for _, a := range slice {
		if a == item {
			return true
		}
	}
	return false
}

// CheckPermission returns the highest permission level a member holds,
// given their role ids and the configured developer/admin lists.
func CheckPermission(memberRoleIDs []string, userID string, adminRoleIDs, developerUserIDs []string) string {
	if contains(developerUserIDs, userID) {
		return DeveloperPermission
	}

	for _, roleID := range memberRoleIDs {
		if contains(adminRoleIDs, roleID) {
			return AdminPermission
		}
	}

	return UserPermission
}

// IsPrivileged reports whether a permission level may run admin commands.
func IsPrivileged(level string) bool {
	return level == AdminPermission || level == DeveloperPermission
}
