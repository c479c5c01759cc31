package auth

import "github.com/spec-kit/issue-tracker/internal/domain"

// CanModify reports whether the principal may change the issue: the owning
// user or any administrator. Denial is an ordinary outcome, not an error.
func CanModify(principal *domain.User, issue *domain.Issue) bool {
	if principal == nil || issue == nil {
		return false
	}
	if principal.IsAdmin() {
		return true
	}
	return issue.OwnerID == principal.ID
}

// CanListAll reports whether the principal may read the full issue listing.
func CanListAll(principal *domain.User) bool {
	return principal.IsAdmin()
}
