package repoargs

import "github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"

type CreateUser struct {
	Username string
	Email    string
	Password string
	Role     domain.RoleType
}
