package domain

type RoleType string

const (
	RoleCreator  RoleType = "creator"
	RoleInvestor RoleType = "investor"
)

// IsValid сообщает, является ли роль одной из поддерживаемых системой.
func (r RoleType) IsValid() bool {
	return r == RoleCreator || r == RoleInvestor
}
