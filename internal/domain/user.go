package domain

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID        int
	Username  string
	Email     string
	Role      string
	FullName  *string
	ClusterID *int
	CreatedAt time.Time
}

func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}
