package domain

type Account struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Avatar   string `json:"avatar,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Session is the result of a successful login.
type Session struct {
	Token   string  `json:"token"`
	Account Account `json:"account"`
}

// Loyalty is a secondary read model; callers tolerate its absence.
type Loyalty struct {
	Points int    `json:"points"`
	Tier   string `json:"tier"`
}
