package model

// AuthClaims is the decoded form of an employee session token.
type AuthClaims struct {
	EmployeeID int64  `json:"empId"`
	Audience   string `json:"aud"`
	TokenID    string `json:"jti"`
	ExpiresAt  int64  `json:"exp"`
}

type EmployeeLoginResponse struct {
	ID       int64  `json:"id"`
	UserName string `json:"userName"`
	Name     string `json:"name"`
	Token    string `json:"token"`
}
