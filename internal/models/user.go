package models

// User is a registered account together with the todos it owns.
type User struct {
	Username     string             `json:"username"`
	PasswordHash string             `json:"-"` // don’t expose hash
	Todos        map[int64]TodoItem `json:"todos"`
}

// Clone returns a copy of u that shares no map with the original.
func (u User) Clone() User {
	todos := make(map[int64]TodoItem, len(u.Todos))
	for id, item := range u.Todos {
		todos[id] = item
	}
	u.Todos = todos
	return u
}

// AuthClaim is the identity a caller presents with a single request.
type AuthClaim struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
