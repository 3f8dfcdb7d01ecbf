package models

// TodoItem is a single entry in a user's list. IDs are chosen by the client
// and are unique per user only.
type TodoItem struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}
