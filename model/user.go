package model

// User is somebody who lists items, books them, or asks for them.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
