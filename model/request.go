package model

import "time"

// ItemRequest is a textual ask for an item someone might list. Items created
// in answer to it carry its id in their RequestID.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"-"`
	Created     time.Time `json:"created"`
}
