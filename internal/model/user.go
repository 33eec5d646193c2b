package model

import "time"

// User is a directory entry. Only id, name and email are part of the public JSON shape.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"-" gorm:"index"`
}

// UserList is the envelope returned by the list endpoint and the shape of the persisted document.
type UserList struct {
	Users []User `json:"users"`
}

// DeleteResult reports the outcome of a delete.
type DeleteResult struct {
	Success bool `json:"success"`
}
