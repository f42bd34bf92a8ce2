package domain

import (
	"strings"
	"time"
)

// UserType distinguishes regular clients from the barbershop administrator
type UserType string

const (
	UserTypeClient UserType = "client"
	UserTypeAdmin  UserType = "admin"
)

// Client represents a person registered by phone number
type Client struct {
	ID        int64
	Phone     string
	FirstName string
	LastName  string
	Type      UserType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns "First Last" without dangling spaces
func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// IsAdmin returns true for the administrator account
func (c *Client) IsAdmin() bool {
	return c.Type == UserTypeAdmin
}
