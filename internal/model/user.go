package model

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// User represents a registered employee.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	EmployeeID   string    `json:"employee_id"`
	Team         string    `json:"team"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
}

// Roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// RoleAtLeast checks if role meets or exceeds the minimum required role.
// Unknown roles never pass.
func RoleAtLeast(role, minimum string) bool {
	levels := map[string]int{
		RoleAdmin: 2,
		RoleUser:  1,
	}
	r, ok := levels[role]
	if !ok {
		return false
	}
	m, ok := levels[minimum]
	if !ok {
		return false
	}
	return r >= m
}

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// ValidatePassword checks a plaintext password against the password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// NormalizeEmployeeID canonicalizes an employee ID: an "N" prefix followed
// by exactly seven digits. A bare seven-digit number gets the prefix added.
func NormalizeEmployeeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("employee id required")
	}
	if !strings.HasPrefix(id, "N") {
		id = "N" + id
	}
	if len(id) != 8 {
		return "", fmt.Errorf("employee id must be N followed by 7 digits")
	}
	for _, r := range id[1:] {
		if !unicode.IsDigit(r) {
			return "", fmt.Errorf("employee id must be N followed by 7 digits")
		}
	}
	return id, nil
}
