package domain

import (
	"strings"
	"time"
)

const (
	DefaultTagline = "photographer."
	DefaultColumns = 2
	DefaultGap     = 20
	ThemeLight     = "light"
	ThemeDark      = "dark"
	DefaultTheme   = ThemeLight
)

type User struct {
	ID                string
	Username          string // lower-cased, unique
	Email             string // lower-cased, unique
	PasswordHash      string // argon2id, or bcrypt for accounts carried over from the old store
	DisplayName       string
	Tagline           string
	Bio               string
	Avatar            Avatar
	SocialLinks       SocialLinks
	PortfolioSettings PortfolioSettings
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Avatar struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type SocialLinks struct {
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	Website   string `json:"website"`
	Email     string `json:"email"`
}

type PortfolioSettings struct {
	DefaultColumns int    `json:"defaultColumns"`
	DefaultGap     int    `json:"defaultGap"`
	Theme          string `json:"theme"`
}

// NewUser returns an active user with the profile defaults applied. Username
// and email are normalized.
func NewUser(username, email, passwordHash, displayName string, now time.Time) User {
	return User{
		Username:     NormalizeIdentity(username),
		Email:        NormalizeIdentity(email),
		PasswordHash: passwordHash,
		DisplayName:  strings.TrimSpace(displayName),
		Tagline:      DefaultTagline,
		PortfolioSettings: PortfolioSettings{
			DefaultColumns: DefaultColumns,
			DefaultGap:     DefaultGap,
			Theme:          DefaultTheme,
		},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizeIdentity is the canonical form of usernames and emails; lookups
// and uniqueness are defined on it.
func NormalizeIdentity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
