package http

import (
	"time"

	"github.com/aussiebroadwan/folio/internal/backend/domain"
)

// UserView is the public profile of a user. It never carries the password
// hash.
type UserView struct {
	ID                string                   `json:"id" example:"01J9Z6Q4R8KX2M3N4P5Q6R7S8T"`
	Username          string                   `json:"username" example:"alice"`
	Email             string                   `json:"email" example:"alice@example.com"`
	DisplayName       string                   `json:"displayName" example:"Alice"`
	Tagline           string                   `json:"tagline" example:"photographer."`
	Bio               string                   `json:"bio"`
	Avatar            domain.Avatar            `json:"avatar"`
	SocialLinks       domain.SocialLinks       `json:"socialLinks"`
	PortfolioSettings domain.PortfolioSettings `json:"portfolioSettings"`
	IsActive          bool                     `json:"isActive"`
	CreatedAt         time.Time                `json:"createdAt"`
	UpdatedAt         time.Time                `json:"updatedAt"`
}

func newUserView(u domain.User) UserView {
	return UserView{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		DisplayName:       u.DisplayName,
		Tagline:           u.Tagline,
		Bio:               u.Bio,
		Avatar:            u.Avatar,
		SocialLinks:       u.SocialLinks,
		PortfolioSettings: u.PortfolioSettings,
		IsActive:          u.IsActive,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"correct horse"`
}

// AuthResponse answers register and login. The refresh token travels in
// the cookie only.
type AuthResponse struct {
	Message     string   `json:"message" example:"Login successful"`
	AccessToken string   `json:"accessToken"`
	User        UserView `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type ProfileResponse struct {
	Message string   `json:"message" example:"Profile updated"`
	User    UserView `json:"user"`
}

type AvatarResponse struct {
	User         UserView `json:"user"`
	ThumbnailURL string   `json:"thumbnailUrl"`
}

type HealthResponse struct {
	Status  string            `json:"status" example:"ok"`
	Uptime  string            `json:"uptime,omitempty" example:"1h2m3s"`
	Version string            `json:"version,omitempty" example:"v0.1.0"`
	Checks  map[string]string `json:"checks,omitempty"`
}
