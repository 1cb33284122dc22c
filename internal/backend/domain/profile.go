package domain

// ProfilePatch is the editable part of a user as sent by clients. Nil fields
// are left untouched. Credentials and identity fields have no place here, so
// a client sending them has them dropped at decode time.
type ProfilePatch struct {
	DisplayName       *string                 `json:"displayName,omitempty"`
	Tagline           *string                 `json:"tagline,omitempty"`
	Bio               *string                 `json:"bio,omitempty"`
	SocialLinks       *SocialLinksPatch       `json:"socialLinks,omitempty"`
	PortfolioSettings *PortfolioSettingsPatch `json:"portfolioSettings,omitempty"`
}

type SocialLinksPatch struct {
	Instagram *string `json:"instagram,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Website   *string `json:"website,omitempty"`
	Email     *string `json:"email,omitempty"`
}

type PortfolioSettingsPatch struct {
	DefaultColumns *int    `json:"defaultColumns,omitempty"`
	DefaultGap     *int    `json:"defaultGap,omitempty"`
	Theme          *string `json:"theme,omitempty"`
}

// ProfileUpdate is what a store writes. Nested groups are written whole.
type ProfileUpdate struct {
	DisplayName       *string
	Tagline           *string
	Bio               *string
	Avatar            *Avatar
	SocialLinks       *SocialLinks
	PortfolioSettings *PortfolioSettings
}

// IsEmpty reports whether the update would change nothing.
func (u ProfileUpdate) IsEmpty() bool {
	return u.DisplayName == nil && u.Tagline == nil && u.Bio == nil &&
		u.Avatar == nil && u.SocialLinks == nil && u.PortfolioSettings == nil
}

// Merge resolves p against the current user into a full update.
func (p ProfilePatch) Merge(current User) ProfileUpdate {
	up := ProfileUpdate{
		DisplayName: p.DisplayName,
		Tagline:     p.Tagline,
		Bio:         p.Bio,
	}

	if p.SocialLinks != nil {
		links := current.SocialLinks
		setString(&links.Instagram, p.SocialLinks.Instagram)
		setString(&links.Twitter, p.SocialLinks.Twitter)
		setString(&links.Website, p.SocialLinks.Website)
		setString(&links.Email, p.SocialLinks.Email)
		up.SocialLinks = &links
	}

	if p.PortfolioSettings != nil {
		settings := current.PortfolioSettings
		if v := p.PortfolioSettings.DefaultColumns; v != nil {
			settings.DefaultColumns = *v
		}
		if v := p.PortfolioSettings.DefaultGap; v != nil {
			settings.DefaultGap = *v
		}
		setString(&settings.Theme, p.PortfolioSettings.Theme)
		up.PortfolioSettings = &settings
	}

	return up
}

// Apply writes u onto user in place.
func (u ProfileUpdate) Apply(user *User) {
	setString(&user.DisplayName, u.DisplayName)
	setString(&user.Tagline, u.Tagline)
	setString(&user.Bio, u.Bio)
	if u.Avatar != nil {
		user.Avatar = *u.Avatar
	}
	if u.SocialLinks != nil {
		user.SocialLinks = *u.SocialLinks
	}
	if u.PortfolioSettings != nil {
		user.PortfolioSettings = *u.PortfolioSettings
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
