package models

// Partial-update shapes. A nil field means "leave unchanged".

type UserPatch struct {
	Username  *string     `json:"username,omitempty"`
	Email     *string     `json:"email,omitempty"`
	AvatarURL *string     `json:"avatar_url,omitempty"`
	Status    *UserStatus `json:"status,omitempty"`
}

func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
}

type ServerPatch struct {
	Name    *string `json:"name,omitempty"`
	IconURL *string `json:"icon_url,omitempty"`
}

func (p ServerPatch) Apply(s *Server) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.IconURL != nil {
		s.IconURL = *p.IconURL
	}
}

type RolePatch struct {
	Name        *string       `json:"name,omitempty"`
	Color       *string       `json:"color,omitempty"`
	Permissions *[]Permission `json:"permissions,omitempty"`
	Position    *int          `json:"position,omitempty"`
}

func (p RolePatch) Apply(r *Role) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Color != nil {
		r.Color = *p.Color
	}
	if p.Permissions != nil {
		r.Permissions = *p.Permissions
	}
	if p.Position != nil {
		r.Position = *p.Position
	}
}
