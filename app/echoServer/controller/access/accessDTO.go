package access

type RoleReq struct {
	Role    string `json:"role" validate:"required"`
	Address string `json:"address" validate:"required"`
}

type BlacklistReq struct {
	Address     string `json:"address" validate:"required"`
	Blacklisted *bool  `json:"blacklisted" validate:"required"`
}
