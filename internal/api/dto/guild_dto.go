package dto

// GuildConfigRequest payload. The guild id comes from the route path.
type GuildConfigRequest struct {
	StaffRoleID      string `json:"staff_role_id"`
	DutyRoleID       string `json:"duty_role_id"`
	TicketCategoryID string `json:"ticket_category_id"`
	DutyBoardChannel string `json:"duty_board_channel_id"`
	LogChannelID     string `json:"log_channel_id"`
}

// GuildConfigResponse view of one guild's resolved identifiers.
type GuildConfigResponse struct {
	GuildID          string `json:"guild_id"`
	StaffRoleID      string `json:"staff_role_id"`
	DutyRoleID       string `json:"duty_role_id"`
	TicketCategoryID string `json:"ticket_category_id"`
	DutyBoardChannel string `json:"duty_board_channel_id"`
	LogChannelID     string `json:"log_channel_id"`
}
