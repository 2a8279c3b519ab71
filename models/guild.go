package models

import (
	"time"
)

// Guild is the per-server configuration document
type Guild struct {
	ID               string           `json:"id" validate:"required"`
	JoinLeave        JoinLeaveModule  `json:"joinLeave"`
	ValorantAutoRole ValorantAutoRole `json:"valorantAutoRole"`
	PremiumKeys      []string         `json:"premiumKeys" validate:"unique"`
	CreatedAt        time.Time        `json:"-"`
}

// JoinLeaveModule configures welcome and farewell messages
type JoinLeaveModule struct {
	Enabled             bool    `json:"enabled"`
	JoinMessage         *string `json:"joinMessage"`
	AlertWhenUserLeaves bool    `json:"alertWhenUserLeaves"`
	LeaveMessage        *string `json:"leaveMessage"`
	JoinChannel         *string `json:"joinChannel"`
	LeaveChannel        *string `json:"leaveChannel"`
}

// ValorantAutoRole maps competitive ranks to guild roles
type ValorantAutoRole struct {
	Enabled       bool    `json:"enabled"`
	UnratedRole   *string `json:"unratedRole"`
	IronRole      *string `json:"ironRole"`
	BronzeRole    *string `json:"bronzeRole"`
	SilverRole    *string `json:"silverRole"`
	GoldRole      *string `json:"goldRole"`
	PlatinumRole  *string `json:"platinumRole"`
	DiamondRole   *string `json:"diamondRole"`
	AscendantRole *string `json:"ascendantRole"`
	ImmortalRole  *string `json:"immortalRole"`
	RadiantRole   *string `json:"radiantRole"`
}

// NewGuild builds a guild document with both modules disabled
func NewGuild(id string) *Guild {
	return &Guild{
		ID:          id,
		PremiumKeys: []string{},
	}
}

// Validate checks the guild document
func (g *Guild) Validate() error {
	return validate.Struct(g)
}
