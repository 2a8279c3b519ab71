package models

// Command is a bot command registry record
type Command struct {
	Name        string   `json:"commandName" db:"name"`
	Description string   `json:"description" db:"description"`
	UsageCount  int64    `json:"commandUsageCount" db:"usage_count"`
	IsInactive  bool     `json:"isInactive" db:"is_inactive"`
	Subcommands []string `json:"subcommands" db:"subcommands"`
	Usage       *string  `json:"usage" db:"usage"`
	Category    *string  `json:"category" db:"category"`
}

// IsListed reports whether the command should appear in public listings
func (c *Command) IsListed() bool {
	return c.Description != "" && c.Name != HiddenCommandName
}

// InCategory reports whether the command belongs to category
func (c *Command) InCategory(category string) bool {
	return c.Category != nil && *c.Category == category
}

// HiddenCommandName is the staff-only command never shown publicly
const HiddenCommandName = "foxytools"
