package service

import (
	"context"
	"fmt"
	"strings"

	"foxyweb/models"

	log "github.com/sirupsen/logrus"
)

// commandService implements CommandService
type commandService struct {
	repo CommandRepository
}

// NewCommandService creates a new command service
func NewCommandService(repo CommandRepository) CommandService {
	return &commandService{repo: repo}
}

// RegisterCommand upserts a command by name
func (s *commandService) RegisterCommand(ctx context.Context, name, description string) (*models.Command, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: command name is required", ErrValidation)
	}

	command, err := s.repo.Upsert(ctx, name, description)
	if err != nil {
		return nil, fmt.Errorf("failed to register command: %w", err)
	}

	log.WithFields(log.Fields{
		"command":    command.Name,
		"usageCount": command.UsageCount,
	}).Debug("Registered command")

	return command, nil
}

// RecordUsage increments the usage counter of a registered command
func (s *commandService) RecordUsage(ctx context.Context, name string) error {
	if err := s.repo.IncrementUsage(ctx, name); err != nil {
		return fmt.Errorf("failed to record command usage: %w", err)
	}
	return nil
}

// GetAllCommands returns every registered command
func (s *commandService) GetAllCommands(ctx context.Context) ([]*models.Command, error) {
	commands, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get commands: %w", err)
	}
	return commands, nil
}

// GetListedCommands returns the commands shown on public listings
func (s *commandService) GetListedCommands(ctx context.Context) ([]*models.Command, error) {
	commands, err := s.GetAllCommands(ctx)
	if err != nil {
		return nil, err
	}

	listed := make([]*models.Command, 0, len(commands))
	for _, command := range commands {
		if command.IsListed() {
			listed = append(listed, command)
		}
	}
	return listed, nil
}

// GetCommandsByCategory returns every command in category
func (s *commandService) GetCommandsByCategory(ctx context.Context, category string) ([]*models.Command, error) {
	commands, err := s.GetAllCommands(ctx)
	if err != nil {
		return nil, err
	}

	matching := make([]*models.Command, 0)
	for _, command := range commands {
		if command.InCategory(category) {
			matching = append(matching, command)
		}
	}
	return matching, nil
}

// GetAllUsageCount returns the sum of every usage counter
func (s *commandService) GetAllUsageCount(ctx context.Context) (int64, error) {
	total, err := s.repo.TotalUsage(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get command usage: %w", err)
	}
	return total, nil
}
