package api

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hitroute/hitroute/raid"
	"github.com/hitroute/hitroute/raid/report"
)

// Service runs plan requests against a default planner configuration.
type Service struct {
	defaults raid.PlannerConfig
	newRunID func() string
	now      func() time.Time
}

// NewService creates a Service. defaults must pass Validate.
func NewService(defaults raid.PlannerConfig) (*Service, error) {
	if err := defaults.Validate(); err != nil {
		return nil, fmt.Errorf("invalid default config: %w", err)
	}
	return &Service{
		defaults: defaults,
		newRunID: func() string { return uuid.New().String() },
		now:      time.Now,
	}, nil
}

// Defaults returns the configuration requests start from.
func (s *Service) Defaults() raid.PlannerConfig { return s.defaults }

// Plan runs one request and builds its report.
func (s *Service) Plan(ctx context.Context, req *PlanRequest) (*report.Solutions, *raid.PlanResult, error) {
	roster, err := raid.NewRoster(req.Targets, req.Records)
	if err != nil {
		return nil, nil, fmt.Errorf("building roster: %w", err)
	}
	planner, err := raid.NewPlanner(roster, req.Config)
	if err != nil {
		return nil, nil, err
	}
	result, err := planner.Plan(ctx)
	if err != nil {
		return nil, nil, err
	}
	runID := s.newRunID()
	logrus.Infof("run %s: %d targets, %d records, %d routes in %v",
		runID, len(req.Targets), len(req.Records), result.Evaluated, result.WallTime)
	return report.Build(result, planner.Config(), runID, s.now()), result, nil
}
