package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/constant"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/dto"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/pkg/logger"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/pkg/serverutils"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/specification"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/unitofwork"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/agent/extract"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/events"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/llm"
	pktNats "github.com/ThurgyThurg/wisdom-web-mentor/pkg/nats"

	"github.com/google/uuid"
)

type IPlanService interface {
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GeneratePlanRequest) (*dto.GeneratePlanResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowPlanResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.ShowPlanResponse, error)
	UpdateModule(ctx context.Context, userId uuid.UUID, req *dto.UpdatePlanModuleRequest) (*dto.UpdatePlanModuleResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type planService struct {
	uowFactory      unitofwork.RepositoryFactory
	settingsService ISettingsService
	eventPublisher  *pktNats.Publisher
	log             logger.ILogger
}

func NewPlanService(
	uowFactory unitofwork.RepositoryFactory,
	settingsService ISettingsService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IPlanService {
	return &planService{
		uowFactory:      uowFactory,
		settingsService: settingsService,
		eventPublisher:  eventPublisher,
		log:             log,
	}
}

// Generate asks the user's model for a structured plan and stores it. When
// the model's output cannot be parsed the plan is still created with a single
// starter module rather than failing the request.
func (s *planService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GeneratePlanRequest) (*dto.GeneratePlanResponse, error) {
	provider, _, err := s.settingsService.ProviderFor(ctx, userId)
	if err != nil {
		return nil, err
	}

	difficulty := req.DifficultyLevel
	if difficulty == "" {
		difficulty = "beginner"
	}

	response, err := provider.Generate(ctx, planGenerationPrompt(req.Subject, difficulty, req.Goal), llm.WithTemperature(0.7))
	if err != nil {
		s.log.Error("plan", "generation failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return nil, serverutils.NewAppError(502, "The AI provider failed to generate a plan")
	}

	draft, err := extract.ParsePlan(response)
	if err != nil {
		s.log.Warn("plan", "parse failed, using starter module", map[string]interface{}{
			"subject": req.Subject,
			"error":   err.Error(),
		})
		draft = starterPlan(req.Subject, difficulty)
	}

	modules := make([]entity.PlanModule, len(draft.Modules))
	for i, m := range draft.Modules {
		modules[i] = entity.PlanModule(m)
	}

	plan := entity.LearningPlan{
		Id:                    uuid.New(),
		Title:                 draft.Title,
		Subject:               req.Subject,
		Description:           draft.Description,
		DifficultyLevel:       difficulty,
		Modules:               modules,
		EstimatedDurationDays: draft.EstimatedDays,
		Status:                constant.PlanStatusActive,
		AgentGenerated:        true,
		UserId:                userId,
		CreatedAt:             time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.LearningPlanRepository().Create(ctx, &plan); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.New(events.TypePlanCreated, map[string]interface{}{
			"plan_id": plan.Id,
			"subject": plan.Subject,
			"user_id": userId,
		})); err != nil {
			s.log.Warn("plan", "event publish failed", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.GeneratePlanResponse{Id: plan.Id}, nil
}

func planGenerationPrompt(subject, difficulty, goal string) string {
	p := fmt.Sprintf(`Create a structured learning plan about %q for a %s learner.`, subject, difficulty)
	if goal != "" {
		p += fmt.Sprintf(" The learner's goal: %s.", goal)
	}
	p += `

Respond with ONLY a JSON object in this exact format:
{
  "title": "plan title",
  "subject": "the subject",
  "description": "one paragraph overview",
  "difficultyLevel": "beginner|intermediate|advanced",
  "modules": [
    {"title": "module title", "description": "what it covers", "estimatedHours": 4, "resources": ["optional links or book names"]}
  ]
}`
	return p
}

func starterPlan(subject, difficulty string) *extract.PlanDraft {
	return &extract.PlanDraft{
		Title:           fmt.Sprintf("AI Plan for %s", subject),
		Subject:         subject,
		Description:     "An AI-generated learning plan.",
		DifficultyLevel: difficulty,
		Modules: []extract.PlanModule{{
			Id:             uuid.New().String(),
			Title:          fmt.Sprintf("Getting Started with %s", subject),
			Description:    "Survey the fundamentals and gather learning resources.",
			EstimatedHours: 10,
		}},
		EstimatedDays: 5,
	}
}

func (s *planService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowPlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := uow.LearningPlanRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, serverutils.NewNotFoundError("Learning plan not found")
	}
	return toShowPlanResponse(plan), nil
}

func (s *planService) List(ctx context.Context, userId uuid.UUID) ([]*dto.ShowPlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := uow.LearningPlanRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ShowPlanResponse, len(plans))
	for i, p := range plans {
		res[i] = toShowPlanResponse(p)
	}
	return res, nil
}

// UpdateModule marks one module complete or not and rolls the plan status up:
// all modules done means the plan is completed.
func (s *planService) UpdateModule(ctx context.Context, userId uuid.UUID, req *dto.UpdatePlanModuleRequest) (*dto.UpdatePlanModuleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := uow.LearningPlanRepository().FindOne(ctx,
		specification.ByID{ID: req.PlanId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, serverutils.NewNotFoundError("Learning plan not found")
	}

	found := false
	allDone := true
	for i := range plan.Modules {
		if plan.Modules[i].Id == req.ModuleId {
			plan.Modules[i].Completed = req.Completed
			found = true
		}
		if !plan.Modules[i].Completed {
			allDone = false
		}
	}
	if !found {
		return nil, serverutils.NewNotFoundError("Plan module not found")
	}

	if allDone {
		plan.Status = constant.PlanStatusCompleted
	} else if plan.Status == constant.PlanStatusCompleted {
		plan.Status = constant.PlanStatusActive
	}

	if err := uow.LearningPlanRepository().Update(ctx, plan); err != nil {
		return nil, err
	}
	return &dto.UpdatePlanModuleResponse{Id: plan.Id, Status: plan.Status}, nil
}

func (s *planService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := uow.LearningPlanRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if plan == nil {
		return serverutils.NewNotFoundError("Learning plan not found")
	}
	return uow.LearningPlanRepository().Delete(ctx, id)
}

func toShowPlanResponse(p *entity.LearningPlan) *dto.ShowPlanResponse {
	return &dto.ShowPlanResponse{
		Id:                    p.Id,
		Title:                 p.Title,
		Subject:               p.Subject,
		Description:           p.Description,
		DifficultyLevel:       p.DifficultyLevel,
		Modules:               p.Modules,
		EstimatedDurationDays: p.EstimatedDurationDays,
		Status:                p.Status,
		AgentGenerated:        p.AgentGenerated,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}
