package service

import (
	"context"
	"time"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/constant"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/dto"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/pkg/logger"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/pkg/serverutils"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/pkg/usage"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/specification"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/unitofwork"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/agent"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/agent/extract"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/agent/prompt"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/agent/retrieval"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/agent/router"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/events"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/llm"
	pktNats "github.com/ThurgyThurg/wisdom-web-mentor/pkg/nats"

	"github.com/google/uuid"
)

// maxHistoryTurns bounds how much conversation history is replayed to the
// model on each turn.
const maxHistoryTurns = 20

type IAgentService interface {
	ProcessMessage(ctx context.Context, userId uuid.UUID, req *dto.AgentMessageRequest) (*dto.AgentMessageResponse, error)
	ListConversations(ctx context.Context, userId uuid.UUID) ([]*dto.ListConversationsResponse, error)
	ShowConversation(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*entity.Conversation, error)
	DeleteConversation(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type agentService struct {
	uowFactory      unitofwork.RepositoryFactory
	settingsService ISettingsService
	agentRouter     *router.Router
	retriever       *retrieval.Retriever
	limiter         *usage.Limiter
	eventPublisher  *pktNats.Publisher
	log             logger.ILogger
}

func NewAgentService(
	uowFactory unitofwork.RepositoryFactory,
	settingsService ISettingsService,
	agentRouter *router.Router,
	retriever *retrieval.Retriever,
	limiter *usage.Limiter,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IAgentService {
	return &agentService{
		uowFactory:      uowFactory,
		settingsService: settingsService,
		agentRouter:     agentRouter,
		retriever:       retriever,
		limiter:         limiter,
		eventPublisher:  eventPublisher,
		log:             log,
	}
}

// ProcessMessage runs one user message through the full pipeline:
// classify, retrieve context for research turns, generate, extract side
// effects, then append the turn to the conversation log.
//
// Failure policy varies by stage. Configuration problems and generation
// failures surface to the caller; classification, retrieval, extraction and
// side-effect persistence all degrade so the user still gets an answer.
func (s *agentService) ProcessMessage(ctx context.Context, userId uuid.UUID, req *dto.AgentMessageRequest) (*dto.AgentMessageResponse, error) {
	provider, settings, err := s.settingsService.ProviderFor(ctx, userId)
	if err != nil {
		return nil, err
	}

	if s.limiter != nil {
		allowed, limitErr := s.limiter.Allow(ctx, userId, settings.DailyMessageLimit)
		if limitErr != nil {
			s.log.Warn("agent", "usage limiter unavailable, allowing message", map[string]interface{}{"error": limitErr.Error()})
		}
		if !allowed {
			return nil, serverutils.NewTooManyRequestsError("Daily message limit reached")
		}
	}

	conversation, err := s.loadOrStartConversation(ctx, userId, req)
	if err != nil {
		return nil, err
	}

	label := s.agentRouter.Classify(ctx, provider, req.Message)

	var contextUsed []retrieval.Result
	documentContext := ""
	if label == agent.AgentResearch {
		contextUsed, documentContext = s.researchContext(ctx, userId, req.Message)
	}

	systemPrompt := prompt.ForAgent(label, documentContext)
	history := s.buildHistory(systemPrompt, conversation, req.Message)

	response, err := provider.Chat(ctx, history, llm.WithTemperature(0.7))
	if err != nil {
		s.log.Error("agent", "generation failed", map[string]interface{}{
			"user_id": userId,
			"agent":   string(label),
			"error":   agent.NewStageError(agent.StageGenerate, err).Error(),
		})
		return nil, serverutils.NewAppError(502, "The AI provider failed to generate a response")
	}

	userText, action := s.applySideEffects(ctx, userId, label, req.Message, response)

	s.appendTurn(ctx, conversation, req.Message, userText, label, action)

	return &dto.AgentMessageResponse{
		Response:       userText,
		Agent:          string(label),
		ActionTaken:    string(action),
		ContextUsed:    contextUsed,
		ConversationId: conversation.Id,
	}, nil
}

func (s *agentService) loadOrStartConversation(ctx context.Context, userId uuid.UUID, req *dto.AgentMessageRequest) (*entity.Conversation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.ConversationId != nil {
		conversation, err := uow.ConversationRepository().FindOne(ctx,
			specification.ByID{ID: *req.ConversationId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if conversation == nil {
			return nil, serverutils.NewNotFoundError("Conversation not found")
		}
		return conversation, nil
	}

	conversation := &entity.Conversation{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     conversationTitle(req.Message),
		Messages:  []entity.ConversationMessage{},
		CreatedAt: time.Now(),
	}
	if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

func conversationTitle(message string) string {
	runes := []rune(message)
	if len(runes) <= 60 {
		return message
	}
	return string(runes[:60])
}

// researchContext retrieves document chunks for the research agent. Any
// failure degrades to a sentinel context string so the turn continues on
// general knowledge.
func (s *agentService) researchContext(ctx context.Context, userId uuid.UUID, query string) ([]retrieval.Result, string) {
	if s.retriever == nil {
		return nil, prompt.ContextSystemFailure
	}

	results, total, err := s.retriever.Retrieve(ctx, query, userId, retrieval.DefaultLimit)
	if err != nil {
		s.log.Warn("agent", "context retrieval failed", map[string]interface{}{
			"user_id": userId,
			"error":   agent.NewStageError(agent.StageRetrieve, err).Error(),
		})
		return nil, prompt.ContextLookupError
	}

	s.log.Debug("agent", "context retrieved", map[string]interface{}{
		"user_id":  userId,
		"hits":     len(results),
		"searched": total,
	})

	if len(results) == 0 {
		return nil, prompt.ContextNoneFound
	}
	return results, prompt.FormatContext(results)
}

func (s *agentService) buildHistory(systemPrompt string, conversation *entity.Conversation, message string) []llm.Message {
	history := make([]llm.Message, 0, len(conversation.Messages)+2)
	history = append(history, llm.Message{Role: constant.ChatMessageRoleSystem, Content: systemPrompt})

	past := conversation.Messages
	if len(past) > maxHistoryTurns {
		past = past[len(past)-maxHistoryTurns:]
	}
	for _, m := range past {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}

	history = append(history, llm.Message{Role: constant.ChatMessageRoleUser, Content: message})
	return history
}

// applySideEffects runs the extraction branch for the label and persists
// whatever it produced. Keyword overrides apply only here: an explicit
// "save note" in the message still creates the note, but the prompt and the
// reported agent stay on the classified label. Every failure path falls back
// to returning the raw model response with no action claimed; the pipeline
// never claims a side effect it did not commit.
func (s *agentService) applySideEffects(ctx context.Context, userId uuid.UUID, label agent.AgentType, message, response string) (string, extract.Action) {
	branch := extract.Branch(label, message)
	switch branch {
	case agent.AgentNoteTaker:
		return s.persistNote(ctx, userId, branch, response)
	case agent.AgentTaskBreakdown:
		return s.persistTasks(ctx, userId, message, response)
	case agent.AgentLearningPlan:
		return s.persistPlan(ctx, userId, response)
	default:
		return response, extract.ActionResponse
	}
}

func (s *agentService) persistNote(ctx context.Context, userId uuid.UUID, branch agent.AgentType, response string) (string, extract.Action) {
	draft := extract.ParseNote(response, branch)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	note := entity.Note{
		Id:        uuid.New(),
		Title:     draft.Title,
		Content:   draft.Content,
		Tags:      draft.Tags,
		UserId:    userId,
		CreatedAt: time.Now(),
	}
	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		s.log.Warn("agent", "note persistence failed, returning raw response", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return response, extract.ActionResponse
	}

	s.publishEvent(ctx, events.TypeNoteCreated, map[string]interface{}{
		"note_id": note.Id,
		"title":   note.Title,
		"user_id": userId,
	})

	return extract.NoteConfirmation, extract.ActionNoteCreated
}

func (s *agentService) persistTasks(ctx context.Context, userId uuid.UUID, message, response string) (string, extract.Action) {
	draft := extract.ParseTasks(message, response)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		s.log.Warn("agent", "task transaction begin failed", map[string]interface{}{"error": err.Error()})
		return response, extract.ActionResponse
	}

	now := time.Now()
	parent := entity.Task{
		Id:             uuid.New(),
		Title:          draft.ParentTitle,
		Description:    response,
		Status:         constant.TaskStatusPending,
		Priority:       "medium",
		AgentGenerated: true,
		UserId:         userId,
		CreatedAt:      now,
	}
	if err := uow.TaskRepository().Create(ctx, &parent); err != nil {
		_ = uow.Rollback()
		s.log.Warn("agent", "task persistence failed, returning raw response", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return response, extract.ActionResponse
	}

	subtasks := make([]*entity.Task, len(draft.Subtasks))
	for i, title := range draft.Subtasks {
		parentId := parent.Id
		subtasks[i] = &entity.Task{
			Id:             uuid.New(),
			Title:          title,
			Status:         constant.TaskStatusPending,
			Priority:       "medium",
			AgentGenerated: true,
			ParentTaskId:   &parentId,
			UserId:         userId,
			CreatedAt:      now,
		}
	}
	if err := uow.TaskRepository().CreateBulk(ctx, subtasks); err != nil {
		_ = uow.Rollback()
		s.log.Warn("agent", "subtask persistence failed, returning raw response", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return response, extract.ActionResponse
	}

	if err := uow.Commit(); err != nil {
		s.log.Warn("agent", "task commit failed, returning raw response", map[string]interface{}{"error": err.Error()})
		return response, extract.ActionResponse
	}

	s.publishEvent(ctx, events.TypeTasksCreated, map[string]interface{}{
		"parent_task_id": parent.Id,
		"subtask_count":  len(subtasks),
		"user_id":        userId,
	})

	return extract.TaskConfirmation, extract.ActionTasks
}

func (s *agentService) persistPlan(ctx context.Context, userId uuid.UUID, response string) (string, extract.Action) {
	draft, err := extract.ParsePlan(response)
	if err != nil {
		s.log.Warn("agent", "plan parse failed, returning plan as text", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return extract.PlanFallback(response), extract.ActionResponse
	}

	modules := make([]entity.PlanModule, len(draft.Modules))
	for i, m := range draft.Modules {
		modules[i] = entity.PlanModule{
			Id:             m.Id,
			Title:          m.Title,
			Description:    m.Description,
			EstimatedHours: m.EstimatedHours,
			Resources:      m.Resources,
			Completed:      m.Completed,
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan := entity.LearningPlan{
		Id:                    uuid.New(),
		Title:                 draft.Title,
		Subject:               draft.Subject,
		Description:           draft.Description,
		DifficultyLevel:       draft.DifficultyLevel,
		Modules:               modules,
		EstimatedDurationDays: draft.EstimatedDays,
		Status:                constant.PlanStatusActive,
		AgentGenerated:        true,
		UserId:                userId,
		CreatedAt:             time.Now(),
	}
	if err := uow.LearningPlanRepository().Create(ctx, &plan); err != nil {
		s.log.Warn("agent", "plan persistence failed, returning plan as text", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return extract.PlanFallback(response), extract.ActionResponse
	}

	s.publishEvent(ctx, events.TypePlanCreated, map[string]interface{}{
		"plan_id": plan.Id,
		"subject": plan.Subject,
		"user_id": userId,
	})

	subject := draft.Subject
	if subject == "" {
		subject = draft.Title
	}
	return extract.PlanConfirmation(subject), extract.ActionPlanCreated
}

// appendTurn writes the user message and the user-facing reply to the
// conversation log. This runs after side effects so the log reflects what
// the user actually saw; a log write failure is not worth failing the turn.
func (s *agentService) appendTurn(ctx context.Context, conversation *entity.Conversation, message, reply string, label agent.AgentType, action extract.Action) {
	now := time.Now()
	conversation.Messages = append(conversation.Messages,
		entity.ConversationMessage{
			Role:      constant.ChatMessageRoleUser,
			Content:   message,
			Timestamp: now,
		},
		entity.ConversationMessage{
			Role:        constant.ChatMessageRoleAssistant,
			Content:     reply,
			Timestamp:   now,
			Agent:       string(label),
			ActionTaken: string(action),
		},
	)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		s.log.Warn("agent", "conversation log write failed", map[string]interface{}{
			"conversation_id": conversation.Id,
			"error":           err.Error(),
		})
	}
}

func (s *agentService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.New(eventType, data)); err != nil {
		s.log.Warn("agent", "event publish failed", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func (s *agentService) ListConversations(ctx context.Context, userId uuid.UUID) ([]*dto.ListConversationsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ListConversationsResponse, len(conversations))
	for i, c := range conversations {
		item := &dto.ListConversationsResponse{
			Id:           c.Id,
			Title:        c.Title,
			MessageCount: len(c.Messages),
		}
		if c.UpdatedAt != nil {
			item.UpdatedAt = c.UpdatedAt.Format(time.RFC3339)
		}
		res[i] = item
	}
	return res, nil
}

func (s *agentService) ShowConversation(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*entity.Conversation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, serverutils.NewNotFoundError("Conversation not found")
	}
	return conversation, nil
}

func (s *agentService) DeleteConversation(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if conversation == nil {
		return serverutils.NewNotFoundError("Conversation not found")
	}
	return uow.ConversationRepository().Delete(ctx, id)
}
