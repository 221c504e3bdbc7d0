package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/dto"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/pkg/logger"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/contract"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/specification"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/unitofwork"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/agent/router"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// stubProvider answers classification calls with label and chat calls with
// reply, so a test can steer the whole pipeline.
type stubProvider struct {
	label   string
	reply   string
	chatErr error
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if p.chatErr != nil {
		return "", p.chatErr
	}
	return p.reply, nil
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.label, nil
}

type stubSettingsService struct {
	provider llm.LLMProvider
	settings *entity.UserSettings
	err      error
}

func (s *stubSettingsService) Show(ctx context.Context, userId uuid.UUID) (*dto.ShowSettingsResponse, error) {
	return nil, nil
}

func (s *stubSettingsService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateSettingsRequest) error {
	return nil
}

func (s *stubSettingsService) Resolve(ctx context.Context, userId uuid.UUID) (*entity.UserSettings, error) {
	return s.settings, s.err
}

func (s *stubSettingsService) ProviderFor(ctx context.Context, userId uuid.UUID) (llm.LLMProvider, *entity.UserSettings, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.provider, s.settings, nil
}

// memoryUow is an in-memory UnitOfWork covering the repositories the agent
// pipeline touches. Error fields let tests break individual stages.
type memoryUow struct {
	conversations []*entity.Conversation
	notes         []*entity.Note
	tasks         []*entity.Task
	plans         []*entity.LearningPlan

	noteErr error
	taskErr error
	planErr error
}

type memoryFactory struct {
	uow *memoryUow
}

func (f *memoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func (u *memoryUow) Begin(ctx context.Context) error { return nil }
func (u *memoryUow) Commit() error                   { return nil }
func (u *memoryUow) Rollback() error                 { return nil }

func (u *memoryUow) UserRepository() contract.UserRepository                 { return nil }
func (u *memoryUow) UserSettingsRepository() contract.UserSettingsRepository { return nil }
func (u *memoryUow) ResourceRepository() contract.ResourceRepository         { return nil }
func (u *memoryUow) DocumentChunkRepository() contract.DocumentChunkRepository {
	return nil
}
func (u *memoryUow) TelegramRepository() contract.TelegramRepository { return nil }

func (u *memoryUow) ConversationRepository() contract.ConversationRepository {
	return &memoryConversationRepo{uow: u}
}
func (u *memoryUow) NoteRepository() contract.NoteRepository {
	return &memoryNoteRepo{uow: u}
}
func (u *memoryUow) TaskRepository() contract.TaskRepository {
	return &memoryTaskRepo{uow: u}
}
func (u *memoryUow) LearningPlanRepository() contract.LearningPlanRepository {
	return &memoryPlanRepo{uow: u}
}

type memoryConversationRepo struct{ uow *memoryUow }

func (r *memoryConversationRepo) Create(ctx context.Context, c *entity.Conversation) error {
	r.uow.conversations = append(r.uow.conversations, c)
	return nil
}

func (r *memoryConversationRepo) Update(ctx context.Context, c *entity.Conversation) error {
	for i, existing := range r.uow.conversations {
		if existing.Id == c.Id {
			r.uow.conversations[i] = c
		}
	}
	return nil
}

func (r *memoryConversationRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *memoryConversationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	if len(r.uow.conversations) == 0 {
		return nil, nil
	}
	return r.uow.conversations[0], nil
}

func (r *memoryConversationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	return r.uow.conversations, nil
}

func (r *memoryConversationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.uow.conversations)), nil
}

type memoryNoteRepo struct{ uow *memoryUow }

func (r *memoryNoteRepo) Create(ctx context.Context, n *entity.Note) error {
	if r.uow.noteErr != nil {
		return r.uow.noteErr
	}
	r.uow.notes = append(r.uow.notes, n)
	return nil
}

func (r *memoryNoteRepo) Update(ctx context.Context, n *entity.Note) error    { return nil }
func (r *memoryNoteRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }
func (r *memoryNoteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	return nil, nil
}
func (r *memoryNoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	return r.uow.notes, nil
}
func (r *memoryNoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.uow.notes)), nil
}

type memoryTaskRepo struct{ uow *memoryUow }

func (r *memoryTaskRepo) Create(ctx context.Context, t *entity.Task) error {
	if r.uow.taskErr != nil {
		return r.uow.taskErr
	}
	r.uow.tasks = append(r.uow.tasks, t)
	return nil
}

func (r *memoryTaskRepo) CreateBulk(ctx context.Context, tasks []*entity.Task) error {
	if r.uow.taskErr != nil {
		return r.uow.taskErr
	}
	r.uow.tasks = append(r.uow.tasks, tasks...)
	return nil
}

func (r *memoryTaskRepo) Update(ctx context.Context, t *entity.Task) error { return nil }
func (r *memoryTaskRepo) Delete(ctx context.Context, id uuid.UUID) error   { return nil }
func (r *memoryTaskRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Task, error) {
	return nil, nil
}
func (r *memoryTaskRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Task, error) {
	return r.uow.tasks, nil
}
func (r *memoryTaskRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.uow.tasks)), nil
}

type memoryPlanRepo struct{ uow *memoryUow }

func (r *memoryPlanRepo) Create(ctx context.Context, p *entity.LearningPlan) error {
	if r.uow.planErr != nil {
		return r.uow.planErr
	}
	r.uow.plans = append(r.uow.plans, p)
	return nil
}

func (r *memoryPlanRepo) Update(ctx context.Context, p *entity.LearningPlan) error { return nil }
func (r *memoryPlanRepo) Delete(ctx context.Context, id uuid.UUID) error           { return nil }
func (r *memoryPlanRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LearningPlan, error) {
	return nil, nil
}
func (r *memoryPlanRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LearningPlan, error) {
	return r.uow.plans, nil
}
func (r *memoryPlanRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.uow.plans)), nil
}

func newTestAgentService(uow *memoryUow, provider llm.LLMProvider) IAgentService {
	return NewAgentService(
		&memoryFactory{uow: uow},
		&stubSettingsService{provider: provider, settings: &entity.UserSettings{AiProvider: "openai"}},
		router.NewRouter(nil),
		nil, // no retriever: research turns degrade to the system failure sentinel
		nil, // no limiter
		nil, // no event publisher
		logger.NewNopLogger(),
	)
}

func TestProcessMessageGeneralAssistant(t *testing.T) {
	uow := &memoryUow{}
	provider := &stubProvider{label: "general_assistant", reply: "Hello there."}
	svc := newTestAgentService(uow, provider)
	userId := uuid.New()

	res, err := svc.ProcessMessage(context.Background(), userId, &dto.AgentMessageRequest{
		Message: "Hi!",
		UserId:  userId,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Hello there.", res.Response)
	assert.Equal(t, "general_assistant", res.Agent)
	assert.Equal(t, "response", res.ActionTaken)
	assert.Empty(t, res.ContextUsed)
	assert.NotEqual(t, uuid.Nil, res.ConversationId)

	// Both turns land in the conversation log.
	if assert.Len(t, uow.conversations, 1) {
		msgs := uow.conversations[0].Messages
		if assert.Len(t, msgs, 2) {
			assert.Equal(t, "user", msgs[0].Role)
			assert.Equal(t, "Hi!", msgs[0].Content)
			assert.Equal(t, "assistant", msgs[1].Role)
			assert.Equal(t, "Hello there.", msgs[1].Content)
			assert.Equal(t, "response", msgs[1].ActionTaken)
		}
	}
}

func TestProcessMessageNoteTaker(t *testing.T) {
	uow := &memoryUow{}
	provider := &stubProvider{
		label: "note_taker",
		reply: "# Meeting Summary\n\nWe agreed on the rollout.",
	}
	svc := newTestAgentService(uow, provider)
	userId := uuid.New()

	res, err := svc.ProcessMessage(context.Background(), userId, &dto.AgentMessageRequest{
		Message: "Take a note about the meeting",
		UserId:  userId,
	})

	assert.NoError(t, err)
	assert.Equal(t, "note_created", res.ActionTaken)
	assert.Equal(t, "I've saved that as a note for you.", res.Response)
	if assert.Len(t, uow.notes, 1) {
		assert.Equal(t, "Meeting Summary", uow.notes[0].Title)
		assert.Equal(t, userId, uow.notes[0].UserId)
	}
}

func TestProcessMessageNotePersistFailureDegrades(t *testing.T) {
	uow := &memoryUow{noteErr: errors.New("db down")}
	provider := &stubProvider{label: "note_taker", reply: "# Title\n\nBody."}
	svc := newTestAgentService(uow, provider)
	userId := uuid.New()

	res, err := svc.ProcessMessage(context.Background(), userId, &dto.AgentMessageRequest{
		Message: "Take a note",
		UserId:  userId,
	})

	// The turn still succeeds; no side effect is claimed.
	assert.NoError(t, err)
	assert.Equal(t, "response", res.ActionTaken)
	assert.Equal(t, "# Title\n\nBody.", res.Response)
	assert.Empty(t, uow.notes)
}

func TestProcessMessageTaskBreakdown(t *testing.T) {
	uow := &memoryUow{}
	provider := &stubProvider{
		label: "task_breakdown",
		reply: "- Install Go\n- Read the tour\n- Build a CLI",
	}
	svc := newTestAgentService(uow, provider)
	userId := uuid.New()

	res, err := svc.ProcessMessage(context.Background(), userId, &dto.AgentMessageRequest{
		Message: "Break down learning Go",
		UserId:  userId,
	})

	assert.NoError(t, err)
	assert.Equal(t, "tasks_created", res.ActionTaken)
	// One parent plus three subtasks, all marked as agent-created.
	if assert.Len(t, uow.tasks, 4) {
		assert.Nil(t, uow.tasks[0].ParentTaskId)
		for _, task := range uow.tasks {
			assert.True(t, task.AgentGenerated)
		}
		for _, sub := range uow.tasks[1:] {
			if assert.NotNil(t, sub.ParentTaskId) {
				assert.Equal(t, uow.tasks[0].Id, *sub.ParentTaskId)
			}
		}
	}
}

func TestProcessMessageKeywordOverridesExtraction(t *testing.T) {
	uow := &memoryUow{}
	// The router says general assistant, but the message asks to save a note.
	// The override changes only the extraction step: the note is created while
	// the reported agent stays on the classified label.
	provider := &stubProvider{label: "general_assistant", reply: "# A Note\n\nContent."}
	svc := newTestAgentService(uow, provider)
	userId := uuid.New()

	res, err := svc.ProcessMessage(context.Background(), userId, &dto.AgentMessageRequest{
		Message: "Please save note about this",
		UserId:  userId,
	})

	assert.NoError(t, err)
	assert.Equal(t, "general_assistant", res.Agent)
	assert.Equal(t, "note_created", res.ActionTaken)
	assert.Equal(t, "I've saved that as a note for you.", res.Response)
	if assert.Len(t, uow.notes, 1) {
		assert.Equal(t, "A Note", uow.notes[0].Title)
	}
}

func TestProcessMessageOverrideKeepsResearchDispatch(t *testing.T) {
	uow := &memoryUow{}
	// A research turn with an explicit save-note request still runs the
	// research dispatch (here degrading to the no-retriever sentinel) and
	// reports the research agent; the note is saved as a side effect.
	provider := &stubProvider{label: "research", reply: "# Transformers\n\nAttention is all you need."}
	svc := newTestAgentService(uow, provider)
	userId := uuid.New()

	res, err := svc.ProcessMessage(context.Background(), userId, &dto.AgentMessageRequest{
		Message: "please save note about transformers",
		UserId:  userId,
	})

	assert.NoError(t, err)
	assert.Equal(t, "research", res.Agent)
	assert.Equal(t, "note_created", res.ActionTaken)
	if assert.Len(t, uow.notes, 1) {
		assert.Equal(t, "Transformers", uow.notes[0].Title)
		assert.Contains(t, uow.notes[0].Tags, "ai-generated")
	}
}

func TestProcessMessageLearningPlan(t *testing.T) {
	uow := &memoryUow{}
	provider := &stubProvider{
		label: "learning_plan",
		reply: `{"title":"Go in 30 Days","subject":"Go","description":"A plan.","difficultyLevel":"beginner","modules":[{"title":"Basics","description":"Syntax","estimatedHours":8}]}`,
	}
	svc := newTestAgentService(uow, provider)
	userId := uuid.New()

	res, err := svc.ProcessMessage(context.Background(), userId, &dto.AgentMessageRequest{
		Message: "Create a learning plan for Go",
		UserId:  userId,
	})

	assert.NoError(t, err)
	assert.Equal(t, "learning_plan_created", res.ActionTaken)
	if assert.Len(t, uow.plans, 1) {
		assert.Equal(t, "Go in 30 Days", uow.plans[0].Title)
		assert.Len(t, uow.plans[0].Modules, 1)
		assert.Equal(t, 4, uow.plans[0].EstimatedDurationDays)
		assert.True(t, uow.plans[0].AgentGenerated)
	}
}

func TestProcessMessagePlanParseFailureFallsBackToText(t *testing.T) {
	uow := &memoryUow{}
	provider := &stubProvider{
		label: "learning_plan",
		reply: "Here is a plan in prose, no JSON at all.",
	}
	svc := newTestAgentService(uow, provider)
	userId := uuid.New()

	res, err := svc.ProcessMessage(context.Background(), userId, &dto.AgentMessageRequest{
		Message: "Create a learning plan for Go",
		UserId:  userId,
	})

	assert.NoError(t, err)
	assert.Equal(t, "response", res.ActionTaken)
	assert.Contains(t, res.Response, "Here is a plan in prose")
	assert.Empty(t, uow.plans)
}

func TestProcessMessageGenerationFailureIsFatal(t *testing.T) {
	uow := &memoryUow{}
	provider := &stubProvider{label: "general_assistant", chatErr: errors.New("upstream 500")}
	svc := newTestAgentService(uow, provider)
	userId := uuid.New()

	_, err := svc.ProcessMessage(context.Background(), userId, &dto.AgentMessageRequest{
		Message: "Hi",
		UserId:  userId,
	})

	assert.Error(t, err)
}

func TestProcessMessageMissingSettingsFailsFast(t *testing.T) {
	svc := NewAgentService(
		&memoryFactory{uow: &memoryUow{}},
		&stubSettingsService{err: errors.New("AI provider is not configured")},
		router.NewRouter(nil),
		nil,
		nil,
		nil,
		logger.NewNopLogger(),
	)

	_, err := svc.ProcessMessage(context.Background(), uuid.New(), &dto.AgentMessageRequest{
		Message: "Hi",
		UserId:  uuid.New(),
	})

	assert.Error(t, err)
}
