package service

import (
	"context"
	"time"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/constant"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/dto"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/pkg/logger"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/pkg/serverutils"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/specification"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ITaskService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTaskRequest) (*dto.CreateTaskResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowTaskResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.ShowTaskResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateTaskRequest) (*dto.UpdateTaskResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type taskService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewTaskService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) ITaskService {
	return &taskService{uowFactory: uowFactory, log: log}
}

func (s *taskService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTaskRequest) (*dto.CreateTaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.ParentTaskId != nil {
		parent, err := uow.TaskRepository().FindOne(ctx,
			specification.ByID{ID: *req.ParentTaskId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, serverutils.NewBadRequestError("Parent task not found")
		}
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	task := entity.Task{
		Id:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		Status:       constant.TaskStatusPending,
		Priority:     priority,
		ParentTaskId: req.ParentTaskId,
		DueDate:      req.DueDate,
		UserId:       userId,
		CreatedAt:    time.Now(),
	}
	if err := uow.TaskRepository().Create(ctx, &task); err != nil {
		return nil, err
	}
	return &dto.CreateTaskResponse{Id: task.Id}, nil
}

// Show returns the task with its direct subtasks attached.
func (s *taskService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowTaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	task, err := uow.TaskRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, serverutils.NewNotFoundError("Task not found")
	}

	subtasks, err := uow.TaskRepository().FindAll(ctx,
		specification.ByParentTask{ParentID: id},
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := toShowTaskResponse(task)
	for _, sub := range subtasks {
		res.Subtasks = append(res.Subtasks, *toShowTaskResponse(sub))
	}
	return res, nil
}

// List returns top level tasks only; subtasks are reachable through Show.
func (s *taskService) List(ctx context.Context, userId uuid.UUID) ([]*dto.ShowTaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tasks, err := uow.TaskRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.TopLevelTasks{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ShowTaskResponse, len(tasks))
	for i, t := range tasks {
		res[i] = toShowTaskResponse(t)
	}
	return res, nil
}

func (s *taskService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateTaskRequest) (*dto.UpdateTaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	task, err := uow.TaskRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, serverutils.NewNotFoundError("Task not found")
	}

	task.Title = req.Title
	task.Description = req.Description
	task.DueDate = req.DueDate
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	if err := uow.TaskRepository().Update(ctx, task); err != nil {
		return nil, err
	}
	return &dto.UpdateTaskResponse{Id: task.Id}, nil
}

// Delete removes the task and its direct subtasks in one transaction.
func (s *taskService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	task, err := uow.TaskRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if task == nil {
		return serverutils.NewNotFoundError("Task not found")
	}

	subtasks, err := uow.TaskRepository().FindAll(ctx,
		specification.ByParentTask{ParentID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	for _, sub := range subtasks {
		if err := uow.TaskRepository().Delete(ctx, sub.Id); err != nil {
			_ = uow.Rollback()
			return err
		}
	}
	if err := uow.TaskRepository().Delete(ctx, id); err != nil {
		_ = uow.Rollback()
		return err
	}
	return uow.Commit()
}

func toShowTaskResponse(t *entity.Task) *dto.ShowTaskResponse {
	return &dto.ShowTaskResponse{
		Id:             t.Id,
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		Priority:       t.Priority,
		AgentGenerated: t.AgentGenerated,
		ParentTaskId:   t.ParentTaskId,
		DueDate:        t.DueDate,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
