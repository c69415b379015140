package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gochinamed/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	TypeConfirmDoctor    = "order:confirm_doctor"
	TypeConfirmItinerary = "itinerary:confirm"

	QueueConfirmations = "confirmations"
	MaxRetry           = 5
	TaskTimeout        = 30 * time.Second
)

func newConfirmationTask(taskType string, payload models.ConfirmationPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(taskType, b)
	opts := []asynq.Option{
		asynq.MaxRetry(MaxRetry),
		asynq.Timeout(TaskTimeout),
		asynq.Queue(QueueConfirmations),
	}
	return task, opts, nil
}

// NewDoctorConfirmationTask builds the doctor-appointment confirmation task.
func NewDoctorConfirmationTask(payload models.ConfirmationPayload) (*asynq.Task, []asynq.Option, error) {
	return newConfirmationTask(TypeConfirmDoctor, payload)
}

// NewItineraryConfirmationTask builds the itinerary reservation confirmation task.
func NewItineraryConfirmationTask(payload models.ConfirmationPayload) (*asynq.Task, []asynq.Option, error) {
	return newConfirmationTask(TypeConfirmItinerary, payload)
}

// ParsePayload decodes a confirmation task payload.
func ParsePayload(task *asynq.Task) (models.ConfirmationPayload, error) {
	var p models.ConfirmationPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid confirmation payload: %w", err)
	}
	if p.OrderID == "" {
		return p, fmt.Errorf("confirmation payload has no orderId")
	}
	return p, nil
}

// Enqueuer is the part of *asynq.Client the dispatcher needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqDispatcher enqueues confirmation tasks.
type AsynqDispatcher struct {
	client Enqueuer
	logger *zap.Logger
}

func NewAsynqDispatcher(client Enqueuer, logger *zap.Logger) *AsynqDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AsynqDispatcher{client: client, logger: logger}
}

func (d *AsynqDispatcher) DispatchDoctorConfirmation(ctx context.Context, payload models.ConfirmationPayload) error {
	task, opts, err := NewDoctorConfirmationTask(payload)
	if err != nil {
		return err
	}
	return d.enqueue(ctx, task, opts)
}

func (d *AsynqDispatcher) DispatchItineraryConfirmation(ctx context.Context, payload models.ConfirmationPayload) error {
	task, opts, err := NewItineraryConfirmationTask(payload)
	if err != nil {
		return err
	}
	return d.enqueue(ctx, task, opts)
}

func (d *AsynqDispatcher) enqueue(ctx context.Context, task *asynq.Task, opts []asynq.Option) error {
	info, err := d.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", task.Type(), err)
	}
	d.logger.Debug("task enqueued", zap.String("type", task.Type()), zap.String("taskId", info.ID), zap.String("queue", info.Queue))
	return nil
}
