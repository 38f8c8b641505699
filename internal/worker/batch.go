package worker

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ezchajim/azilut/internal/gate"
	"github.com/ezchajim/azilut/internal/model"
)

// Admitter runs one message through the admission pipeline.
type Admitter interface {
	Submit(ctx context.Context, msg *model.Message) *gate.Outcome
}

// SubmitJob gates one message, rate-limited per sender.
type SubmitJob struct {
	Message  *model.Message
	Admitter Admitter
	Limiter  *Limiter
}

// Execute runs the job.
func (j *SubmitJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Message.SenderID); err != nil {
			return &SubmitResult{Message: j.Message, Err: err}
		}
	}
	return &SubmitResult{
		Message: j.Message,
		Outcome: j.Admitter.Submit(ctx, j.Message),
	}
}

// SubmitResult is the outcome of gating one message.
type SubmitResult struct {
	Message *model.Message
	Outcome *gate.Outcome
	Err     error
}

// GetError returns the submission error, if any.
func (r *SubmitResult) GetError() error { return r.Err }

// BatchProcessor gates many messages concurrently.
type BatchProcessor struct {
	admitter    Admitter
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. A nil limiter disables
// throttling.
func NewBatchProcessor(admitter Admitter, concurrency int, limiter *Limiter) *BatchProcessor {
	return &BatchProcessor{
		admitter:    admitter,
		concurrency: concurrency,
		limiter:     limiter,
	}
}

// Process gates the messages across the pool and returns one result per
// message.
func (b *BatchProcessor) Process(ctx context.Context, messages []*model.Message) []*SubmitResult {
	if len(messages) == 0 {
		return []*SubmitResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()
	for _, msg := range messages {
		pool.Submit(&SubmitJob{Message: msg, Admitter: b.admitter, Limiter: b.limiter})
	}

	results := pool.Wait()
	submitResults := make([]*SubmitResult, len(results))
	for i, result := range results {
		submitResults[i] = result.(*SubmitResult)
	}
	return submitResults
}

// ProcessFile reads a message batch file and gates its messages.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*SubmitResult, error) {
	messages, err := LoadMessages(path)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	return b.Process(ctx, messages), nil
}

// messageFile mirrors the batch input YAML.
type messageFile struct {
	Messages []struct {
		Content   string                        `yaml:"content"`
		Purpose   string                        `yaml:"purpose"`
		Sender    string                        `yaml:"sender"`
		Recipient string                        `yaml:"recipient"`
		Questions map[model.QuestionKind]string `yaml:"questions"`
	} `yaml:"messages"`
}

// LoadMessages reads producer messages from a YAML batch file.
func LoadMessages(path string) ([]*model.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	var file messageFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse file: %w", err)
	}

	messages := make([]*model.Message, 0, len(file.Messages))
	for _, m := range file.Messages {
		msg := model.NewMessage(m.Content, m.Purpose, m.Sender, m.Recipient)
		for kind, text := range m.Questions {
			msg.SetQuestion(kind, text)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
