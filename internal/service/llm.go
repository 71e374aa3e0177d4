package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/zenkitchen/backend/internal/llm"
	"github.com/pageza/zenkitchen/backend/internal/models"
)

const (
	FallbackDraftName     = "未知物品"
	FallbackDraftCategory = "未分类"
	ChatApology           = "抱歉，我现在有点累，请稍后再试。"
)

const (
	opRecognize = "recognize"
	opChat      = "chat"
)

// DraftImporter turns confirmed drafts into inventory items.
type DraftImporter interface {
	ImportDrafts(ctx context.Context, owner string, drafts []models.ItemDraft) ([]models.InventoryItem, error)
}

// AIService adapts the model chain to the two AI operations. Neither
// operation ever fails: every collaborator error degrades to a fixed result.
type AIService struct {
	chain    Completer
	drafts   DraftCache
	recorder AIRecorder
	timeout  time.Duration
	now      func() time.Time
}

func NewAIService(chain Completer, drafts DraftCache, recorder AIRecorder, timeout time.Duration) *AIService {
	return &AIService{
		chain:    chain,
		drafts:   drafts,
		recorder: recorder,
		timeout:  timeout,
		now:      time.Now,
	}
}

func (s *AIService) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *AIService) degraded(op string, err error) {
	log.Printf("[AIService] %s degraded: %v", op, err)
	if s.recorder != nil {
		s.recorder.AIDegraded(op)
	}
}

func (s *AIService) observe(op string, start time.Time) {
	if s.recorder != nil {
		s.recorder.ObserveAICall(op, time.Since(start))
	}
}

// Recognize returns item drafts for a photo. On any failure it returns the
// single placeholder draft.
func (s *AIService) Recognize(ctx context.Context, image llm.Image, hint string) []models.ItemDraft {
	drafts, _ := s.recognize(ctx, image, hint)
	return drafts
}

func (s *AIService) recognize(ctx context.Context, image llm.Image, hint string) ([]models.ItemDraft, bool) {
	defer s.observe(opRecognize, time.Now())

	if len(image.Data) == 0 {
		s.degraded(opRecognize, errors.New("empty image"))
		return fallbackDrafts(), true
	}

	domain := domainFor(hint)
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	raw, model, err := s.chain.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: domain.prompt(models.DateOf(s.now()))},
		},
		Image:      &image,
		JSONSchema: domain.schema,
		SchemaName: analysisSchemaName,
	})
	if err != nil {
		s.degraded(opRecognize, err)
		return fallbackDrafts(), true
	}

	drafts, err := ParseAnalysis(raw)
	if err != nil {
		s.degraded(opRecognize, err)
		return fallbackDrafts(), true
	}
	log.Printf("[AIService] Model %s recognized %d items", model, len(drafts))
	return drafts, false
}

func fallbackDrafts() []models.ItemDraft {
	return []models.ItemDraft{{Name: FallbackDraftName, Category: FallbackDraftCategory}}
}

// RecognizeBatch recognizes a photo and keeps the drafts for review.
func (s *AIService) RecognizeBatch(ctx context.Context, owner string, image llm.Image, hint string) (*DraftBatch, error) {
	drafts, degraded := s.recognize(ctx, image, hint)
	batch := &DraftBatch{
		ID:        uuid.New().String(),
		Owner:     owner,
		Hint:      hint,
		Drafts:    drafts,
		Degraded:  degraded,
		CreatedAt: s.now(),
	}
	if err := s.drafts.Save(ctx, batch); err != nil {
		return nil, collaboratorError("save drafts", err)
	}
	return batch, nil
}

// Draft returns a pending batch. Batches of other owners are not found.
func (s *AIService) Draft(ctx context.Context, owner, id string) (*DraftBatch, error) {
	batch, err := s.drafts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDraftNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, collaboratorError("load drafts", err)
	}
	if batch.Owner != owner {
		return nil, ErrDraftNotFound
	}
	return batch, nil
}

func (s *AIService) DiscardDrafts(ctx context.Context, owner, id string) error {
	if _, err := s.Draft(ctx, owner, id); err != nil {
		return err
	}
	if err := s.drafts.Delete(ctx, id); err != nil {
		return collaboratorError("discard drafts", err)
	}
	return nil
}

// ConfirmDrafts imports a pending batch. When edited is non-nil it replaces
// the stored drafts, letting the user correct them first. Drafts that were
// not imported because of an error stay pending.
func (s *AIService) ConfirmDrafts(ctx context.Context, owner, id string, edited []models.ItemDraft, importer DraftImporter) ([]models.InventoryItem, error) {
	batch, err := s.Draft(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	drafts := batch.Drafts
	if edited != nil {
		drafts = edited
	}

	added, importErr := importer.ImportDrafts(ctx, owner, drafts)
	if importErr != nil {
		batch.Drafts = drafts[len(added):]
		if err := s.drafts.Save(ctx, batch); err != nil {
			log.Printf("[AIService] Failed to keep remaining drafts of %s: %v", id, err)
		}
		return added, importErr
	}

	if err := s.drafts.Delete(ctx, id); err != nil {
		log.Printf("[AIService] Failed to delete confirmed drafts %s: %v", id, err)
	}
	return added, nil
}

// Converse answers one chat turn with the session's items and recipes as
// context. On any failure it returns ChatApology.
func (s *AIService) Converse(ctx context.Context, history []models.ChatMessage, message string, items []models.InventoryItem, recipes []models.Recipe) string {
	defer s.observe(opChat, time.Now())

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: chatSystemInstruction(items, recipes)})
	for _, m := range history {
		role := llm.RoleUser
		if m.Role == models.RoleModel {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Text})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: message})

	ctx, cancel := s.callContext(ctx)
	defer cancel()

	reply, _, err := s.chain.Complete(ctx, llm.Request{Messages: messages, Temperature: 0.7})
	if err != nil {
		s.degraded(opChat, err)
		return ChatApology
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		s.degraded(opChat, llm.ErrEmptyResponse)
		return ChatApology
	}
	return reply
}
