package service

import (
	"fmt"
	"strings"
	"time"

	"ai-worker-console/internal/model"
	"ai-worker-console/internal/query"
	"ai-worker-console/internal/repository"
	"ai-worker-console/internal/ws"
	"ai-worker-console/pkg/validator"

	"github.com/samber/lo"
)

const defaultReply = "요청을 확인했습니다. 담당 Agent가 관련 정보를 정리해 안내드리겠습니다."

type WorkspaceService interface {
	ListWorkspaces() []model.WorkspaceInfo
	GetWorkspace(kind model.AgentKind) (*WorkspaceView, error)
	ListItems(kind model.AgentKind, opts WorkItemListOptions) ([]model.WorkItem, error)
	ListMessages(kind model.AgentKind) ([]model.ChatMessage, error)
	PostMessage(kind model.AgentKind, req *PostMessageRequest, actor string) ([]model.ChatMessage, error)
}

type WorkItemListOptions struct {
	Query  string
	Status string
}

type PostMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// StatTile is a derived count shown on a workspace dashboard
type StatTile struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// WorkspaceView is a workspace description with its live dashboard numbers
type WorkspaceView struct {
	model.WorkspaceInfo
	Known    bool       `json:"known"`
	Stats    []StatTile `json:"stats"`
	Messages int        `json:"messages"`
}

type workspaceService struct {
	itemRepo    repository.Store[model.WorkItem]
	messageRepo repository.Store[model.ChatMessage]
	bus         *ws.Bus
}

func NewWorkspaceService(itemRepo repository.Store[model.WorkItem], messageRepo repository.Store[model.ChatMessage], bus *ws.Bus) WorkspaceService {
	return &workspaceService{
		itemRepo:    itemRepo,
		messageRepo: messageRepo,
		bus:         bus,
	}
}

func (s *workspaceService) ListWorkspaces() []model.WorkspaceInfo {
	return lo.Map(model.AgentKinds, func(kind model.AgentKind, _ int) model.WorkspaceInfo {
		info, _ := model.LookupWorkspace(kind)
		return info
	})
}

// GetWorkspace never fails on an unknown kind; it serves the default workspace instead
func (s *workspaceService) GetWorkspace(kind model.AgentKind) (*WorkspaceView, error) {
	info, known := model.LookupWorkspace(kind)

	items, err := s.ListItems(kind, WorkItemListOptions{})
	if err != nil {
		return nil, err
	}
	messages, err := s.ListMessages(kind)
	if err != nil {
		return nil, err
	}

	return &WorkspaceView{
		WorkspaceInfo: info,
		Known:         known,
		Stats:         statTiles(items),
		Messages:      len(messages),
	}, nil
}

func (s *workspaceService) ListItems(kind model.AgentKind, opts WorkItemListOptions) ([]model.WorkItem, error) {
	items, err := s.itemRepo.List()
	if err != nil {
		return nil, err
	}
	ofKind := query.Predicate[model.WorkItem](func(item model.WorkItem) bool { return item.Kind == kind })
	return query.Apply(items,
		ofKind,
		query.Search(opts.Query, func(item model.WorkItem) []string { return []string{item.Title, item.Detail} }),
		query.Category(opts.Status, func(item model.WorkItem) string { return item.Status }),
	), nil
}

func (s *workspaceService) ListMessages(kind model.AgentKind) ([]model.ChatMessage, error) {
	messages, err := s.messageRepo.List()
	if err != nil {
		return nil, err
	}
	return lo.Filter(messages, func(m model.ChatMessage, _ int) bool { return m.Kind == kind }), nil
}

// PostMessage appends the operator's message and the agent's canned reply, and
// returns both in thread order
func (s *workspaceService) PostMessage(kind model.AgentKind, req *PostMessageRequest, actor string) ([]model.ChatMessage, error) {
	info, known := model.LookupWorkspace(kind)
	if !known {
		return nil, ErrWorkspaceNotFound
	}
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	now := time.Now()
	question := model.ChatMessage{Kind: kind, Sender: model.SenderOperator, Content: req.Content}
	question.StampCreated(actor, now)
	answer := model.ChatMessage{Kind: kind, Sender: model.SenderAgent, Content: cannedReply(info, req.Content)}
	answer.StampCreated(info.Title, now)

	posted := make([]model.ChatMessage, 0, 2)
	for _, m := range []model.ChatMessage{question, answer} {
		created, err := s.messageRepo.Add(m)
		if err != nil {
			return nil, err
		}
		posted = append(posted, *created)
	}

	s.bus.Publish(ws.NewEvent(ws.EntityMessage, ws.ActionCreated, posted[0].ID, actor,
		fmt.Sprintf("%s asked %s", actor, info.Title)))
	return posted, nil
}

// cannedReply picks the first quick action whose keyword appears in content
func cannedReply(info model.WorkspaceInfo, content string) string {
	action, ok := lo.Find(info.QuickActions, func(a model.QuickAction) bool {
		return a.Keyword != "" && strings.Contains(content, a.Keyword)
	})
	if !ok {
		return defaultReply
	}
	return action.Reply
}

// statTiles counts items per status in first-appearance order, after a total tile
func statTiles(items []model.WorkItem) []StatTile {
	groups := query.GroupByKeys(items, nil, func(item model.WorkItem) string { return item.Status })
	tiles := []StatTile{{Label: "total", Value: len(items)}}
	return append(tiles, lo.Map(groups, func(g query.Group[model.WorkItem], _ int) StatTile {
		return StatTile{Label: g.Key, Value: g.Count}
	})...)
}
