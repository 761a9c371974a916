package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"handyman-chat-be/internal/constant"
	"handyman-chat-be/internal/dto"
	"handyman-chat-be/internal/pkg/logger"
	"handyman-chat-be/internal/repository/contract"
	"handyman-chat-be/pkg/chatbot"
	"handyman-chat-be/pkg/store"
)

// IChatService orchestrates the session lifecycle around the engine.
type IChatService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetHistory(ctx context.Context, sessionID string) (*dto.GetHistoryResponse, error)
}

type chatService struct {
	sessionRepo contract.ISessionRepository
	engine      chatbot.Engine
	log         logger.ILogger

	// allowImplicitSession lets /message mint a session for an unknown id
	// instead of returning not-found.
	allowImplicitSession bool
}

func NewChatService(
	sessionRepo contract.ISessionRepository,
	engine chatbot.Engine,
	log logger.ILogger,
	allowImplicitSession bool,
) IChatService {
	return &chatService{
		sessionRepo:          sessionRepo,
		engine:               engine,
		log:                  log,
		allowImplicitSession: allowImplicitSession,
	}
}

func (s *chatService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	sess := store.NewSession(uuid.NewString(), constant.WelcomeMessage)
	if err := s.sessionRepo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.log.Info("chat", "session created", map[string]interface{}{
		"session_id": sess.ID,
	})

	return &dto.CreateSessionResponse{
		SessionID: sess.ID,
		Message:   constant.WelcomeMessage,
	}, nil
}

func (s *chatService) SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	sess, err := s.lookupSession(ctx, request.SessionID)
	if err != nil {
		return nil, err
	}

	reply, err := s.engine.Respond(ctx, sess, request.Message)
	if err != nil {
		return nil, err
	}

	// The memory store shares the session pointer and ignores this write;
	// the redis store needs it to persist the appended turn.
	if err := s.sessionRepo.Save(ctx, sess); err != nil {
		s.log.Error("chat", "failed to persist session after turn", map[string]interface{}{
			"session_id": sess.ID,
			"error":      err.Error(),
		})
	}

	return &dto.SendMessageResponse{
		Message: reply.Text,
		Results: reply.Results,
	}, nil
}

func (s *chatService) GetHistory(ctx context.Context, sessionID string) (*dto.GetHistoryResponse, error) {
	sess, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &dto.GetHistoryResponse{History: sess.Transcript()}, nil
}

func (s *chatService) lookupSession(ctx context.Context, sessionID string) (*store.Session, error) {
	sess, err := s.sessionRepo.Get(ctx, sessionID)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, store.ErrSessionNotFound) || !s.allowImplicitSession {
		return nil, err
	}

	// Unknown id and implicit creation enabled: adopt the client's id so it
	// keeps working as the session handle.
	sess = store.NewSession(sessionID, constant.WelcomeMessage)
	if err := s.sessionRepo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save implicit session: %w", err)
	}
	s.log.Info("chat", "session created implicitly", map[string]interface{}{
		"session_id": sess.ID,
	})
	return sess, nil
}
