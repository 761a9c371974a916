package dto

import "handyman-chat-be/pkg/store"

type CreateSessionResponse struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type SendMessageRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

type SendMessageResponse struct {
	Message string               `json:"message"`
	Results []store.SearchResult `json:"results"`
}

type GetHistoryResponse struct {
	History []store.Message `json:"history"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
