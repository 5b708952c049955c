package model

type SupportMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AskSupportRequest struct {
	Query   string           `json:"query"`
	History []SupportMessage `json:"history"`
}

type AskSupportResponse struct {
	Response string `json:"response"`
}

type ContactSupportRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ContactSupportResponse struct{}
