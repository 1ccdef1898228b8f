package app

import "projecthub_backend/internal/logger"

// MockEmailTransport is used for local development when SMTP is not
// configured. It logs instead of sending.
type MockEmailTransport struct{}

func (m *MockEmailTransport) Send(to, subject, htmlBody string) error {
	logger.Info("mock email transport: dropping email", "to", to, "subject", subject)
	return nil
}
