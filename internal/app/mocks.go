package app

import "promolink_backend/internal/email"

// MockEmailProvider используется для тестов и локальной разработки.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(msg *email.Email) error                    { return nil }
func (m *MockEmailProvider) SendVerification(to string, token string) error { return nil }
func (m *MockEmailProvider) Validate() error                                { return nil }
func (m *MockEmailProvider) Close() error                                   { return nil }
