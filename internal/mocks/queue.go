package mocks

import "sync"

// PublishedMessage captures one Publish call.
type PublishedMessage struct {
	Subject string
	Data    []byte
}

// MockMessageQueue is a mock implementation of MessageQueue
type MockMessageQueue struct {
	mu        sync.Mutex
	Published []PublishedMessage

	PublishFunc   func(subject string, data []byte) error
	SubscribeFunc func(subject string, handler func(data []byte) error) error
}

func (m *MockMessageQueue) Publish(subject string, data []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(subject, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, PublishedMessage{Subject: subject, Data: data})
	return nil
}

func (m *MockMessageQueue) Subscribe(subject string, handler func(data []byte) error) error {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(subject, handler)
	}
	return nil
}

func (m *MockMessageQueue) Close() error { return nil }
