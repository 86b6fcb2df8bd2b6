package tracing

import "github.com/stretchr/testify/mock"

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) OnEnd(s SpanSnapshot) {
	m.Called(s)
}

type mockIDGenerator struct {
	mock.Mock
}

func (m *mockIDGenerator) NewTraceID() TraceID {
	return m.Called().Get(0).(TraceID)
}

func (m *mockIDGenerator) NewSpanID() SpanID {
	return m.Called().Get(0).(SpanID)
}
