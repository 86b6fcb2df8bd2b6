package processor

import (
	"github.com/stretchr/testify/mock"
	"github.com/xmidt-org/tracekit/tracing"
)

type mockExporter struct {
	mock.Mock
}

func (m *mockExporter) Export(spans ...tracing.SpanSnapshot) {
	m.Called(spans)
}

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) OnEnd(s tracing.SpanSnapshot) {
	m.Called(s)
}
