package tracinghttp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/justinas/alice"
	"github.com/xmidt-org/tracekit/propagation"
	"github.com/xmidt-org/tracekit/tracing"
)

const (
	// SpanHeader is the response header carrying the server span identity,
	// useful for correlating client-side logs with a trace.
	SpanHeader = "X-Tracekit-Span"
)

type contextKey struct{}

// WithContext associates a tracing.Context with the request.  This is the
// explicit bridge between the per-request goroutine and the tracing core;
// nothing is inherited that is not placed here.
func WithContext(request *http.Request, ctx tracing.Context) *http.Request {
	return request.WithContext(contextWith(request, ctx))
}

// FromRequest retrieves the tracing.Context associated with the request via
// WithContext, or the empty root Context if there is none.
func FromRequest(request *http.Request) tracing.Context {
	if ctx, ok := request.Context().Value(contextKey{}).(tracing.Context); ok {
		return ctx
	}

	return tracing.Root()
}

// Option represents a configurable option for the handler decorators in this package
type Option func(*options)

type options struct {
	spanName func(*http.Request) string
}

// WithSpanName sets the function that names the span for a request.  If f is
// nil, this option does nothing.  The default name is "METHOD path".
func WithSpanName(f func(*http.Request) string) Option {
	return func(o *options) {
		if f != nil {
			o.spanName = f
		}
	}
}

func newOptions(o ...Option) *options {
	opts := &options{
		spanName: func(r *http.Request) string {
			return r.Method + " " + r.URL.Path
		},
	}

	for _, f := range o {
		f(opts)
	}

	return opts
}

// Extract produces a server middleware, usable directly or in an alice
// chain, that runs each request inside a server span.  Trace context and
// baggage are read from the request headers; a remote identity found there
// parents the server span, while a request with no (or malformed) trace
// headers starts a new trace.  The derived Context is associated with the
// request for handler code to pick up via FromRequest.
//
// The middleware records the response code as a span attribute but never
// sets an error status on its own; that remains the handler's decision.
func Extract(tracer *tracing.Tracer, o ...Option) alice.Constructor {
	opts := newOptions(o...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			ctx := propagation.Extract(propagation.HeaderCarrier(request.Header))
			span, ctx := tracer.Start(ctx, opts.spanName(request),
				tracing.WithKind(tracing.KindServer),
				tracing.WithAttributes(map[string]interface{}{
					"http.method": request.Method,
					"http.target": request.URL.Path,
				}),
			)

			defer span.End()

			sc := span.SpanContext()
			response.Header().Set(SpanHeader, fmt.Sprintf(`"%s","%s"`, sc.TraceID, sc.SpanID))

			capture := &statusCapture{ResponseWriter: response}
			next.ServeHTTP(capture, WithContext(request, ctx))
			span.SetAttribute("http.status_code", capture.code())
		})
	}
}

// RoundTripper decorates an http.RoundTripper so that each outgoing request
// runs inside a client span and carries the trace context and baggage in its
// headers.  The Context for the request is the one associated with it via
// WithContext; a request with none starts a new trace.
//
// A transport error is recorded as an error status on the client span before
// being returned unchanged.  If next is nil, http.DefaultTransport is used.
func RoundTripper(tracer *tracing.Tracer, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return roundTripperFunc(func(request *http.Request) (*http.Response, error) {
		span, ctx := tracer.Start(FromRequest(request), "HTTP "+request.Method,
			tracing.WithKind(tracing.KindClient),
		)

		defer span.End()

		// round trippers must not mutate the original request
		outgoing := request.Clone(contextWith(request, ctx))
		if outgoing.Header == nil {
			outgoing.Header = make(http.Header)
		}

		propagation.Inject(ctx, propagation.HeaderCarrier(outgoing.Header))

		response, err := next.RoundTrip(outgoing)
		if err != nil {
			span.SetStatus(tracing.StatusError, err.Error())
			return nil, err
		}

		span.SetAttribute("http.status_code", response.StatusCode)
		return response, nil
	})
}

func contextWith(request *http.Request, ctx tracing.Context) context.Context {
	return context.WithValue(request.Context(), contextKey{}, ctx)
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(request *http.Request) (*http.Response, error) {
	return f(request)
}

// statusCapture records the response code written by the decorated handler
type statusCapture struct {
	http.ResponseWriter
	statusCode int
}

func (sc *statusCapture) WriteHeader(statusCode int) {
	if sc.statusCode == 0 {
		sc.statusCode = statusCode
	}

	sc.ResponseWriter.WriteHeader(statusCode)
}

func (sc *statusCapture) Write(b []byte) (int, error) {
	if sc.statusCode == 0 {
		sc.statusCode = http.StatusOK
	}

	return sc.ResponseWriter.Write(b)
}

func (sc *statusCapture) code() int {
	if sc.statusCode == 0 {
		return http.StatusOK
	}

	return sc.statusCode
}
