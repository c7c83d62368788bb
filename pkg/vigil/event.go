// event.go defines the event record submitted through the reporting pipeline.

package vigil

import "time"

// Source tags where an event originated. It is internal bookkeeping and
// never crosses the transport boundary.
type Source string

const (
	// SourceUser marks events triggered by application code.
	SourceUser Source = ""

	// SourceLogger marks events generated by the logging integration.
	// Delivery failures for these events are not logged, to avoid a
	// feedback loop between the reporter and the logger.
	SourceLogger Source = "logger"
)

// Frame is one entry of a stack trace.
type Frame struct {
	// Filename is the base name of the source file.
	Filename string

	// Function is the fully qualified function name.
	Function string

	// Module is the package or namespace the function belongs to.
	Module string

	// AbsPath is the absolute path of the source file.
	AbsPath string

	// ContextLine is the source line at the frame, if available.
	ContextLine string

	// Lineno is the 1-based line number (0 = unknown).
	Lineno int

	// Colno is the 1-based column number (0 = unknown).
	Colno int

	// InApp reports whether the frame belongs to application code
	// rather than a dependency or the runtime.
	InApp bool
}

// Stacktrace is an ordered list of frames, outermost first.
type Stacktrace struct {
	Frames []Frame
}

// Exception describes one error in an event's exception chain.
type Exception struct {
	// Type is the error type name (e.g. "*os.PathError").
	Type string

	// Value is the error message.
	Value string

	// Module is the package the error type is defined in.
	Module string

	// Stacktrace is the optional stack captured where the error occurred.
	Stacktrace *Stacktrace
}

// Breadcrumb records one step on the trail leading up to an event.
type Breadcrumb struct {
	Timestamp time.Time
	Type      string
	Category  string
	Level     string
	Message   string
	Data      map[string]any
}

// SDKInfo identifies the client that produced an event.
type SDKInfo struct {
	Name    string
	Version string
}

// RequestContext carries the HTTP request active when the event occurred.
type RequestContext struct {
	URL         string
	Method      string
	QueryString string
	Cookies     string

	// Data is the request body, or any caller-chosen representation of it.
	Data any

	Headers map[string]string
	Env     map[string]string
}

// Event is one error/message record to be reported. Every field except
// EventID is optional; absent fields are omitted from the rendered
// payload rather than sent as empty values.
type Event struct {
	// EventID uniquely identifies the event. Filled with a fresh UUID by
	// Send when empty.
	EventID string

	// Timestamp is when the event occurred. Filled by Send when zero.
	Timestamp time.Time

	// Source tags the event's origin. Not rendered.
	Source Source

	Level       string
	Logger      string
	Platform    string
	ServerName  string
	Environment string
	Release     string
	Transaction string

	// Message is free text. Truncated to MaxMessageLength characters
	// during rendering.
	Message string

	// Checksum is an optional grouping hash; see Checksum().
	Checksum string

	Breadcrumbs []Breadcrumb
	SDK         *SDKInfo
	Request     *RequestContext

	// Extra, Tags and User are free-form and pass through the Sanitizer
	// before crossing the transport boundary.
	Extra map[string]any
	Tags  map[string]any
	User  map[string]any

	Exceptions []Exception
}
