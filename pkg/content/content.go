package content

import "context"

// Level is the difficulty of a training module.
type Level string

const (
	Beginner     Level = "Beginner"
	Intermediate Level = "Intermediate"
	Advanced     Level = "Advanced"
)

// Attachment is a file hosted by the content delivery service.
type Attachment struct {
	Title       string
	Url         string
	FileName    string
	ContentType string
}

// Module is a training module as published in the content catalog. The
// planner only ever reads these; authoring happens in the CMS.
type Module struct {
	ExternalId      string
	Title           string
	Description     string
	Level           Level
	DurationMinutes int
	Topics          []string
	Content         string
	Presentation    *Attachment
	Document        *Attachment
}

// Exercise is a drill published in the content catalog, optionally with a
// single media attachment (usually a demonstration video).
type Exercise struct {
	ExternalId  string
	Title       string
	Description string
	Media       *Attachment
}

// Catalog is the read-only view over the content delivery service. Both
// operations fetch the full published list; no pagination is exposed to
// callers. Callers that need both lists in one request should build a
// Snapshot instead of calling these repeatedly.
type Catalog interface {
	ListAllModules(ctx context.Context) ([]Module, error)
	ListAllExercises(ctx context.Context) ([]Exercise, error)
}
