package ports

import "context"

// ArtifactJob asks the background workers to generate the QR ticket for a
// committed registration. The triggering request has already returned by the
// time the job runs; failures are logged and never reach the caller.
type ArtifactJob struct {
	RegistrationID string
	EventID        string
	UserID         string
}

// ArtifactProcessor generates and stores one registration artifact.
type ArtifactProcessor interface {
	Process(ctx context.Context, job ArtifactJob) error
}

// ArtifactDispatcher is the fire-and-forget submission side used by the
// registration service.
type ArtifactDispatcher interface {
	Enqueue(job ArtifactJob)
}
