package repository

import "context"

// SubmissionRepository maintains the per-theme submission index and the
// one-way "has this user submitted for this theme" fact.
type SubmissionRepository interface {
	// AddSubmission indexes designID under themeID. Re-adding an already
	// indexed id is a no-op.
	AddSubmission(ctx context.Context, themeID, designID string) error

	// Submissions returns the design ids submitted for themeID in a
	// stable order (id ascending).
	Submissions(ctx context.Context, themeID string) ([]string, error)

	// MarkSubmitter records that userID has submitted for themeID.
	// The fact is one-way; it is never cleared.
	MarkSubmitter(ctx context.Context, themeID, userID string) error

	// HasSubmitter reports whether userID has ever submitted for themeID.
	HasSubmitter(ctx context.Context, themeID, userID string) (bool, error)
}
