package wizard

import (
	"context"
	"net/http"

	apperrors "github.com/huanfeng/connhub-cli/internal/errors"
	"github.com/huanfeng/connhub-cli/pkg/models"
)

// Publisher sends uploads to the catalog backend
type Publisher interface {
	VersionExists(ctx context.Context, bundleName, version string) (bool, error)
	Publish(ctx context.Context, payload *models.PublishPayload) (string, error)
}

// SubmitResult is a successful upload
type SubmitResult struct {
	UploadID string
	Payload  *models.PublishPayload
}

// bundleKey names the connector for the duplicate version check
func bundleKey(p *models.PublishPayload) string {
	if p.Bundle != nil && p.Bundle.BundleName != "" {
		return p.Bundle.BundleName
	}
	if p.Implementation.ImplementationID != "" {
		return p.Implementation.ImplementationID
	}
	return p.Implementation.DisplayName
}

// Submit publishes the upload. A version that already exists is reported
// as a VERSION_EXISTS conflict and nothing is sent. Backend failures come
// back as retryable SUBMIT_FAILED errors. In both cases the wizard stays
// at the submit step with all input kept.
func (w *Wizard) Submit(ctx context.Context, pub Publisher) (*SubmitResult, error) {
	if w.step != StepSubmit {
		return nil, w.stepError(StepSubmit)
	}
	payload, err := w.BuildPayload()
	if err != nil {
		return nil, err
	}

	if ver := payload.Implementation.Version; ver != "" {
		key := bundleKey(payload)
		exists, err := pub.VersionExists(ctx, key, ver)
		if err != nil {
			return nil, submitError(err, "failed to check the connector version")
		}
		if exists {
			w.logger.Warn("version %s of %s already exists", ver, key)
			return nil, apperrors.NewVersionExistsError(key, ver)
		}
	}

	id, err := pub.Publish(ctx, payload)
	if err != nil {
		return nil, submitError(err, "failed to publish the connector")
	}
	w.logger.Info("published upload %s", id)
	w.step = StepDone
	return &SubmitResult{UploadID: id, Payload: payload}, nil
}

// submitError wraps a backend failure. Client errors other than 429 are
// not worth retrying.
func submitError(err error, msg string) error {
	retryable := true
	if ce, ok := apperrors.As(err); ok && ce.Status >= 400 && ce.Status < 500 && ce.Status != http.StatusTooManyRequests {
		retryable = false
	}
	return apperrors.WrapError(err, apperrors.ErrorTypeNetwork, apperrors.CodeSubmitFailed, msg).
		SetRetryable(retryable).
		WithSuggestion("Your input is kept, run the submit again")
}
