package services

import (
	"fmt"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
)

// checkSubmittable allows submission from DRAFT only
func checkSubmittable(t *models.Template) error {
	if t.Status != models.StatusDraft {
		return fmt.Errorf("%w: only DRAFT templates can be submitted, template is %s", ErrInvalidTransition, t.Status)
	}
	return nil
}

// markSubmitted records a successful submission: DRAFT becomes PENDING
// under the platform-assigned id.
func markSubmitted(t *models.Template, externalID string, now time.Time) error {
	if err := checkSubmittable(t); err != nil {
		return err
	}
	t.Status = models.StatusPending
	t.ExternalTemplateID = externalID
	t.RejectedReason = ""
	t.UpdatedAt = now
	stampLifecycle(t, now)
	return nil
}

// stampLifecycle sets submittedAt once the template has left DRAFT and
// approvedAt once it has been APPROVED. Both are set-once.
func stampLifecycle(t *models.Template, now time.Time) {
	if t.SubmittedAt == nil && t.Status != models.StatusDraft {
		stamp := now
		t.SubmittedAt = &stamp
	}
	if t.ApprovedAt == nil && t.Status == models.StatusApproved {
		stamp := now
		t.ApprovedAt = &stamp
	}
}

// checkEditable allows local edits only before the first submission. Once
// submitted the platform owns the status and sync would overwrite any edit.
func checkEditable(t *models.Template) error {
	if t.Status != models.StatusDraft {
		return fmt.Errorf("%w: only DRAFT templates can be edited, template is %s", ErrInvalidTransition, t.Status)
	}
	return nil
}
