package domain

import "github.com/expenseapp/ExpenseApp/internal/finance/errors"

// Authorize confirms that a record belongs to the acting user. Every edit and
// delete path must call it before touching the record; on ErrForbidden the
// caller stops and surfaces an access-denial outcome.
func Authorize(recordOwnerID, actingUserID string) error {
	if recordOwnerID != actingUserID {
		return errors.ErrForbidden
	}
	return nil
}
