package mock

import (
	"github.com/drip-capital/drippay/common"
)

var _ common.NotificatorEngine = (*RecordingNotificator)(nil)

// RecordingNotificator captures every notification for assertions.
type RecordingNotificator struct {
	DisbursementMessages []*common.DisbursementReport
	AdminMessages        []string
	Err                  error
}

func (notificator *RecordingNotificator) DisbursementNotify(report *common.DisbursementReport, additionalData map[string]string) error {
	notificator.DisbursementMessages = append(notificator.DisbursementMessages, report)
	return notificator.Err
}

func (notificator *RecordingNotificator) AdminNotify(msg string) error {
	notificator.AdminMessages = append(notificator.AdminMessages, msg)
	return notificator.Err
}

func (notificator *RecordingNotificator) TestNotify() error {
	return notificator.Err
}
