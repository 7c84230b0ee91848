package notifications

import (
	"fmt"
	"strings"

	"github.com/drip-capital/drippay/common"
	"github.com/drip-capital/drippay/constants"
)

type NotificatorKind string

const (
	TELEGRAM_NOTIFICATOR NotificatorKind = "telegram"
	DISCORD_NOTIFICATOR  NotificatorKind = "discord"
	WEBHOOK_NOTIFICATOR  NotificatorKind = "webhook"
	TWITTER_NOTIFICATOR  NotificatorKind = "twitter"
	BLUESKY_NOTIFICATOR  NotificatorKind = "bluesky"
	EMAIL_NOTIFICATOR    NotificatorKind = "email"
	EXTERNAL_NOTIFICATOR NotificatorKind = "external"
)

type NotificationKind string

const (
	DISBURSEMENT_NOTIFICATION NotificationKind = "disbursement"
	ADMIN_NOTIFICATION        NotificationKind = "admin notification"
	TEST_NOTIFICATION         NotificationKind = "test notification"
)

func LoadNotificator(kind NotificatorKind, configuration []byte) (common.NotificatorEngine, error) {
	switch kind {
	case TELEGRAM_NOTIFICATOR:
		return InitTelegramNotificator(configuration)
	case DISCORD_NOTIFICATOR:
		return InitDiscordNotificator(configuration)
	case WEBHOOK_NOTIFICATOR:
		return InitWebhookNotificator(configuration)
	case TWITTER_NOTIFICATOR:
		return InitTwitterNotificator(configuration)
	case BLUESKY_NOTIFICATOR:
		return InitBlueskyNotificator(configuration)
	case EMAIL_NOTIFICATOR:
		return InitEmailNotificator(configuration)
	case EXTERNAL_NOTIFICATOR:
		return InitExternalNotificator(configuration)
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrUnsupportedNotificator, kind)
	}
}

func ValidateNotificatorConfiguration(kind NotificatorKind, configuration []byte) error {
	switch kind {
	case TELEGRAM_NOTIFICATOR:
		return ValidateTelegramConfiguration(configuration)
	case DISCORD_NOTIFICATOR:
		return ValidateDiscordConfiguration(configuration)
	case WEBHOOK_NOTIFICATOR:
		return ValidateWebhookConfiguration(configuration)
	case TWITTER_NOTIFICATOR:
		return ValidateTwitterConfiguration(configuration)
	case BLUESKY_NOTIFICATOR:
		return ValidateBlueskyConfiguration(configuration)
	case EMAIL_NOTIFICATOR:
		return ValidateEmailConfiguration(configuration)
	case EXTERNAL_NOTIFICATOR:
		return ValidateExternalConfiguration(configuration)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedNotificator, kind)
	}
}

func PopulateMessageTemplate(template string, report *common.DisbursementReport, additionalData map[string]string) string {
	replacements := map[string]string{
		"<Recipient>": report.Recipient,
		"<Amount>":    common.FormatWeiAmount(report.GetAmount()),
		"<TxHash>":    report.TxHash,
		"<RequestId>": report.RequestId,
	}
	for k, v := range additionalData {
		replacements[fmt.Sprintf("<%s>", k)] = v
	}
	result := template
	for k, v := range replacements {
		result = strings.ReplaceAll(result, k, v)
	}
	return result
}
