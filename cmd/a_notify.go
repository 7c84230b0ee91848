package cmd

import (
	"log/slog"

	"github.com/drip-capital/drippay/common"
	"github.com/drip-capital/drippay/configuration"
	"github.com/drip-capital/drippay/notifications"
)

func notifyDisbursement(configuration *configuration.RuntimeConfiguration, report *common.DisbursementReport, filter string) {
	for _, notificatorConfiguration := range configuration.NotificationConfigurations {
		if filter != "" && string(notificatorConfiguration.Type) != filter {
			continue
		}
		if notificatorConfiguration.IsAdmin {
			continue
		}

		slog.Debug("sending notification", "notificator", notificatorConfiguration.Type)
		notificator, err := notifications.LoadNotificator(notificatorConfiguration.Type, notificatorConfiguration.Configuration)
		if err != nil {
			slog.Warn("failed to send notification", "error", err.Error())
			continue
		}

		err = notificator.DisbursementNotify(report, map[string]string{})
		if err != nil {
			slog.Warn("failed to send notification", "error", err.Error())
			continue
		}
	}
}

func notifyDisbursementThroughAllNotificators(configuration *configuration.RuntimeConfiguration, report *common.DisbursementReport) {
	notifyDisbursement(configuration, report, "")
}

func notifyAdmin(configuration *configuration.RuntimeConfiguration, msg string) {
	for _, notificatorConfiguration := range configuration.NotificationConfigurations {
		if !notificatorConfiguration.IsAdmin {
			continue
		}

		slog.Debug("sending admin notification", "notificator", notificatorConfiguration.Type)
		notificator, err := notifications.LoadNotificator(notificatorConfiguration.Type, notificatorConfiguration.Configuration)
		if err != nil {
			slog.Warn("failed to send admin notification", "error", err.Error())
			continue
		}

		err = notificator.AdminNotify(msg)
		if err != nil {
			slog.Warn("failed to send admin notification", "error", err.Error())
			continue
		}
	}
}

func notifyAdminFactory(configuration *configuration.RuntimeConfiguration) func(string) {
	return func(msg string) {
		notifyAdmin(configuration, msg)
	}
}
