package utils

import "log/slog"

func WarnIfFailed(err error, msg string) error {
	if err != nil {
		slog.Warn(msg, "error", err.Error())
	}
	return err
}
