package main

import (
	"log/slog"
	"os"

	"github.com/drip-capital/drippay/cmd"
	"github.com/drip-capital/drippay/common"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			if panicStatus, ok := r.(common.PanicStatus); ok {
				if panicStatus.Error != nil {
					slog.Error(panicStatus.Message, "error", panicStatus.Error.Error())
				}
				os.Exit(panicStatus.ExitCode)
			}
			slog.Error("unhandled panic", "panic", r)
			os.Exit(common.EXIT_UNHANDLED_ERROR)
		}
	}()

	cmd.Execute()
}
