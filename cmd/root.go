package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/drip-capital/drippay/constants"
	"github.com/drip-capital/drippay/state"
	"github.com/drip-capital/drippay/utils"
)

const (
	LOG_LEVEL_FLAG          = "log-level"
	LOG_SERVER_FLAG         = "log-server"
	LOG_FILE_FLAG           = "log-file"
	PATH_FLAG               = "path"
	VERSION_FLAG            = "version"
	OUTPUT_FORMAT_FLAG      = "output-format"
	SKIP_VERSION_CHECK_FLAG = "skip-version-check"
)

var (
	LOG_LEVEL_MAP = map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

func setupLumberjackLogger(logFile string) io.Writer {
	return &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
}

func setupJsonLogger(level slog.Level, logServerAddress string, logFile string) {
	writers := make([]io.Writer, 0, 3)
	writers = append(writers, os.Stdout)

	if logServerAddress != "" {
		writers = append(writers, utils.NewLogServer(logServerAddress))
	}
	if logFile != "" {
		writers = append(writers, setupLumberjackLogger(logFile))
	}

	handler := slog.NewJSONHandler(utils.NewMultiWriter(writers...), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	if logServerAddress != "" {
		slog.Info("log server started", "address", logServerAddress)
	}
}

func setupTextLogger(level slog.Level) {
	handler := utils.NewPrettyTextLogHandler(os.Stdout, utils.PrettyHandlerOptions{
		HandlerOptions: slog.HandlerOptions{Level: level},
	})
	slog.SetDefault(slog.New(handler))
}

var (
	RootCmd = &cobra.Command{
		Use:   "drippay",
		Short: "DRIPPAY",
		Long: fmt.Sprintf(`DRIPPAY %s - the chat-driven ETH faucet
Copyright © %d drip.capital
`, constants.VERSION, time.Now().Year()),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			format, _ := cmd.Flags().GetString(OUTPUT_FORMAT_FLAG)
			level, _ := cmd.Flags().GetString(LOG_LEVEL_FLAG)
			logServer, _ := cmd.Flags().GetString(LOG_SERVER_FLAG)
			logFile, _ := cmd.Flags().GetString(LOG_FILE_FLAG)

			switch format {
			case "json":
				setupJsonLogger(LOG_LEVEL_MAP[level], logServer, logFile)
			case "text":
				setupTextLogger(LOG_LEVEL_MAP[level])
			default:
				if utils.IsTty() {
					setupTextLogger(LOG_LEVEL_MAP[level])
				} else {
					setupJsonLogger(LOG_LEVEL_MAP[level], logServer, logFile)
				}
			}
			slog.Debug("logger configured", "format", format, "level", level)

			workingDirectory, _ := cmd.Flags().GetString(PATH_FLAG)
			state.Init(workingDirectory, state.StateInitOptions{
				WantsJsonOutput: format == "json",
				Debug:           LOG_LEVEL_MAP[level] == slog.LevelDebug,
			})

			skipVersionCheck, _ := cmd.Flags().GetBool(SKIP_VERSION_CHECK_FLAG)
			if !skipVersionCheck && utils.IsTty() {
				promptIfNewVersionAvailable()
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			version, _ := cmd.Flags().GetBool(VERSION_FLAG)
			if version {
				fmt.Println(constants.VERSION)
				return
			}

			cmd.Help()
		},
	}
)

func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Flags().Bool(VERSION_FLAG, false, "Prints version")
	RootCmd.PersistentFlags().StringP(PATH_FLAG, "p", ".", "path to working directory")
	RootCmd.PersistentFlags().StringP(OUTPUT_FORMAT_FLAG, "o", "auto", "Sets output log format (json/text/auto)")
	RootCmd.PersistentFlags().StringP(LOG_LEVEL_FLAG, "l", "info", "Sets log level format (debug/info/warn/error)")
	RootCmd.PersistentFlags().String(LOG_SERVER_FLAG, "", "launches log server at specified address")
	RootCmd.PersistentFlags().String(LOG_FILE_FLAG, "", "Logs to file")
	RootCmd.PersistentFlags().Bool(SKIP_VERSION_CHECK_FLAG, false, "Skip version check")
	RootCmd.PersistentFlags().SetInterspersed(false)
}
