package state

import (
	"os"
	"path"

	"github.com/drip-capital/drippay/constants"
)

var (
	Global State
)

type StateInitOptions struct {
	WantsJsonOutput       bool
	InjectedConfiguration *string
	Debug                 bool
}

type State struct {
	workingDirectory         string
	wantsJsonOutput          bool
	injectedConfiguration    []byte
	hasInjectedConfiguration bool
	debug                    bool
}

func Init(workingDirectory string, options StateInitOptions) {
	injectedConfiguration, hasInjectedConfiguration := []byte{}, false
	if options.InjectedConfiguration != nil {
		injectedConfiguration, hasInjectedConfiguration = []byte(*options.InjectedConfiguration), true
	}
	Global = State{
		workingDirectory:         workingDirectory,
		injectedConfiguration:    injectedConfiguration,
		wantsJsonOutput:          options.WantsJsonOutput,
		hasInjectedConfiguration: hasInjectedConfiguration,
		debug:                    options.Debug,
	}
}

func (state *State) GetWorkingDirectory() string {
	return state.workingDirectory
}

func (state *State) GetWantsOutputJson() bool {
	return state.wantsJsonOutput
}

func (state *State) GetInjectedConfiguration() (bool, []byte) {
	return state.hasInjectedConfiguration, state.injectedConfiguration
}

func (state *State) GetConfigurationFilePath() string {
	configurationFilePath := os.Getenv("CONFIGURATION_FILE")
	if configurationFilePath != "" {
		return configurationFilePath
	}
	return path.Join(state.GetWorkingDirectory(), constants.CONFIG_FILE_NAME)
}

func (state *State) GetRecordsDirectory() string {
	recordsDirectory := os.Getenv("RECORDS_DIRECTORY")
	if recordsDirectory != "" {
		return recordsDirectory
	}
	return path.Join(state.GetWorkingDirectory(), constants.RECORDS_DIRECTORY)
}

func (state *State) GetIsInDebugMode() bool {
	return state.debug
}
