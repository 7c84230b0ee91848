package cmd

import (
	"errors"

	"github.com/drip-capital/drippay/common"
	"github.com/drip-capital/drippay/configuration"
	"github.com/drip-capital/drippay/constants"
	ledger_engines "github.com/drip-capital/drippay/engines/ledger"
)

type ConfigurationAndEngines struct {
	Configuration *configuration.RuntimeConfiguration
	Ledger        common.LedgerEngine
}

func (cae *ConfigurationAndEngines) Unwrap() (*configuration.RuntimeConfiguration, common.LedgerEngine) {
	return cae.Configuration, cae.Ledger
}

func loadConfigurationAndEngines() (*ConfigurationAndEngines, error) {
	config, err := configuration.Load()
	if err != nil {
		return nil, errors.Join(constants.ErrConfigurationLoadFailed, err)
	}

	ledger, err := ledger_engines.InitDefaultLedger(config)
	if err != nil {
		return nil, errors.Join(constants.ErrLedgerLoadFailed, err)
	}

	return &ConfigurationAndEngines{
		Configuration: config,
		Ledger:        ledger,
	}, nil
}
