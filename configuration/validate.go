package configuration

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/drip-capital/drippay/constants"
	"github.com/drip-capital/drippay/notifications"
)

func _assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

func (configuration *RuntimeConfiguration) Validate() (err error) {
	defer func() {
		msg, _ := recover().(string)
		if msg != "" {
			err = errors.Join(constants.ErrConfigurationValidationFailed, errors.New(msg))
		}
	}()

	_assert(configuration != nil, "configuration is nil")
	_assert(configuration.Network.RpcUrl != "", "configuration.network.rpc_url is required")
	parsed, urlErr := url.Parse(configuration.Network.RpcUrl)
	_assert(urlErr == nil && (parsed.Scheme == "http" || parsed.Scheme == "https" || parsed.Scheme == "ws" || parsed.Scheme == "wss"),
		fmt.Sprintf("configuration.network.rpc_url - '%s' is not a valid rpc url", configuration.Network.RpcUrl))
	_assert(configuration.Faucet.DripAmount != nil && configuration.Faucet.DripAmount.Sign() > 0,
		"configuration.faucet.drip_amount must be positive")
	_assert(configuration.Faucet.WhitelistCooldown >= 0,
		"configuration.faucet.whitelist_cooldown must not be negative")
	_assert(configuration.Network.ConfirmationTimeout > 0,
		"configuration.network.confirmation_timeout must be positive")
	_assert(configuration.Network.ConfirmationInterval > 0,
		"configuration.network.confirmation_interval must be positive")

	for i, notificatorConfiguration := range configuration.NotificationConfigurations {
		_assert(notificatorConfiguration.IsValid,
			fmt.Sprintf("configuration.notifications[%d] has no valid type", i))
		validationErr := notifications.ValidateNotificatorConfiguration(notificatorConfiguration.Type, notificatorConfiguration.Configuration)
		_assert(validationErr == nil,
			fmt.Sprintf("configuration.notifications[%d] (%s) - %v", i, notificatorConfiguration.Type, validationErr))
	}
	return nil
}
