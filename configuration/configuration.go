package configuration

import (
	"encoding/json"
	"math"
	"math/big"
	"os"
	"time"

	"github.com/drip-capital/drippay/constants"
	"github.com/drip-capital/drippay/notifications"
	"github.com/drip-capital/drippay/state"
	"github.com/hjson/hjson-go/v4"
	"github.com/samber/lo"
)

type NetworkConfiguration struct {
	RpcUrl                      string `json:"rpc_url"`
	ExplorerUrl                 string `json:"explorer_url"`
	ConfirmationTimeoutSeconds  int64  `json:"confirmation_timeout"`
	ConfirmationIntervalSeconds int64  `json:"confirmation_interval"`
}

type FaucetConfiguration struct {
	// amount dispensed per payout, in ETH
	DripAmount float64 `json:"drip_amount"`
	// minimum delay between payouts triggered by the same whitelisted
	// identity, in minutes; 0 disables the gate
	WhitelistCooldownMinutes int64 `json:"whitelist_cooldown"`
}

type ConfigurationType struct {
	BotToken                   string                   `json:"bot_token"`
	Network                    NetworkConfiguration     `json:"network"`
	Faucet                     FaucetConfiguration      `json:"faucet"`
	NotificationConfigurations []map[string]interface{} `json:"notifications"`
}

func GetDefault() ConfigurationType {
	return ConfigurationType{
		Network: NetworkConfiguration{
			RpcUrl:                      constants.DEFAULT_RPC_URL,
			ExplorerUrl:                 constants.DEFAULT_EXPLORER_URL,
			ConfirmationTimeoutSeconds:  constants.DEFAULT_CONFIRMATION_TIMEOUT,
			ConfirmationIntervalSeconds: constants.DEFAULT_CONFIRMATION_INTERVAL,
		},
		Faucet: FaucetConfiguration{},
	}
}

type RuntimeNotificatorConfiguration struct {
	Type          notifications.NotificatorKind
	IsAdmin       bool
	Configuration []byte
	IsValid       bool
}

type RuntimeFaucetConfiguration struct {
	DripAmount        *big.Int
	WhitelistCooldown time.Duration
}

type RuntimeNetworkConfiguration struct {
	RpcUrl               string
	ExplorerUrl          string
	ConfirmationTimeout  time.Duration
	ConfirmationInterval time.Duration
}

type RuntimeConfiguration struct {
	BotToken                   string
	Network                    RuntimeNetworkConfiguration
	Faucet                     RuntimeFaucetConfiguration
	NotificationConfigurations []RuntimeNotificatorConfiguration
	SourceBytes                []byte
}

func FloatAmountToWei(amount float64) *big.Int {
	wei, _ := new(big.Float).Mul(big.NewFloat(amount), big.NewFloat(constants.WEI_FACTOR)).Int(nil)
	return wei
}

func ConfigurationToRuntimeConfiguration(configuration *ConfigurationType) (*RuntimeConfiguration, error) {
	botToken := configuration.BotToken
	if envToken := os.Getenv("DRIPPAY_BOT_TOKEN"); envToken != "" {
		botToken = envToken
	}
	rpcUrl := configuration.Network.RpcUrl
	if envRpc := os.Getenv("DRIPPAY_RPC_URL"); envRpc != "" {
		rpcUrl = envRpc
	}

	dripAmount := big.NewInt(constants.DRIP_AMOUNT_WEI)
	if configuration.Faucet.DripAmount > 0 && !math.IsInf(configuration.Faucet.DripAmount, 0) {
		dripAmount = FloatAmountToWei(configuration.Faucet.DripAmount)
	}

	return &RuntimeConfiguration{
		BotToken: botToken,
		Network: RuntimeNetworkConfiguration{
			RpcUrl:               rpcUrl,
			ExplorerUrl:          configuration.Network.ExplorerUrl,
			ConfirmationTimeout:  time.Duration(configuration.Network.ConfirmationTimeoutSeconds) * time.Second,
			ConfirmationInterval: time.Duration(configuration.Network.ConfirmationIntervalSeconds) * time.Second,
		},
		Faucet: RuntimeFaucetConfiguration{
			DripAmount:        dripAmount,
			WhitelistCooldown: time.Duration(configuration.Faucet.WhitelistCooldownMinutes) * time.Minute,
		},
		NotificationConfigurations: lo.Map(configuration.NotificationConfigurations, func(item map[string]interface{}, index int) RuntimeNotificatorConfiguration {
			notificatorType, isValid := item["type"].(string)
			isAdmin := false
			if admin, ok := item["admin"].(bool); ok {
				isAdmin = admin
			}

			configurationBytes, _ := json.Marshal(item)

			return RuntimeNotificatorConfiguration{
				Type:          notifications.NotificatorKind(notificatorType),
				IsAdmin:       isAdmin,
				Configuration: configurationBytes,
				IsValid:       isValid,
			}
		}),
		SourceBytes: []byte{},
	}, nil
}

func LoadFromBytes(configurationBytes []byte) (*RuntimeConfiguration, error) {
	configuration := GetDefault()
	err := hjson.Unmarshal(configurationBytes, &configuration)
	if err != nil {
		return nil, err
	}
	runtime, err := ConfigurationToRuntimeConfiguration(&configuration)
	if err != nil {
		return nil, err
	}
	runtime.SourceBytes = configurationBytes
	return runtime, runtime.Validate()
}

func Load() (*RuntimeConfiguration, error) {
	hasInjectedConfiguration, configurationBytes := state.Global.GetInjectedConfiguration()
	if !hasInjectedConfiguration {
		configurationFilePath := state.Global.GetConfigurationFilePath()
		fileBytes, err := os.ReadFile(configurationFilePath)
		if err != nil {
			return nil, err
		}
		configurationBytes = fileBytes
	}
	return LoadFromBytes(configurationBytes)
}
