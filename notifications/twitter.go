package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dghubble/oauth1"
	"github.com/drip-capital/drippay/common"
	"github.com/drip-capital/drippay/constants"
	twitter "github.com/g8rswimmer/go-twitter/v2"
)

type twitterNotificatorConfiguration struct {
	Type              string `json:"type"`
	MessageTemplate   string `json:"message_template"`
	ConsumerKey       string `json:"consumer_key"`
	ConsumerSecret    string `json:"consumer_secret"`
	AccessToken       string `json:"access_token"`
	AccessTokenSecret string `json:"access_token_secret"`
}

type TwitterNotificator struct {
	client          *twitter.Client
	messageTemplate string
}

type authorize struct{}

func (a authorize) Add(req *http.Request) {}

const (
	DEFAULT_TWITTER_MESSAGE_TEMPLATE = "Dispensed <Amount> to <Recipient> using #drippay."
)

func InitTwitterNotificator(configurationBytes []byte) (*TwitterNotificator, error) {
	configuration := twitterNotificatorConfiguration{}
	err := json.Unmarshal(configurationBytes, &configuration)
	if err != nil {
		return nil, err
	}
	config := oauth1.NewConfig(configuration.ConsumerKey, configuration.ConsumerSecret)
	token := oauth1.NewToken(configuration.AccessToken, configuration.AccessTokenSecret)

	httpClient := config.Client(oauth1.NoContext, token)

	client := &twitter.Client{
		Authorizer: authorize{},
		Client:     httpClient,
		Host:       "https://api.twitter.com",
	}
	msgTemplate := configuration.MessageTemplate
	if msgTemplate == "" {
		msgTemplate = DEFAULT_TWITTER_MESSAGE_TEMPLATE
	}

	slog.Debug("twitter notificator initialized")

	return &TwitterNotificator{
		client:          client,
		messageTemplate: msgTemplate,
	}, nil
}

func ValidateTwitterConfiguration(configurationBytes []byte) error {
	configuration := twitterNotificatorConfiguration{}
	err := json.Unmarshal(configurationBytes, &configuration)
	if err != nil {
		return err
	}
	if configuration.AccessToken == "" {
		return errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("invalid twitter access token"))
	}
	if configuration.AccessTokenSecret == "" {
		return errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("invalid twitter access token secret"))
	}
	if configuration.ConsumerKey == "" {
		return errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("invalid twitter consumer key"))
	}
	if configuration.ConsumerSecret == "" {
		return errors.Join(constants.ErrInvalidNotificatorConfiguration, errors.New("invalid twitter consumer secret"))
	}

	return nil
}

func (tn *TwitterNotificator) DisbursementNotify(report *common.DisbursementReport, additionalData map[string]string) error {
	_, err := tn.client.CreateTweet(context.Background(), twitter.CreateTweetRequest{
		Text: PopulateMessageTemplate(tn.messageTemplate, report, additionalData),
	})
	return err
}

func (tn *TwitterNotificator) AdminNotify(msg string) error {
	_, err := tn.client.CreateTweet(context.Background(), twitter.CreateTweetRequest{
		Text: msg,
	})
	return err
}

func (tn *TwitterNotificator) TestNotify() error {
	_, err := tn.client.CreateTweet(context.Background(), twitter.CreateTweetRequest{
		Text: fmt.Sprintf("Notification test from %s (%s) 👀", constants.CODENAME, constants.VERSION),
	})
	return err
}
