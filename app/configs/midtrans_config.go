package configs

import (
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"go.uber.org/zap"
)

func midtransEnvironment(env ENV) midtrans.EnvironmentType {
	if env.MidtransEnv == "production" {
		return midtrans.Production
	}
	return midtrans.Sandbox
}

// NewMidtransSnapClient returns a snap client bound to the configured server key.
func NewMidtransSnapClient(env ENV) *snap.Client {
	var client snap.Client
	client.New(env.MidtransServerKey, midtransEnvironment(env))

	if env.MidtransServerKey == "" {
		zap.S().Warn("MIDTRANS_SERVER_KEY is empty, payment intents will be rejected by the gateway")
	} else {
		zap.S().Infof("Midtrans Snap client initialized (%s)", env.MidtransEnv)
	}
	return &client
}
