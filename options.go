package ancore

import (
	"github.com/rs/zerolog"
)

// ClientOption configures an AccountClient.
type ClientOption func(*AccountClient) error

// WithNetworkName selects one of the named network presets ("testnet",
// "pubnet", "mainnet", "futurenet", "local").
func WithNetworkName(name string) ClientOption {
	return func(c *AccountClient) error {
		cfg, err := LookupNetwork(name)
		if err != nil {
			return err
		}
		c.network = cfg
		return nil
	}
}

// WithNetwork sets an explicit network configuration, overriding presets.
func WithNetwork(cfg NetworkConfig) ClientOption {
	return func(c *AccountClient) error {
		if cfg.Passphrase == "" {
			return &ValidationError{Field: "network", Reason: "passphrase must not be empty"}
		}
		c.network = cfg
		return nil
	}
}

// WithBaseFee sets the per-operation base fee in stroops.
// Default is DefaultBaseFee.
func WithBaseFee(fee int64) ClientOption {
	return func(c *AccountClient) error {
		if fee <= 0 {
			return &ValidationError{Field: "baseFee", Reason: "must be positive"}
		}
		c.baseFee = fee
		return nil
	}
}

// WithDefaultTimeout sets the default transaction validity window in
// seconds for builders created by the client. Individual builders may
// override it with SetTimeout.
func WithDefaultTimeout(secs uint64) ClientOption {
	return func(c *AccountClient) error {
		if secs == 0 {
			return &ValidationError{Field: "timeout", Reason: "must be greater than zero"}
		}
		c.timeout = secs
		return nil
	}
}

// WithRetryPolicy sets the retry policy wrapping remote calls.
// Default is DefaultRetryPolicy.
func WithRetryPolicy(policy *RetryPolicy) ClientOption {
	return func(c *AccountClient) error {
		if policy == nil {
			return &ValidationError{Field: "retryPolicy", Reason: "must not be nil"}
		}
		c.retry = policy
		return nil
	}
}

// WithLogger sets the structured logger. Default is a nop logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *AccountClient) error {
		c.logger = logger
		return nil
	}
}
