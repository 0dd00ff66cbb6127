package bitcoin

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/btcsuite/btcd/rpcclient"
)

// Dial connects to a node's JSON-RPC endpoint in HTTP POST mode.
func Dial(rawURL, user, password string) (*rpcclient.Client, error) {
	host, err := rpcHost(rawURL)
	if err != nil {
		return nil, err
	}

	cfg := &rpcclient.ConnConfig{
		Host:         host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}
	return rpcclient.New(cfg, nil)
}

func rpcHost(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return "", fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", errors.New("rpc url missing host")
	}
	return parsed.Host, nil
}
