package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/tasks/pkg/cryptox"
	"github.com/aussiebroadwan/tasks/pkg/jwtx"
)

// sessionKeys loads (or creates) the session signing key and returns the
// signer with a key set that trusts it. Sessions survive restarts for as
// long as the key file does.
func sessionKeys(cfg Config, logger *slog.Logger) (*jwtx.EdDSASigner, *jwtx.KeySet, error) {
	pemKey, err := cryptox.LoadOrCreateEd25519Key(cfg.SessionKeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("session key: %w", err)
	}

	signer, err := jwtx.NewSignerEdDSA("", pemKey)
	if err != nil {
		return nil, nil, fmt.Errorf("session key: %w", err)
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, nil, fmt.Errorf("session key: %w", err)
	}

	logger.Info("session signing key loaded", "kid", signer.KID(), "path", cfg.SessionKeyFile)
	return signer, keys, nil
}
