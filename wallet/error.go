package wallet

import stderr "github.com/pkg/errors"

var errNoPrivateKeys = stderr.New("no private keys configured, set " + cfgWalletPrivateKeys)
