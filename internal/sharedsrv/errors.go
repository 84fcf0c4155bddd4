package sharedsrv

import "errors"

var errNoServerAddress = errors.New("no http address configured for shared-store server")
