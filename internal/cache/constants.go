package cache

import (
	"fmt"
)

// key names definition
const (
	SessionKey = "session:%s" // key of a session record, '%s' is the session id from the cookie
)

func MakeSessionKey(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}
