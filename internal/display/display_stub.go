//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package display

import "fmt"

func queryMonitors() ([]Monitor, error) {
	return nil, fmt.Errorf("monitor listing is not supported on this platform")
}
