// Package platform sends desktop notifications through the host's native
// notification service.
package platform

import "time"

// DefaultAppName identifies the sender when Options.AppName is empty.
const DefaultAppName = "DesignStudio"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName is shown as the sending application where supported.
	AppName string
	// IconPath, when non-empty, points to an image file shown with the
	// notification, typically the exported design.
	IconPath string
	// Timeout is how long the notification stays visible. Zero uses the
	// platform default.
	Timeout time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}
