// Package constants defines application-wide constants and version information.
package constants

import "runtime"

// AppName is used in log messages and the health endpoint
const AppName = "divegas"

// Version holds the application version information
const Version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH
