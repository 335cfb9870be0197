// Package speakmeaning holds build metadata shared by the binaries.
package speakmeaning

// Version returns the current version of the application.
func Version() string { return "0.1.0" }

// UserAgent is sent with every outgoing HTTP request.
func UserAgent() string { return "speakmeaning/" + Version() }
