// Package secret provides strict environment expansion for
// configuration values that carry credentials, such as the provider
// API key.
//
// A referenced-but-missing variable is an error rather than a silent
// empty string, so a misconfigured key fails at startup instead of
// surfacing later as an API_KEY_REQUIRED response.
package secret
