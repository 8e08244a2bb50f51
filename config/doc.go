// Package config loads the gateway configuration from the environment.
//
// All variables carry the PLACEGATE_ prefix. The provider API key
// supports strict ${VAR} indirection via the secret package, so the
// value can reference another variable without being copied around. An
// absent key is not a load error: calls fail with API_KEY_REQUIRED at
// call time instead, keeping startup independent of the credential.
package config
